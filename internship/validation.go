package internship

import "github.com/jrsteele09/go-internship-client/internal/validate"

func (r Registration) Validate() error {
	f := validate.Fields{}
	f.Required("companyName", r.CompanyName)
	f.Phone("companyPhone", r.CompanyPhone)
	f.Email("companyEmail", r.CompanyEmail)
	f.Required("companyAddress", r.CompanyAddress)
	f.Required("companySupervisor", r.CompanySupervisor)
	f.Phone("supervisorPhone", r.SupervisorPhone)
	f.Required("companyCity", r.CompanyCity)
	f.DateTime("commencementDate", r.CommencementDate)
	return f.Err()
}
