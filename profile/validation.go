package profile

import "github.com/jrsteele09/go-internship-client/internal/validate"

func (r CreateProfileRequest) Validate() error {
	f := validate.Fields{}
	f.Required("indexNumber", r.IndexNumber)
	f.Required("faculty", r.Faculty)
	f.Required("department", r.Department)
	f.Required("programme", r.Programme)
	f.Required("level", r.Level)
	f.OneOf("session", string(r.Session),
		string(SessionRegular), string(SessionWeekend), string(SessionEvening))
	f.OneOf("certificateType", string(r.CertificateType),
		string(CertificateBTech), string(CertificateHND), string(CertificateDiploma), string(CertificateCertificate))
	f.OneOf("gender", string(r.Gender), string(GenderMale), string(GenderFemale), string(GenderOther))
	f.Date("dateOfBirth", r.DateOfBirth)
	f.Phone("phoneNumber", r.PhoneNumber)
	return f.Err()
}
