package internship

import "time"

const (
	RouteActivePeriod       = "/internship-periods/active"
	RouteAssumptionOfDuty   = "/assumption-of-duty"
	RouteMyAssumptionOfDuty = "/assumption-of-duty/me"
	RouteMyAssignment       = "/assignments/me"
)

// Status is the student's progress through internship registration.
type Status string

const (
	NotRegistered               Status = "NOT_REGISTERED"
	RegisteredPendingAssignment Status = "REGISTERED_PENDING_ASSIGNMENT"
	Assigned                    Status = "ASSIGNED"
)

const (
	AssignmentPending  = "PENDING"
	AssignmentAssigned = "ASSIGNED"
)

// Period is an internship period; its ID is sent as periodId on registration.
type Period struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
}

// Registration is the company information a student fills in.
type Registration struct {
	CompanyName       string `json:"companyName"`
	CompanyPhone      string `json:"companyPhone"`
	CompanyEmail      string `json:"companyEmail"`
	CompanyAddress    string `json:"companyAddress"`
	CompanySupervisor string `json:"companySupervisor"`
	SupervisorPhone   string `json:"supervisorPhone"`
	CompanyCity       string `json:"companyCity"`
	CommencementDate  string `json:"commencementDate"`
}

// AssumptionOfDutyRequest is a Registration plus the period and the
// coordinates captured at submission time.
type AssumptionOfDutyRequest struct {
	Registration
	PeriodID  string  `json:"periodId"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type AssumptionOfDutyRecord struct {
	AssumptionOfDutyRequest
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AssignedSupervisor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	StaffID string `json:"staffId"`
}

type AssignedZone struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Region      string `json:"region"`
}

// Assignment pairs a student with a supervisor and zone. Nil members mean
// not assigned yet.
type Assignment struct {
	Supervisor       *AssignedSupervisor `json:"supervisor"`
	Zone             *AssignedZone       `json:"zone"`
	AssignmentStatus string              `json:"assignmentStatus"`
}

// PendingAssignment is what the student sees before any allocation exists.
func PendingAssignment() *Assignment {
	return &Assignment{AssignmentStatus: AssignmentPending}
}
