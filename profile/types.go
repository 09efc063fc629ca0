package profile

import "time"

const (
	RouteProfile        = "/profile"
	RouteMyProfile      = "/profile/me"
	RouteMyProfileImage = "/profile/me/image"
)

// Multipart details of a profile image upload.
const (
	ImageField       = "image"
	ImageFileName    = "photo.jpg"
	ImageContentType = "image/jpeg"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Session is the study mode of the student's programme.
type Session string

const (
	SessionRegular Session = "Regular"
	SessionWeekend Session = "Weekend"
	SessionEvening Session = "Evening"
)

type CertificateType string

const (
	CertificateBTech       CertificateType = "BACHELOR of TECHNOLOGY"
	CertificateHND         CertificateType = "HND"
	CertificateDiploma     CertificateType = "DIPLOMA"
	CertificateCertificate CertificateType = "CERTIFICATE"
)

// CreateProfileRequest is submitted once during onboarding and cannot be
// edited afterwards.
type CreateProfileRequest struct {
	IndexNumber     string          `json:"indexNumber"`
	Faculty         string          `json:"faculty"`
	Department      string          `json:"department"`
	Programme       string          `json:"programme"`
	Level           string          `json:"level"`
	Session         Session         `json:"session"`
	CertificateType CertificateType `json:"certificateType"`
	Gender          Gender          `json:"gender"`
	DateOfBirth     string          `json:"dateOfBirth"`
	PhoneNumber     string          `json:"phoneNumber"`
}

type StudentProfile struct {
	CreateProfileRequest
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
