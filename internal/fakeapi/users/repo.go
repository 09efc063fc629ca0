package users

// Repo stores students. Lookups that find nothing return an error wrapping
// internal/errors.ErrNotFound.
type Repo interface {
	Upsert(student *Student) error
	GetByEmail(email string) (*Student, error)
	GetByID(id string) (*Student, error)
	SetVerified(email string, verified bool) error
	SetHasProfile(id string, hasProfile bool) error
}
