package fakeuserrepo

import (
	"sync"

	"github.com/google/uuid"
	interrors "github.com/jrsteele09/go-internship-client/internal/errors"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*users.Student
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewFakeUserRepo() users.Repo {
	return &FakeUserRepo{
		users:    make(map[string]*users.Student),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Upsert(student *users.Student) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if student.ID == "" {
		student.ID = uuid.New().String()
	}
	cp := *student
	ur.users[student.ID] = &cp
	ur.emailIds[student.Email] = student.ID
	return nil
}

// GetByEmail returns a copy; changes go through Upsert or the setters.
func (ur *FakeUserRepo) GetByEmail(email string) (*users.Student, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, interrors.Wrapf(interrors.ErrNotFound, "student %s", email)
	}
	cp := *ur.users[id]
	return &cp, nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.Student, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	student, ok := ur.users[id]
	if !ok {
		return nil, interrors.Wrapf(interrors.ErrNotFound, "student %s", id)
	}
	cp := *student
	return &cp, nil
}

func (ur *FakeUserRepo) SetVerified(email string, verified bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return interrors.Wrapf(interrors.ErrNotFound, "student %s", email)
	}
	ur.users[id].Verified = verified
	return nil
}

func (ur *FakeUserRepo) SetHasProfile(id string, hasProfile bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	student, ok := ur.users[id]
	if !ok {
		return interrors.Wrapf(interrors.ErrNotFound, "student %s", id)
	}
	student.HasProfile = hasProfile
	return nil
}
