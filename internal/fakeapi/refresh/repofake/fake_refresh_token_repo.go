package refreshrepofake

import (
	"sync"

	interrors "github.com/jrsteele09/go-internship-client/internal/errors"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/refresh"
)

var _ refresh.Repo = (*FakeRefreshTokenRepo)(nil)

type FakeRefreshTokenRepo struct {
	tokens  map[string]*refresh.StoredRefreshToken
	userIDs map[string]string // user ID to token
	lock    sync.RWMutex
}

func NewFakeRefreshTokenRepo() refresh.Repo {
	return &FakeRefreshTokenRepo{
		tokens:  make(map[string]*refresh.StoredRefreshToken),
		userIDs: make(map[string]string),
	}
}

func (tr *FakeRefreshTokenRepo) Upsert(refreshToken *refresh.StoredRefreshToken) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.tokens[refreshToken.Token] = refreshToken
	tr.userIDs[refreshToken.UserID] = refreshToken.Token
	return nil
}

func (tr *FakeRefreshTokenRepo) Delete(token string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	rt, ok := tr.tokens[token]
	if !ok {
		return interrors.Wrapf(interrors.ErrNotFound, "refresh token")
	}
	delete(tr.userIDs, rt.UserID)
	delete(tr.tokens, rt.Token)
	return nil
}

func (tr *FakeRefreshTokenRepo) Get(token string) (*refresh.StoredRefreshToken, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	rt, ok := tr.tokens[token]
	if !ok {
		return nil, interrors.Wrapf(interrors.ErrNotFound, "refresh token")
	}
	return rt, nil
}

func (tr *FakeRefreshTokenRepo) GetByUserID(userID string) (*refresh.StoredRefreshToken, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	token, ok := tr.userIDs[userID]
	if !ok {
		return nil, interrors.Wrapf(interrors.ErrNotFound, "refresh token for %s", userID)
	}
	return tr.tokens[token], nil
}

func (tr *FakeRefreshTokenRepo) DeleteAll() int {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	n := len(tr.tokens)
	tr.tokens = make(map[string]*refresh.StoredRefreshToken)
	tr.userIDs = make(map[string]string)
	return n
}
