package refresh

import (
	"time"
)

// StoredRefreshToken is the server-side record behind an opaque refresh
// token. The client only ever sees Token.
type StoredRefreshToken struct {
	Token  string
	UserID string
	Iat    time.Time
}

// Repo stores refresh tokens keyed by the token string, one per student.
type Repo interface {
	Upsert(refreshToken *StoredRefreshToken) error
	Delete(token string) error
	Get(token string) (*StoredRefreshToken, error)
	GetByUserID(userID string) (*StoredRefreshToken, error)
	DeleteAll() int
}
