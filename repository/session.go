package repository

// SessionStore persists the credential across runs. Load returns
// domain.ErrNoSession when nothing is stored.
type SessionStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
	Close() error
}
