package account

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diasKarataev/todo-client/domain"
)

type fakeAccountAPI struct {
	login  func(email, password string) (string, error)
	user   func() (*domain.User, error)
	resent bool
}

func (f *fakeAccountAPI) Login(_ context.Context, email, password string) (string, error) {
	return f.login(email, password)
}

func (f *fakeAccountAPI) Register(_ context.Context, username, email, password string) error {
	return nil
}

func (f *fakeAccountAPI) UserInfo(_ context.Context) (*domain.User, error) {
	return f.user()
}

func (f *fakeAccountAPI) ResendActivation(_ context.Context) error {
	f.resent = true
	return nil
}

type memStore struct {
	token string
}

func (m *memStore) Load() (string, error) {
	if m.token == "" {
		return "", domain.ErrNoSession
	}
	return m.token, nil
}

func (m *memStore) Save(token string) error { m.token = token; return nil }
func (m *memStore) Clear() error            { m.token = ""; return nil }
func (m *memStore) Close() error            { return nil }

func signToken(t *testing.T, username string, activated bool, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"username":    username,
		"email":       username + "@example.com",
		"isActivated": activated,
		"role":        domain.RoleUser,
		"exp":         expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestLogin_PersistsTokenAndBuildsSession(t *testing.T) {
	issued := signToken(t, "alice", true, time.Now().Add(time.Hour))
	api := &fakeAccountAPI{login: func(email, password string) (string, error) {
		assert.Equal(t, "a@b.c", email)
		return issued, nil
	}}
	store := &memStore{}
	session := &domain.Session{}
	uc := New(api, store, session, nil)

	require.NoError(t, uc.Login(context.Background(), "a@b.c", "pw"))

	assert.Equal(t, issued, store.token, "token persisted for the next run")
	assert.Equal(t, "alice", session.Username)
	assert.True(t, session.IsAuthenticated())
	assert.True(t, session.IsActivated())
}

func TestLogin_FailureLeavesStoreUntouched(t *testing.T) {
	api := &fakeAccountAPI{login: func(string, string) (string, error) {
		return "", domain.ErrInvalidCredentials
	}}
	store := &memStore{token: "previous"}
	session := &domain.Session{}
	uc := New(api, store, session, nil)

	err := uc.Login(context.Background(), "a@b.c", "wrong")

	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidCredentials))
	assert.Equal(t, "previous", store.token)
	assert.False(t, session.IsAuthenticated())
}

func TestLogin_EmptyFieldsRejectedLocally(t *testing.T) {
	called := false
	api := &fakeAccountAPI{login: func(string, string) (string, error) {
		called = true
		return "", nil
	}}
	uc := New(api, &memStore{}, &domain.Session{}, nil)

	err := uc.Login(context.Background(), "", "")

	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
	assert.False(t, called)
}

func TestRestore_RebuildsSessionFromStore(t *testing.T) {
	store := &memStore{token: signToken(t, "bob", false, time.Now().Add(time.Hour))}

	session := Restore(store, nil)

	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "bob", session.Username)
	assert.False(t, session.IsActivated())
}

func TestRestore_ExpiredTokenIsAnonymous(t *testing.T) {
	store := &memStore{token: signToken(t, "bob", true, time.Now().Add(-time.Minute))}

	session := Restore(store, nil)

	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token)
}

func TestRestore_GarbageTokenIsAnonymous(t *testing.T) {
	store := &memStore{token: "not-a-jwt"}

	session := Restore(store, nil)

	assert.False(t, session.IsAuthenticated())
}

func TestRestore_EmptyStoreIsAnonymous(t *testing.T) {
	session := Restore(&memStore{}, nil)
	assert.False(t, session.IsAuthenticated())
}

func TestRefresh_OverwritesStaleActivation(t *testing.T) {
	// Token was cut before the account got activated; the server knows better.
	session := &domain.Session{Token: "t", Activated: false, ExpiresAt: time.Now().Add(time.Hour)}
	api := &fakeAccountAPI{user: func() (*domain.User, error) {
		return &domain.User{Username: "alice", Email: "a@b.c", Activated: true, Role: domain.RoleUser}, nil
	}}
	uc := New(api, &memStore{}, session, nil)

	user, err := uc.Refresh(context.Background())

	require.NoError(t, err)
	assert.True(t, user.Activated)
	assert.True(t, session.IsActivated())
}

func TestResendActivation_RefusedWhenAlreadyActivated(t *testing.T) {
	session := &domain.Session{Token: "t", Activated: true, ExpiresAt: time.Now().Add(time.Hour)}
	api := &fakeAccountAPI{}
	uc := New(api, &memStore{}, session, nil)

	err := uc.ResendActivation(context.Background())

	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
	assert.False(t, api.resent)
}

func TestLogout_ClearsStoreAndSession(t *testing.T) {
	session := &domain.Session{Token: "t", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	store := &memStore{token: "t"}
	uc := New(&fakeAccountAPI{}, store, session, nil)

	require.NoError(t, uc.Logout())

	assert.Empty(t, store.token)
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Username)
}
