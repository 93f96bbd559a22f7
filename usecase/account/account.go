package account

import (
	"context"

	"go.uber.org/zap"

	"github.com/diasKarataev/todo-client/domain"
	"github.com/diasKarataev/todo-client/repository"
)

// UseCase owns the session lifecycle: it is the only writer of the shared
// domain.Session that the API client and the collection controller read.
type UseCase struct {
	api     repository.AccountRepository
	store   repository.SessionStore
	session *domain.Session
	logger  *zap.Logger
}

func New(api repository.AccountRepository, store repository.SessionStore, session *domain.Session, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:     api,
		store:   store,
		session: session,
		logger:  logger,
	}
}

// Restore rebuilds the session from the persisted credential. A missing,
// malformed or expired token yields an anonymous session, never an error:
// "not logged in" is a normal starting state.
func Restore(store repository.SessionStore, logger *zap.Logger) *domain.Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	token, err := store.Load()
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeUnauthenticated) {
			logger.Warn("failed to load stored session", zap.Error(err))
		}
		return &domain.Session{}
	}

	session, err := sessionFromToken(token)
	if err != nil {
		logger.Warn("discarding unusable stored token", zap.Error(err))
		return &domain.Session{}
	}
	if !session.IsAuthenticated() {
		return &domain.Session{}
	}
	return session
}

func (uc *UseCase) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.NewError(domain.ErrCodeValidation, "email and password are required")
	}

	token, err := uc.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	session, err := sessionFromToken(token)
	if err != nil {
		return domain.WrapError(domain.ErrCodeServer, "server issued an unusable token", err)
	}
	if err := uc.store.Save(token); err != nil {
		return domain.WrapError(domain.ErrCodeServer, "failed to persist session", err)
	}

	*uc.session = *session
	uc.logger.Info("logged in", zap.String("username", session.Username))
	return nil
}

func (uc *UseCase) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return domain.NewError(domain.ErrCodeValidation, "username, email and password are required")
	}
	return uc.api.Register(ctx, username, email, password)
}

// Refresh overwrites the locally cached identity with the server's answer.
// Activation can flip server-side after the token was issued, so the token
// claims alone go stale.
func (uc *UseCase) Refresh(ctx context.Context) (*domain.User, error) {
	user, err := uc.api.UserInfo(ctx)
	if err != nil {
		return nil, err
	}

	uc.session.Username = user.Username
	uc.session.Email = user.Email
	uc.session.Activated = user.Activated
	uc.session.Role = user.Role
	return user, nil
}

func (uc *UseCase) ResendActivation(ctx context.Context) error {
	if uc.session.IsActivated() {
		return domain.NewError(domain.ErrCodeValidation, "account is already activated")
	}
	return uc.api.ResendActivation(ctx)
}

func (uc *UseCase) Logout() error {
	if err := uc.store.Clear(); err != nil {
		return err
	}
	*uc.session = domain.Session{}
	return nil
}

// Session exposes the gate for read-only checks.
func (uc *UseCase) Session() *domain.Session {
	return uc.session
}
