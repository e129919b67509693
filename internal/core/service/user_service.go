package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/chirper/chirper-api/internal/core/domain"
	"github.com/chirper/chirper-api/internal/core/ports"
	"github.com/chirper/chirper-api/internal/pkg/metrics"
)

// UserService implements registration, credential checks and CRUD over the
// user collection. Every call loads the whole collection, so cost grows
// linearly with the number of users.
type UserService struct {
	users  ports.RecordStore[domain.UserAccount]
	logger zerolog.Logger
	newID  func() string
}

func NewUserService(users ports.RecordStore[domain.UserAccount], logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger, newID: domain.NewID}
}

// Register validates and appends a new account. A caller-supplied user_id is
// kept as is, even when another account already uses it.
func (s *UserService) Register(ctx context.Context, in domain.UserRegister) (*domain.User, error) {
	in.UserID = domain.CanonicalID(in.UserID)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	id := in.UserID
	if id == "" {
		id = s.newID()
	}
	account := domain.NewUserAccount(id, in)

	err := s.users.Mutate(ctx, func(all []domain.UserAccount) ([]domain.UserAccount, error) {
		return append(all, account), nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to register user")
		return nil, fmt.Errorf("register user: %w", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("user_id", id).Msg("user registered")

	user := account.Public()
	return &user, nil
}

// Authenticate returns the first account whose email and password both match.
// Stored records that no longer satisfy the User schema are skipped.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	var found *domain.User
	err := s.users.Scan(ctx, func(a domain.UserAccount) bool {
		if a.Email != email || subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) != 1 {
			return true
		}
		user := a.Public()
		if err := domain.Validate(user); err != nil {
			s.logger.Warn().Err(err).Str("user_id", a.UserID).Msg("skipping malformed user record")
			return true
		}
		found = &user
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if found == nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return found, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	all, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]domain.User, len(all))
	for i, a := range all {
		out[i] = a.Public()
	}
	return out, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	all, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	i := indexOfUser(all, id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	user := all[i].Public()
	return &user, nil
}

// Update overwrites every mutable field of the first account matching id,
// including the password. The stored user_id never changes.
func (s *UserService) Update(ctx context.Context, id string, in domain.UserRegister) (*domain.User, error) {
	in.UserID = domain.CanonicalID(in.UserID)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	var updated domain.UserAccount
	err := s.users.Mutate(ctx, func(all []domain.UserAccount) ([]domain.UserAccount, error) {
		i := indexOfUser(all, id)
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		all[i].Apply(in)
		updated = all[i]
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Str("user_id", updated.UserID).Msg("user updated")

	user := updated.Public()
	return &user, nil
}

// Delete removes the first account matching id and returns it.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	var removed domain.UserAccount
	err := s.users.Mutate(ctx, func(all []domain.UserAccount) ([]domain.UserAccount, error) {
		i := indexOfUser(all, id)
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		removed = all[i]
		return slices.Delete(all, i, i+1), nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("user_id", removed.UserID).Msg("user deleted")

	user := removed.Public()
	return &user, nil
}

func indexOfUser(all []domain.UserAccount, id string) int {
	return slices.IndexFunc(all, func(a domain.UserAccount) bool {
		return domain.SameID(a.UserID, id)
	})
}
