package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
}

// NewUserService creates the identity service.
func NewUserService(uow portsrepo.UnitOfWorkFactory) portssvc.UserSvcFacade {
	return &userService{BaseService: BaseService{uow: uow}}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// createWithDefaultBook saves a new user together with its Default book.
func createWithDefaultBook(ctx context.Context, uow portsrepo.UnitOfWork, user domain.User) error {
	if err := uow.Users().SaveUser(ctx, user); err != nil {
		return err
	}
	return uow.Books().SaveBook(ctx, &domain.Book{UserID: user.UserID, Name: domain.DefaultBookName})
}

func (s *userService) Signup(ctx context.Context, req domain.NewUser) (*domain.User, error) {
	username, err := requireText("username", req.Username)
	if err != nil {
		return nil, err
	}
	email, err := requireText("email", req.Email)
	if err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("email %q is not valid", email))
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("password must be at least %d characters", utils.MinPasswordLength))
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        strings.ToLower(email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Contact:      strings.TrimSpace(req.Contact),
		PasswordHash: hash,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		return createWithDefaultBook(ctx, uow, user)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to sign up user", slog.String("username", username))
		return nil, err
	}

	s.LogInfo(ctx, "User signed up", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user *domain.User
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		user, err = uow.Users().FindUserByID(ctx, userID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	var user *domain.User
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		user, err = uow.Users().FindUserByUsername(ctx, strings.TrimSpace(username))
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Login for unknown username")
			return nil, fmt.Errorf("invalid username or password: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Login with wrong password", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("invalid username or password: %w", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	if info.Subject == "" || info.Email == "" {
		return nil, fmt.Errorf("google identity is missing subject or email: %w", apperrors.ErrUnauthorized)
	}
	email := strings.ToLower(info.Email)

	var user *domain.User
	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		existing, err := uow.Users().FindUserByEmail(ctx, email)
		switch {
		case err == nil:
			if existing.GoogleSubject == "" {
				if err := uow.Users().SetGoogleSubject(ctx, existing.UserID, info.Subject); err != nil {
					return err
				}
				existing.GoogleSubject = info.Subject
			} else if existing.GoogleSubject != info.Subject {
				return fmt.Errorf("email is linked to a different google account: %w", apperrors.ErrUnauthorized)
			}
			user = existing
			return nil
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		created := domain.User{
			UserID:        uuid.NewString(),
			Username:      email,
			Email:         email,
			FirstName:     info.GivenName,
			LastName:      info.FamilyName,
			GoogleSubject: info.Subject,
		}
		if err := createWithDefaultBook(ctx, uow, created); err != nil {
			return err
		}
		user = &created
		s.LogInfo(ctx, "User created from google sign-in", slog.String("user_id", created.UserID))
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to resolve google user")
		return nil, err
	}
	return user, nil
}
