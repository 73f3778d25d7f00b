package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkit/backend/internal/application/adapter"
	"github.com/ledgerkit/backend/internal/domain/entity"
	domainerror "github.com/ledgerkit/backend/internal/domain/error"
)

type fakeUserRepository struct {
	users       map[string]*entity.User
	createErr   error
	createdUser *entity.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.createdUser = user
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

type fakePasswordService struct {
	verifyErr error
}

func (s *fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (s *fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if s.verifyErr != nil {
		return s.verifyErr
	}
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func (s *fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokenService struct {
	invalidated map[string]bool
	validateErr error
	pairs       int
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{invalidated: make(map[string]bool)}
}

func (s *fakeTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	s.pairs++
	return &adapter.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil
}

func (s *fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &adapter.TokenClaims{UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *fakeTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &adapter.TokenClaims{UserID: uuid.New(), Email: "user@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *fakeTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	s.invalidated[token] = true
	return nil
}

func (s *fakeTokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return !s.invalidated[token], nil
}

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new user", func(t *testing.T) {
		userRepo := newFakeUserRepository()
		uc := NewRegisterUserUseCase(userRepo, &fakePasswordService{}, newFakeTokenService())

		output, err := uc.Execute(ctx, RegisterUserInput{
			Email:    "new@example.com",
			Name:     "New User",
			Password: "long-enough-password",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.AccessToken == "" || output.RefreshToken == "" {
			t.Error("expected both tokens to be issued")
		}
		if userRepo.createdUser == nil {
			t.Fatal("expected user to be persisted")
		}
		if userRepo.createdUser.PasswordHash != "hashed:long-enough-password" {
			t.Errorf("expected hashed password, got %q", userRepo.createdUser.PasswordHash)
		}
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepository(), &fakePasswordService{}, newFakeTokenService())

		_, err := uc.Execute(ctx, RegisterUserInput{
			Email:    "not-an-email",
			Name:     "User",
			Password: "long-enough-password",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
	})

	t.Run("rejects weak password", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepository(), &fakePasswordService{}, newFakeTokenService())

		_, err := uc.Execute(ctx, RegisterUserInput{
			Email:    "user@example.com",
			Name:     "User",
			Password: "short",
		})
		if !errors.Is(err, domainerror.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := newFakeUserRepository()
		userRepo.users["taken@example.com"] = entity.NewUser("taken@example.com", "Taken", "hash")
		uc := NewRegisterUserUseCase(userRepo, &fakePasswordService{}, newFakeTokenService())

		_, err := uc.Execute(ctx, RegisterUserInput{
			Email:    "taken@example.com",
			Name:     "User",
			Password: "long-enough-password",
		})
		if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestLoginUserUseCase(t *testing.T) {
	ctx := context.Background()

	userRepo := newFakeUserRepository()
	userRepo.users["user@example.com"] = entity.NewUser("user@example.com", "User", "hashed:correct-password")

	t.Run("logs in with valid credentials", func(t *testing.T) {
		uc := NewLoginUserUseCase(userRepo, &fakePasswordService{}, newFakeTokenService())

		output, err := uc.Execute(ctx, LoginUserInput{
			Email:    "user@example.com",
			Password: "correct-password",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Email != "user@example.com" {
			t.Errorf("expected user in output, got %v", output.User)
		}
	})

	t.Run("same error for unknown email and wrong password", func(t *testing.T) {
		uc := NewLoginUserUseCase(userRepo, &fakePasswordService{}, newFakeTokenService())

		_, unknownErr := uc.Execute(ctx, LoginUserInput{Email: "nobody@example.com", Password: "x"})
		_, wrongErr := uc.Execute(ctx, LoginUserInput{Email: "user@example.com", Password: "wrong"})

		if !errors.Is(unknownErr, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
		}
		if !errors.Is(wrongErr, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
		}
	})
}

func TestRefreshTokenUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		tokenService := newFakeTokenService()
		uc := NewRefreshTokenUseCase(tokenService)

		output, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "old-token"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.AccessToken == "" || output.RefreshToken == "" {
			t.Error("expected a new token pair")
		}
		if !tokenService.invalidated["old-token"] {
			t.Error("expected the presented token to be invalidated")
		}
	})

	t.Run("rejects a revoked token", func(t *testing.T) {
		tokenService := newFakeTokenService()
		tokenService.invalidated["revoked"] = true
		uc := NewRefreshTokenUseCase(tokenService)

		_, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "revoked"})
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects an unparseable token", func(t *testing.T) {
		tokenService := newFakeTokenService()
		tokenService.validateErr = errors.New("bad signature")
		uc := NewRefreshTokenUseCase(tokenService)

		_, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "garbage"})
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestLogoutUserUseCase(t *testing.T) {
	ctx := context.Background()

	tokenService := newFakeTokenService()
	uc := NewLogoutUserUseCase(tokenService)

	output, err := uc.Execute(ctx, LogoutUserInput{RefreshToken: "some-token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("expected a confirmation message")
	}
	if !tokenService.invalidated["some-token"] {
		t.Error("expected the token to be invalidated")
	}
}
