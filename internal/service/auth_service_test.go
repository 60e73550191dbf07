package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

func newTestAuthService(store *fakeStore) *AuthService {
	return NewAuthService(&fakeUserRepo{store: store}, util.NewJWTManager("test-secret", time.Hour, util.TokenKindUser), "client-id")
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Name: " Rider ", Email: "Rider@Example.com", Password: "ride2024now"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if reg.Token == "" || reg.User.Email != "rider@example.com" {
		t.Fatalf("unexpected registration result %+v", reg)
	}

	login, err := svc.Login(ctx, LoginInput{Email: "rider@example.com", Password: "ride2024now"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	user, err := svc.Authenticate(ctx, login.Token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != reg.User.ID {
		t.Fatalf("expected token to resolve to registered user")
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "rider@example.com", Password: "wrong-pass1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Name: "Again", Email: "rider@example.com", Password: "ride2024now"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeStore())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "nope", Password: "short"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"name", "email", "password"} {
		if !verr.Has(field) {
			t.Fatalf("expected %s to be reported, got %v", field, verr.Fields)
		}
	}
}

func TestBlockedUserCannotLogin(t *testing.T) {
	store := newFakeStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Name: "Blocked", Email: "b@example.com", Password: "ride2024now"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	store.users[reg.User.ID].Status = domain.UserStatusBlocked

	if _, err := svc.Login(ctx, LoginInput{Email: "b@example.com", Password: "ride2024now"}); !errors.Is(err, ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, reg.Token); !errors.Is(err, ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked from Authenticate, got %v", err)
	}
}

func TestLoginWithGoogle(t *testing.T) {
	store := newFakeStore()
	svc := newTestAuthService(store)
	svc.verifyToken = func(ctx context.Context, token, audience string) (*GoogleProfile, error) {
		if token != "good" || audience != "client-id" {
			return nil, errors.New("bad token")
		}
		return &GoogleProfile{Email: "G@Example.com", Picture: "https://pics.example/g.png", Verified: true}, nil
	}

	res, err := svc.LoginWithGoogle(context.Background(), "good")
	if err != nil {
		t.Fatalf("LoginWithGoogle returned error: %v", err)
	}
	if !res.User.IsVerified || res.User.Name != "g" || res.User.ProfileImage == "" {
		t.Fatalf("unexpected google user %+v", res.User)
	}
	if _, err := svc.LoginWithGoogle(context.Background(), "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeStore())
	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
