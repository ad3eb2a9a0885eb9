package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yash113gadia/CampusQuest/internal/database"
	"github.com/yash113gadia/CampusQuest/internal/store"
)

func setupLocalProvider(t *testing.T, now func() time.Time) *LocalProvider {
	t.Helper()
	db, err := database.Open(database.Memory)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewLocalProvider(store.NewAccountStore(db), "test-secret", time.Hour,
		WithBcryptCost(bcrypt.MinCost), WithClock(now))
}

func TestSignUpAndVerify(t *testing.T) {
	p := setupLocalProvider(t, time.Now)
	ctx := context.Background()

	tok, err := p.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if tok.Token == "" || tok.UserID == "" {
		t.Fatalf("token = %+v, want token and user id", tok)
	}
	if tok.DisplayName != "Ada" {
		t.Errorf("displayName = %q, want %q", tok.DisplayName, "Ada")
	}

	claims, err := p.VerifyToken(ctx, tok.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UID != tok.UserID {
		t.Errorf("uid = %q, want %q", claims.UID, tok.UserID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "ada@example.com")
	}
}

func TestSignUpValidation(t *testing.T) {
	p := setupLocalProvider(t, time.Now)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"bad email", "not-an-email", "secret1", ErrInvalidEmail},
		{"short password", "ada@example.com", "12345", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.SignUp(ctx, tt.email, tt.password, "")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSignUpDuplicate(t *testing.T) {
	p := setupLocalProvider(t, time.Now)
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "ada@example.com", "secret1", "Ada"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	_, err := p.SignUp(ctx, "ada@example.com", "secret2", "Ada")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
	if Message(Code(err)) != "This email is already registered. Try signing in instead." {
		t.Errorf("message = %q", Message(Code(err)))
	}
}

func TestSignIn(t *testing.T) {
	p := setupLocalProvider(t, time.Now)
	ctx := context.Background()

	up, err := p.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	in, err := p.SignIn(ctx, "ADA@example.com", "secret1")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if in.UserID != up.UserID {
		t.Errorf("userId = %q, want %q", in.UserID, up.UserID)
	}

	if _, err := p.SignIn(ctx, "ada@example.com", "wrong!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := p.SignIn(ctx, "bo@example.com", "secret1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user err = %v, want ErrUserNotFound", err)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	p := setupLocalProvider(t, clock)
	ctx := context.Background()

	tok, err := p.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	other := NewLocalProvider(nil, "other-secret", time.Hour, WithClock(clock))
	if _, err := other.VerifyToken(ctx, tok.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign secret err = %v, want ErrInvalidToken", err)
	}

	if _, err := p.VerifyToken(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage err = %v, want ErrInvalidToken", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := p.VerifyToken(ctx, tok.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired err = %v, want ErrInvalidToken", err)
	}
}
