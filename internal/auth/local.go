package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/store"
)

const (
	Issuer            = "campusquest"
	MinPasswordLength = 6
)

var _ Provider = (*LocalProvider)(nil)

// Accounts is the account storage LocalProvider needs.
type Accounts interface {
	Create(ctx context.Context, email, displayName, passwordHash string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

// Token is a signed session token handed to a client.
type Token struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}

// LocalProvider signs users up and in against the local account table and
// issues HS256 tokens.
type LocalProvider struct {
	accounts Accounts
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	cost     int
}

type LocalOption func(*LocalProvider)

// WithClock overrides the clock used to stamp and check tokens.
func WithClock(now func() time.Time) LocalOption {
	return func(p *LocalProvider) { p.now = now }
}

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) LocalOption {
	return func(p *LocalProvider) { p.cost = cost }
}

func NewLocalProvider(accounts Accounts, secret string, ttl time.Duration, opts ...LocalOption) *LocalProvider {
	p := &LocalProvider{
		accounts: accounts,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignUp creates an account and returns a token for it.
func (p *LocalProvider) SignUp(ctx context.Context, email, password, displayName string) (*Token, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a, err := p.accounts.Create(ctx, email, strings.TrimSpace(displayName), string(hash))
	if errors.Is(err, store.ErrEmailTaken) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return p.issue(a)
}

// SignIn checks the password and returns a fresh token.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Token, error) {
	a, err := p.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if a == nil {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return p.issue(a)
}

type localClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (p *LocalProvider) issue(a *model.Account) (*Token, error) {
	now := p.now()
	exp := now.Add(p.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, localClaims{
		Email: a.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := t.SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{
		Token:       signed,
		ExpiresAt:   exp,
		UserID:      a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
	}, nil
}

func (p *LocalProvider) VerifyToken(_ context.Context, token string) (*Claims, error) {
	var parsed localClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if parsed.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &Claims{UID: parsed.Subject, Email: parsed.Email}, nil
}
