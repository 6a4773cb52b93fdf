package auth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/logging"
	"tableflip.dev/daybook/pkg/store"
)

const (
	AccountsKey = store.AuthPrefix + "/accounts"
	SessionKey  = store.AuthPrefix + "/session"
	SecretKey   = store.AuthPrefix + "/secret"

	issuer         = "daybook"
	DefaultSession = 30 * 24 * time.Hour
)

type account struct {
	User
	PasswordHash []byte `json:"passwordHash"`
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// LocalOptions tune a Local provider.
type LocalOptions struct {
	Now        func() time.Time
	SessionTTL time.Duration
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

// Local keeps accounts and the active session in the key-value store.
type Local struct {
	// mu serializes read-modify-write cycles on the accounts and secret blobs.
	mu    sync.Mutex
	blobs store.Blobs
	now   func() time.Time
	ttl   time.Duration
	cost  int
}

var _ Provider = (*Local)(nil)

// NewLocal creates a provider over blobs.
func NewLocal(blobs store.Blobs, opts LocalOptions) *Local {
	l := &Local{blobs: blobs, now: opts.Now, ttl: opts.SessionTTL, cost: opts.Cost}
	if l.now == nil {
		l.now = time.Now
	}
	if l.ttl == 0 {
		l.ttl = DefaultSession
	}
	if l.cost == 0 {
		l.cost = bcrypt.DefaultCost
	}
	return l
}

func (l *Local) accounts() (map[string]account, error) {
	out := map[string]account{}
	raw, err := l.blobs.ReadBlob(AccountsKey)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read accounts: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("auth: decode accounts: %w", err)
	}
	return out, nil
}

func (l *Local) secret() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	raw, err := l.blobs.ReadBlob(SecretKey)
	if err == nil && len(raw) > 0 {
		return raw, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("auth: read secret: %w", err)
	}
	raw = make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("auth: generate secret: %w", err)
	}
	if err := l.blobs.WriteBlob(SecretKey, raw); err != nil {
		return nil, fmt.Errorf("auth: write secret: %w", err)
	}
	return raw, nil
}

// SignUp registers email. It does not sign the user in.
func (l *Local) SignUp(_ context.Context, email, password string) (User, error) {
	key := NormalizeEmail(email)
	l.mu.Lock()
	defer l.mu.Unlock()
	accts, err := l.accounts()
	if err != nil {
		return User{}, err
	}
	if _, ok := accts[key]; ok {
		return User{}, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return User{}, fmt.Errorf("auth: hash password: %w", err)
	}
	u := User{ID: calendar.NewID(), Email: key, CreatedAt: l.now()}
	accts[key] = account{User: u, PasswordHash: hash}
	raw, err := json.Marshal(accts)
	if err != nil {
		return User{}, fmt.Errorf("auth: encode accounts: %w", err)
	}
	if err := l.blobs.WriteBlob(AccountsKey, raw); err != nil {
		return User{}, fmt.Errorf("auth: write accounts: %w", err)
	}
	logging.Info("auth: account created", "email", key)
	return u, nil
}

// SignIn checks the password and persists a signed session token.
func (l *Local) SignIn(_ context.Context, email, password string) (*Session, error) {
	accts, err := l.accounts()
	if err != nil {
		return nil, err
	}
	acct, ok := accts[NormalizeEmail(email)]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	secret, err := l.secret()
	if err != nil {
		return nil, err
	}
	now := l.now()
	exp := now.Add(l.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: acct.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   acct.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return nil, fmt.Errorf("auth: sign session: %w", err)
	}
	if err := l.blobs.WriteBlob(SessionKey, []byte(signed)); err != nil {
		return nil, fmt.Errorf("auth: write session: %w", err)
	}
	logging.Info("auth: signed in", "email", acct.Email)
	return &Session{User: acct.User, Token: signed, ExpiresAt: exp}, nil
}

// SignOut forgets the persisted session.
func (l *Local) SignOut(_ context.Context) error {
	if err := l.blobs.EraseBlob(SessionKey); err != nil {
		return fmt.Errorf("auth: erase session: %w", err)
	}
	return nil
}

// Session verifies the persisted token. An invalid or expired token is
// discarded and reported as signed out.
func (l *Local) Session(ctx context.Context) (*Session, error) {
	raw, err := l.blobs.ReadBlob(SessionKey)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read session: %w", err)
	}
	secret, err := l.secret()
	if err != nil {
		return nil, err
	}

	var c claims
	parser := &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}, SkipClaimsValidation: true}
	_, err = parser.ParseWithClaims(string(raw), &c, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || c.Issuer != issuer || !c.VerifyExpiresAt(l.now(), true) {
		logging.Debug("auth: discarding session", "reason", fmt.Sprint(err))
		return nil, l.SignOut(ctx)
	}

	accts, err := l.accounts()
	if err != nil {
		return nil, err
	}
	acct, ok := accts[NormalizeEmail(c.Email)]
	if !ok || acct.ID != c.Subject {
		return nil, l.SignOut(ctx)
	}
	return &Session{User: acct.User, Token: string(raw), ExpiresAt: c.ExpiresAt.Time}, nil
}
