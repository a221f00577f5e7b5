package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	id    string
	email string
	hash  []byte
	role  model.Role
}

// Local is an in-process provider for development and tests. Accounts live
// only as long as the process.
type Local struct {
	mu       sync.RWMutex
	accounts map[string]*account
	tokens   *Tokens
	cost     int
}

// NewLocal returns a provider hashing passwords with the given bcrypt cost.
func NewLocal(tokens *Tokens, bcryptCost int) *Local {
	return &Local{
		accounts: make(map[string]*account),
		tokens:   tokens,
		cost:     bcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (l *Local) SignUp(_ context.Context, email, password string, role model.Role) (*model.Principal, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	key := normalizeEmail(email)
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[key]; ok {
		return nil, fmt.Errorf("%w: email already registered", model.ErrConflict)
	}
	acc := &account{id: uuid.NewString(), email: key, hash: hash, role: role}
	l.accounts[key] = acc

	return &model.Principal{Subject: acc.id, Email: acc.email, Role: acc.role}, nil
}

func (l *Local) SignIn(_ context.Context, email, password string) (*model.Session, error) {
	l.mu.RLock()
	acc, ok := l.accounts[normalizeEmail(email)]
	l.mu.RUnlock()
	if !ok {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, p, err := l.tokens.Sign(acc.id, acc.email, acc.role)
	if err != nil {
		return nil, err
	}
	return &model.Session{AccessToken: token, ExpiresAt: p.ExpiresAt, Principal: *p}, nil
}

// SignOut only checks the token; revocation is kept by the caller.
func (l *Local) SignOut(_ context.Context, token string) error {
	_, err := l.tokens.Verify(token)
	return err
}

func (l *Local) Verify(_ context.Context, token string) (*model.Principal, error) {
	return l.tokens.Verify(token)
}
