package identity

import (
	"fmt"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access-token payload. The layout follows GoTrue. The account
// role is read from app_metadata only: user_metadata is writable by the
// account holder through PUT /user.
type Claims struct {
	jwt.RegisteredClaims
	Email       string      `json:"email"`
	Role        string      `json:"role,omitempty"`
	AppMetadata AppMetadata `json:"app_metadata"`
}

// AppMetadata carries the account role assigned at sign-up.
type AppMetadata struct {
	AccountRole model.Role `json:"account_role"`
}

// Tokens signs and verifies HS256 access tokens with a shared secret.
type Tokens struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokens returns a codec for tokens valid for expiry.
func NewTokens(secret string, expiry time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Sign issues a token for the given account.
func (t *Tokens) Sign(subject, email string, role model.Role) (string, *model.Principal, error) {
	now := t.now()
	p := &model.Principal{
		Subject:   subject,
		Email:     email,
		Role:      role,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(t.expiry).UTC().Truncate(time.Second),
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        p.TokenID,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(p.ExpiresAt),
		},
		Email:       email,
		Role:        "authenticated",
		AppMetadata: AppMetadata{AccountRole: role},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, p, nil
}

// Verify parses token and returns its principal, or an error wrapping
// model.ErrUnauthenticated.
func (t *Tokens) Verify(token string) (*model.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token claims", model.ErrUnauthenticated)
	}

	role := claims.AppMetadata.AccountRole
	if role != model.RoleStudent && role != model.RoleCollege {
		return nil, fmt.Errorf("%w: token carries no account role", model.ErrUnauthenticated)
	}

	return &model.Principal{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
