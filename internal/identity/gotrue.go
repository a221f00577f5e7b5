package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
)

// GoTrue talks to a GoTrue-compatible identity service over HTTP.
// Access tokens it issues are verified locally with the shared JWT secret.
// Accounts are created through the admin API with the service-role key, the
// only credential allowed to write app_metadata.
type GoTrue struct {
	baseURL    string
	apiKey     string
	serviceKey string
	client     *http.Client
	tokens     *Tokens
}

// NewGoTrue returns a client for the service at baseURL. Requests are bounded by timeout.
func NewGoTrue(baseURL, apiKey, serviceKey string, tokens *Tokens, timeout time.Duration) *GoTrue {
	return &GoTrue{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

type gotrueUser struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	AppMetadata AppMetadata `json:"app_metadata"`
}

type gotrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	User         gotrueUser `json:"user"`
}

type gotrueError struct {
	Code             int    `json:"code"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e gotrueError) message() string {
	for _, s := range []string{e.Msg, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return "unknown error"
}

// do sends a JSON request and decodes a 2xx response into out.
// Non-2xx responses are returned as *statusError.
func (g *GoTrue) do(ctx context.Context, method, path, bearer string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.apiKey != "" {
		req.Header.Set("apikey", g.apiKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: identity provider: %v", model.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: identity provider: %v", model.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: identity provider returned %d", model.ErrRemoteUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		var ge gotrueError
		_ = json.Unmarshal(raw, &ge)
		return &statusError{status: resp.StatusCode, msg: ge.message()}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode identity response: %v", model.ErrRemoteUnavailable, err)
	}
	return nil
}

type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("identity provider returned %d: %s", e.status, e.msg)
}

func (g *GoTrue) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	var sess gotrueSession
	err := g.do(ctx, http.MethodPost, "/token?grant_type=password", "",
		map[string]string{"email": email, "password": password}, &sess)

	var se *statusError
	if errors.As(err, &se) && (se.status == http.StatusBadRequest || se.status == http.StatusUnauthorized) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	p, err := g.tokens.Verify(sess.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("verify issued token: %w", err)
	}
	return &model.Session{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    p.ExpiresAt,
		Principal:    *p,
	}, nil
}

func (g *GoTrue) SignUp(ctx context.Context, email, password string, role model.Role) (*model.Principal, error) {
	var user gotrueUser
	err := g.do(ctx, http.MethodPost, "/admin/users", g.serviceKey, map[string]interface{}{
		"email":         email,
		"password":      password,
		"email_confirm": true,
		"app_metadata":  AppMetadata{AccountRole: role},
	}, &user)

	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.status == http.StatusUnprocessableEntity || strings.Contains(strings.ToLower(se.msg), "already been registered"):
			return nil, fmt.Errorf("%w: %s", model.ErrConflict, se.msg)
		case se.status == http.StatusUnauthorized || se.status == http.StatusForbidden:
			return nil, fmt.Errorf("%w: identity admin API rejected the service key", model.ErrRemoteUnavailable)
		}
		return nil, model.NewValidationError("email", se.msg)
	}
	if err != nil {
		return nil, err
	}

	if user.ID == "" {
		return nil, fmt.Errorf("%w: sign-up response carries no user id", model.ErrRemoteUnavailable)
	}
	return &model.Principal{Subject: user.ID, Email: user.Email, Role: role}, nil
}

func (g *GoTrue) SignOut(ctx context.Context, token string) error {
	err := g.do(ctx, http.MethodPost, "/logout", token, nil, nil)

	var se *statusError
	if errors.As(err, &se) {
		if se.status == http.StatusUnauthorized || se.status == http.StatusForbidden {
			return fmt.Errorf("%w: %s", model.ErrUnauthenticated, se.msg)
		}
		return fmt.Errorf("sign out: %w", err)
	}
	return err
}

func (g *GoTrue) Verify(_ context.Context, token string) (*model.Principal, error) {
	return g.tokens.Verify(token)
}
