// Package identity is a client for the external identity service that registers
// accounts, issues tokens and verifies them.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Client exposes the identity service operations used by the application.
type Client interface {
	Register(ctx context.Context, email, password string) (*Message, error)
	Login(ctx context.Context, email, password string) (*Token, error)
	VerifyCode(ctx context.Context, email string, code int) (*Message, error)
	ResendCode(ctx context.Context, email string) (*Message, error)
	VerifyToken(ctx context.Context, token string) (*Subject, error)
}

// Message is the acknowledgement returned by account operations.
type Message struct {
	Message string `json:"message"`
}

// Token is returned by a successful login.
type Token struct {
	JWTToken string `json:"jwt_token"`
}

// Subject is the identity bound to a verified token.
type Subject struct {
	Subject string `json:"subject"`
}

// APIError is a non-2xx answer from the identity service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("identity api error: status=%d, message=%s", e.StatusCode, e.Message)
}

// IsClientError reports whether the service rejected the request itself
// rather than failing to process it.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

// errorBody covers both error shapes the service answers with.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an identity client rooted at baseURL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *APIClient) Register(ctx context.Context, email, password string) (*Message, error) {
	result := new(Message)
	if err := c.post(ctx, "/auth/register", credentials{Email: email, Password: password}, result); err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}
	return result, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*Token, error) {
	result := new(Token)
	if err := c.post(ctx, "/auth/login", credentials{Email: email, Password: password}, result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if result.JWTToken == "" {
		return nil, errors.New("login: identity service returned an empty token")
	}
	return result, nil
}

func (c *APIClient) VerifyCode(ctx context.Context, email string, code int) (*Message, error) {
	payload := map[string]any{"email": email, "code": code}
	result := new(Message)
	if err := c.post(ctx, "/auth/verify-code", payload, result); err != nil {
		return nil, fmt.Errorf("verify code: %w", err)
	}
	return result, nil
}

func (c *APIClient) ResendCode(ctx context.Context, email string) (*Message, error) {
	payload := map[string]any{"email": email}
	result := new(Message)
	if err := c.post(ctx, "/auth/resend-code", payload, result); err != nil {
		return nil, fmt.Errorf("resend code: %w", err)
	}
	return result, nil
}

// VerifyToken asks the service who token belongs to.
func (c *APIClient) VerifyToken(ctx context.Context, token string) (*Subject, error) {
	result := new(Subject)
	apiErr := new(errorBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(result).
		SetError(apiErr).
		Get("/auth/verify")
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if result.Subject == "" {
		return nil, errors.New("verify token: identity service returned an empty subject")
	}
	return result, nil
}

func (c *APIClient) post(ctx context.Context, path string, body, result any) error {
	apiErr := new(errorBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(apiErr).
		Post(path)
	if err != nil {
		return err
	}
	return checkResponse(resp, apiErr)
}

func checkResponse(resp *resty.Response, apiErr *errorBody) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	message := apiErr.Error
	if message == "" {
		message = apiErr.Message
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}
