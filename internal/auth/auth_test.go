package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/leafline/pkg/clients/identity"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier(testSecret, "leafline")
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		token   string
		subject string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   signToken(t, jwt.RegisteredClaims{Subject: "user-1", Issuer: "leafline", ExpiresAt: future}, testSecret),
			subject: "user-1",
		},
		{
			name:    "wrong secret",
			token:   signToken(t, jwt.RegisteredClaims{Subject: "user-1", Issuer: "leafline", ExpiresAt: future}, "other"),
			wantErr: true,
		},
		{
			name:    "wrong issuer",
			token:   signToken(t, jwt.RegisteredClaims{Subject: "user-1", Issuer: "someone-else", ExpiresAt: future}, testSecret),
			wantErr: true,
		},
		{
			name: "expired",
			token: signToken(t, jwt.RegisteredClaims{
				Subject:   "user-1",
				Issuer:    "leafline",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}, testSecret),
			wantErr: true,
		},
		{
			name:    "missing subject",
			token:   signToken(t, jwt.RegisteredClaims{Issuer: "leafline", ExpiresAt: future}, testSecret),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Verify(context.Background(), tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnauthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.subject, id.Subject)
		})
	}
}

type stubIdentity struct {
	identity.Client
	subject string
	err     error
}

func (s stubIdentity) VerifyToken(context.Context, string) (*identity.Subject, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &identity.Subject{Subject: s.subject}, nil
}

func TestRemoteVerifierClassifiesErrors(t *testing.T) {
	id, err := NewRemoteVerifier(stubIdentity{subject: "user-9"}).Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-9", id.Subject)

	_, err = NewRemoteVerifier(stubIdentity{err: &identity.APIError{StatusCode: http.StatusUnauthorized, Message: "expired"}}).
		Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	outage := errors.New("connection refused")
	_, err = NewRemoteVerifier(stubIdentity{err: outage}).Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, outage)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestChainAcceptsFirstSuccess(t *testing.T) {
	chain := Chain{
		NewJWTVerifier(testSecret, ""),
		NewRemoteVerifier(stubIdentity{subject: "remote-user"}),
	}

	id, err := chain.Verify(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, "remote-user", id.Subject)

	_, err = Chain{}.Verify(context.Background(), "opaque-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(NewJWTVerifier(testSecret, ""), nil))
	r.GET("/me", func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, id)
	})

	valid := signToken(t, jwt.RegisteredClaims{Subject: "user-7"}, testSecret)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"subject":"user-7"}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"error":"authentication required"}`, w.Body.String())
			}
		})
	}
}

func TestChainPrefersOutageOverRejection(t *testing.T) {
	outage := errors.New("connection refused")
	chain := Chain{
		NewRemoteVerifier(stubIdentity{err: outage}),
		NewJWTVerifier(testSecret, ""),
	}

	_, err := chain.Verify(context.Background(), "opaque-token")
	assert.ErrorIs(t, err, outage)
	assert.NotErrorIs(t, err, ErrUnauthenticated)

	rejecting := Chain{
		NewRemoteVerifier(stubIdentity{err: &identity.APIError{StatusCode: http.StatusUnauthorized, Message: "expired"}}),
		NewJWTVerifier(testSecret, ""),
	}
	_, err = rejecting.Verify(context.Background(), "opaque-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMiddlewareReportsIdentityOutage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "transport failure",
			err:    errors.New("dial tcp: connection refused"),
			status: http.StatusServiceUnavailable,
			body:   `{"error":"authentication service unavailable"}`,
		},
		{
			name:   "upstream 5xx",
			err:    &identity.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"},
			status: http.StatusServiceUnavailable,
			body:   `{"error":"authentication service unavailable"}`,
		},
		{
			name:   "rejected token",
			err:    &identity.APIError{StatusCode: http.StatusUnauthorized, Message: "expired"},
			status: http.StatusUnauthorized,
			body:   `{"error":"authentication required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Middleware(NewRemoteVerifier(stubIdentity{err: tt.err}), nil))
			r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer opaque-token")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
