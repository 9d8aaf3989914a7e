// Package auth guards protected routes behind a bearer token check.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/pkg/clients/identity"
)

// ErrUnauthenticated is returned for missing, malformed or rejected credentials.
var ErrUnauthenticated = errors.New("authentication required")

const identityKey = "auth.identity"

// Identity is the verified claim attached to an authenticated request.
type Identity struct {
	Subject string `json:"subject"`
}

// Verifier turns a bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// JWTVerifier checks HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier builds a verifier. An empty issuer accepts any iss claim.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *JWTVerifier) Verify(_ context.Context, raw string) (Identity, error) {
	claims := new(jwt.RegisteredClaims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return Identity{}, fmt.Errorf("%w: unexpected issuer %q", ErrUnauthenticated, claims.Issuer)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return Identity{Subject: claims.Subject}, nil
}

// RemoteVerifier delegates verification to the identity service.
type RemoteVerifier struct {
	client identity.Client
}

func NewRemoteVerifier(client identity.Client) *RemoteVerifier {
	return &RemoteVerifier{client: client}
}

// Verify maps a 4xx answer onto ErrUnauthenticated; transport and 5xx failures
// are returned as is.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	subject, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		var apiErr *identity.APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			return Identity{}, fmt.Errorf("%w: %s", ErrUnauthenticated, apiErr.Message)
		}
		return Identity{}, err
	}
	return Identity{Subject: subject.Subject}, nil
}

// Chain tries each verifier in order and accepts the first success.
type Chain []Verifier

// Verify returns the first accepted identity. When none accepts, an outage
// error is preferred over a rejection.
func (c Chain) Verify(ctx context.Context, token string) (Identity, error) {
	var rejected, failed error
	for _, v := range c {
		id, err := v.Verify(ctx, token)
		switch {
		case err == nil:
			return id, nil
		case errors.Is(err, ErrUnauthenticated):
			rejected = err
		default:
			failed = err
		}
	}
	// A verifier that could not answer outranks one that rejected the token.
	if failed != nil {
		return Identity{}, failed
	}
	if rejected != nil {
		return Identity{}, rejected
	}
	return Identity{}, ErrUnauthenticated
}

// Middleware rejects the request with 401 unless the bearer token verifies.
// A verifier that could not be reached answers 503 instead.
func Middleware(verifier Verifier, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticated.Error()})
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				logger.Debug("token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticated.Error()})
				return
			}
			logger.Error("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication service unavailable"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Middleware.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
