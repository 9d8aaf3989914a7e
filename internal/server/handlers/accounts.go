package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/pkg/clients/identity"
)

// AccountHandler proxies account registration and login to the identity service.
type AccountHandler struct {
	client identity.Client
	logger *zap.Logger
}

// NewAccountHandler proxies to client.
func NewAccountHandler(client identity.Client, logger *zap.Logger) *AccountHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountHandler{client: client, logger: logger}
}

// Register mounts the public account routes.
func (h *AccountHandler) Register(g *gin.RouterGroup) {
	g.POST("/register", h.SignUp)
	g.POST("/login", h.Login)
	g.POST("/verify", h.Verify)
	g.POST("/resend_code", h.ResendCode)
}

// SignUp responds to POST /register with the identity service's confirmation.
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req models.Credentials
	if !h.bind(c, &req) {
		return
	}
	msg, err := h.client.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Login responds to POST /login with an access token.
func (h *AccountHandler) Login(c *gin.Context) {
	var req models.Credentials
	if !h.bind(c, &req) {
		return
	}
	token, err := h.client.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Verify responds to POST /verify by checking an emailed confirmation code.
func (h *AccountHandler) Verify(c *gin.Context) {
	var req models.VerificationRequest
	if !h.bind(c, &req) {
		return
	}
	msg, err := h.client.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// ResendCode responds to POST /resend_code.
func (h *AccountHandler) ResendCode(c *gin.Context) {
	var req models.ResendCodeRequest
	if !h.bind(c, &req) {
		return
	}
	msg, err := h.client.ResendCode(c.Request.Context(), req.Email)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *AccountHandler) bind(c *gin.Context, req any) bool {
	if err := bindJSON(c, req); err != nil {
		respondError(c, h.logger, "account", err)
		return false
	}
	return true
}

// upstreamError passes 4xx answers through and reports everything else as 502.
func (h *AccountHandler) upstreamError(c *gin.Context, err error) {
	var apiErr *identity.APIError
	if errors.As(err, &apiErr) && apiErr.IsClientError() {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	h.logger.Error("identity service call failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "identity service unavailable"})
}
