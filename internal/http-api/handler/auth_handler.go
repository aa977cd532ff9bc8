package handler

import (
	"errors"
	"net/http"
	"time"

	"gamereviews/internal/http-api/dto"
	"gamereviews/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService service.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrNameInUse) || errors.Is(err, service.ErrEmailInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": "Account creation failed"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
		UserID:      user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
	})
}
