package controllers

import (
	"errors"
	"net/http"

	"github.com/guraspy/personalized-workout-api/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

type LogoutInput struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	pair, err := h.Svc.Login(c.Request.Context(), input.Username, input.Password)
	if errors.Is(err, services.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials."})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AuthController) Refresh(c *gin.Context) {
	var input RefreshInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	access, err := h.Svc.Refresh(c.Request.Context(), input.Refresh)
	if errors.Is(err, services.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired."})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *AuthController) Logout(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	var input LogoutInput
	// A missing or unreadable body is the same as a missing token.
	_ = c.ShouldBindJSON(&input)

	err := h.Svc.Logout(c.Request.Context(), userID, input.RefreshToken)
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token or token not provided."})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusResetContent, gin.H{"detail": "Successfully logged out."})
}

// Me returns the authenticated user's public profile.
func (h *AuthController) Me(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	user, err := h.Svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
