package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/dto"
	"github.com/vmlandae/reemplazos-backend/internal/http/handlers/common"
	"github.com/vmlandae/reemplazos-backend/internal/service"
	"github.com/vmlandae/reemplazos-backend/internal/validation"
)

// AuthHandler es la capa HTTP de registro, login y manejo de usuarios.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register maneja POST /auth/register. Requiere un usuario autenticado con
// rango suficiente para el rol solicitado.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if req.Role != "" {
		if err := validation.ValidateRole(req.Role); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}

	creator, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	meta := map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}

	result, err := h.auth.Register(c.Request.Context(), creator, service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		SchoolID: req.SchoolID,
	}, meta)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:   result.User,
		Tokens: result.TokenPair,
	})
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		common.RespondBadRequest(c, "la contraseña es obligatoria")
		return
	}

	meta := map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, meta)
	if err != nil {
		common.RespondUnauthorized(c, "credenciales inválidas")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:   result.User,
		Tokens: result.TokenPair,
	})
}

// Refresh maneja POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	meta := map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}

	tokenPair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, meta)
	if err != nil {
		common.RespondUnauthorized(c, "no se pudo renovar la sesión")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokenPair})
}

// Logout maneja POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "sesión cerrada", nil)
}

// Me maneja GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers maneja GET /users. Los administradores de colegio solo ven los
// usuarios de su colegio.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	viewer, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	users, err := h.auth.ListUsers(c.Request.Context(), viewer)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ChangeRole maneja PATCH /users/:id/role.
func (h *AuthHandler) ChangeRole(c *gin.Context) {
	actor, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateRole(req.Role); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.auth.ChangeRole(c.Request.Context(), actor, userID, req.Role); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "rol actualizado", nil)
}
