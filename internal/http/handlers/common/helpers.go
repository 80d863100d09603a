package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmlandae/reemplazos-backend/internal/dto"
	"github.com/vmlandae/reemplazos-backend/internal/http/middleware"
)

var (
	// ErrUserNotFound se retorna cuando el usuario no está en el contexto.
	ErrUserNotFound = errors.New("usuario no encontrado en el contexto")
)

// CurrentUserID extrae el id del usuario autenticado del contexto de gin.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrUserNotFound
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrUserNotFound
	}

	return userID, nil
}

// CurrentUserRole extrae el rol del usuario autenticado.
func CurrentUserRole(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return "", ErrUserNotFound
	}

	role, ok := raw.(string)
	if !ok {
		return "", ErrUserNotFound
	}

	return role, nil
}

// ParseIntParam lee un parámetro entero de la URL.
func ParseIntParam(c *gin.Context, paramName string) (int, error) {
	param := c.Param(paramName)
	if param == "" {
		return 0, fmt.Errorf("falta el parámetro %s", paramName)
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("el parámetro %s debe ser un número", paramName)
	}

	return parsed, nil
}

// RespondError envía una respuesta de error estandarizada.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondSuccess envía una respuesta de éxito estandarizada.
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, dto.SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// RespondUnauthorized envía un 401.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "se requiere autenticación"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondForbidden envía un 403.
func RespondForbidden(c *gin.Context, message string) {
	if message == "" {
		message = "permisos insuficientes"
	}
	RespondError(c, http.StatusForbidden, message)
}

// RespondNotFound envía un 404.
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "recurso no encontrado"
	}
	RespondError(c, http.StatusNotFound, message)
}

// RespondBadRequest envía un 400.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "solicitud incorrecta"
	}
	RespondError(c, http.StatusBadRequest, message)
}
