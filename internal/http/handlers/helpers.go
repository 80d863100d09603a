package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmlandae/reemplazos-backend/internal/http/handlers/common"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

// currentUser carga el usuario autenticado a partir del contexto.
func currentUser(c *gin.Context, auth *service.AuthService) (*models.User, error) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	return auth.GetUser(c.Request.Context(), userID)
}

// parseUUIDParam lee un parámetro UUID de la URL.
func parseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("falta el parámetro %s", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, fmt.Errorf("el parámetro %s debe ser un UUID válido", paramName)
	}

	return parsed, nil
}
