package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/models"
)

// RequireRole exige que el usuario autenticado tenga al menos el rango del
// rol indicado. Debe ir después de AuthMiddleware.
// Uso: router.POST("/schools", RequireRole(models.RoleOficinaCentral), handler.Create)
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(ContextRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "se requiere autenticación"})
			return
		}

		role, ok := raw.(string)
		if !ok || !models.RoleAtLeast(role, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permisos insuficientes"})
			return
		}

		c.Next()
	}
}
