package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

// ErrorHandler procesa los errores de forma centralizada: mapea los
// AppError a su código HTTP y enmascara los errores internos.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("error en la solicitud")
		}

		statusCode := http.StatusInternalServerError
		message := "error interno del servidor"

		var appErr *apperror.AppError
		var valErr *service.ValidationError
		switch {
		case errors.As(err.Err, &appErr):
			statusCode = appErr.HTTPStatus
			message = appErr.Message
		case errors.As(err.Err, &valErr):
			statusCode = http.StatusBadRequest
			message = valErr.Error()
		default:
			if msg := err.Error(); msg != "" && !containsInternalKeywords(msg) {
				message = msg
				statusCode = http.StatusBadRequest
			}
		}

		c.JSON(statusCode, gin.H{"error": message})
	}
}

// containsInternalKeywords detecta mensajes de errores internos que no
// deben llegar al cliente.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	lower := strings.ToLower(s)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
