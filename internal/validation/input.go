package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vmlandae/reemplazos-backend/internal/models"
)

// Límites de validación
const (
	MinNameLength     = 2
	MaxNameLength     = 100
	MinPasswordLength = 8
	MaxPasswordLength = 72 // límite de bcrypt
	MaxCommentLength  = 2000
	MinRating         = 1
	MaxRating         = 7 // escala de notas chilena
)

// ValidateLength verifica el largo de un string en runas.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s debe tener al menos %d caracteres", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s debe tener a lo más %d caracteres", fieldName, max)
	}
	return nil
}

// ValidateEmail verifica el formato de un email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("el email es obligatorio")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("formato de email inválido")
	}

	localPart, domainPart := parts[0], parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("la parte local del email debe tener entre 1 y 64 caracteres")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("el dominio del email debe tener entre 1 y 255 caracteres")
	}
	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("el dominio del email debe contener un punto")
	}

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("la parte local del email contiene caracteres inválidos")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("el dominio del email tiene un formato inválido")
	}

	return nil
}

// ValidateNonEmpty verifica que el valor no sea vacío ni puros espacios.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s no puede estar vacío", fieldName)
	}
	return nil
}

// ValidateName verifica un nombre de usuario o colegio.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("el nombre es obligatorio")
	}
	return ValidateLength("el nombre", strings.TrimSpace(name), MinNameLength, MaxNameLength)
}

// ValidateRole verifica que el rol exista.
func ValidateRole(role string) error {
	if _, ok := models.ValidRoles[role]; !ok {
		return fmt.Errorf("rol desconocido: %s", role)
	}
	return nil
}

// ValidateRating verifica la nota de una recepción de servicio.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("la nota debe estar entre %d y %d", MinRating, MaxRating)
	}
	return nil
}

// ValidateComment verifica un comentario libre.
func ValidateComment(comment string) error {
	return ValidateLength("el comentario", comment, 0, MaxCommentLength)
}

// ValidateRUT verifica la forma general de un RUT chileno (sin dígito
// verificador aritmético, solo la forma).
func ValidateRUT(rut string) error {
	if rut == "" {
		return fmt.Errorf("el RUT es obligatorio")
	}
	rutRegex := regexp.MustCompile(`^[0-9]{1,2}\.?[0-9]{3}\.?[0-9]{3}-[0-9Kk]$`)
	if !rutRegex.MatchString(strings.TrimSpace(rut)) {
		return fmt.Errorf("formato de RUT inválido: %s", rut)
	}
	return nil
}
