package validation

import (
	"fmt"
	"unicode"
)

// ValidatePassword verifica que una contraseña nueva cumpla los requisitos:
// mínimo 8 caracteres, con mayúsculas, minúsculas y dígitos.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("la contraseña debe tener a lo más %d caracteres", MaxPasswordLength)
	}

	var (
		hasUpper  = false
		hasLower  = false
		hasNumber = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("la contraseña debe contener al menos una mayúscula")
	}
	if !hasLower {
		return fmt.Errorf("la contraseña debe contener al menos una minúscula")
	}
	if !hasNumber {
		return fmt.Errorf("la contraseña debe contener al menos un dígito")
	}

	return nil
}
