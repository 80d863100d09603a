package models

import (
	"time"

	"github.com/google/uuid"
)

// User describe un usuario del sistema de reemplazos.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	SchoolID     *int       `db:"school_id" json:"school_id,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Session representa una sesión guardada del usuario.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CanManageSchool indica si el usuario puede administrar el colegio dado.
// Los roles de oficina central o superiores administran cualquier colegio;
// los roles de colegio sólo el propio.
func (u *User) CanManageSchool(schoolID int) bool {
	if RoleAtLeast(u.Role, RoleOficinaCentral) {
		return true
	}
	return u.SchoolID != nil && *u.SchoolID == schoolID
}
