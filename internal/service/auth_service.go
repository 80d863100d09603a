package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
	"github.com/vmlandae/reemplazos-backend/internal/validation"
)

// AuthRepository describe lo que AuthService necesita del almacenamiento.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, schoolID *int) ([]models.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) error
	UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error
	CreateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, refreshToken string) error
	GetSession(ctx context.Context, refreshToken string) (*models.Session, error)
}

// AuthService encapsula registro, login y manejo de roles.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
}

// RegisterInput son los datos de un usuario nuevo.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	SchoolID *int
}

// LoginInput son las credenciales de entrada.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult es el resultado de un registro o login.
type AuthResult struct {
	User      *models.User
	TokenPair *TokenPair
}

func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
	}
}

// Register crea un usuario nuevo. Solo un usuario con rango suficiente puede
// asignar roles: nadie crea usuarios con más privilegio que el propio.
func (s *AuthService) Register(ctx context.Context, creator *models.User, in RegisterInput, meta map[string]string) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUserColegio
	}
	if err := validation.ValidateRole(role); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	if creator != nil && !models.RoleAtLeast(creator.Role, role) {
		return nil, fmt.Errorf("auth service: no puede crear usuarios con un rol superior al propio")
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("auth service: el email ya está registrado")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: no se pudo hashear la contraseña: %w", err)
	}

	name := in.Name
	if name == "" {
		name = deriveName(in.Email)
	}

	user := &models.User{
		Email:        strings.ToLower(in.Email),
		Name:         name,
		PasswordHash: string(passHash),
		Role:         role,
		SchoolID:     in.SchoolID,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := s.openSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Login verifica credenciales y retorna tokens.
func (s *AuthService) Login(ctx context.Context, in LoginInput, meta map[string]string) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	user, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("auth service: email o contraseña incorrectos")
	}

	if !user.IsActive {
		return nil, fmt.Errorf("auth service: la cuenta está desactivada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("auth service: email o contraseña incorrectos")
	}

	if err := s.repo.UpdateLastLoginAt(ctx, user.ID); err != nil {
		// No interrumpe el login.
		if logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Warn("auth service: no se pudo actualizar last_login_at")
		}
	}

	tokenPair, err := s.openSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Refresh emite un par de tokens nuevo y rota la sesión.
func (s *AuthService) Refresh(ctx context.Context, oldToken string, meta map[string]string) (*TokenPair, error) {
	claims, err := s.tokenManager.ParseRefresh(oldToken)
	if err != nil {
		return nil, fmt.Errorf("auth service: refresh token inválido: %w", err)
	}

	if _, err := s.repo.GetSession(ctx, oldToken); err != nil {
		return nil, fmt.Errorf("auth service: la sesión no existe o expiró")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("auth service: subject inválido: %w", err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteSession(ctx, oldToken); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user, meta)
}

// Logout invalida la sesión del refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteSession(ctx, refreshToken)
}

// GetUser retorna un usuario por ID.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers retorna los usuarios visibles para quien consulta: oficina
// central ve todo, los roles de colegio solo su colegio.
func (s *AuthService) ListUsers(ctx context.Context, viewer *models.User) ([]models.User, error) {
	if models.RoleAtLeast(viewer.Role, models.RoleOficinaCentral) {
		return s.repo.List(ctx, nil)
	}
	if viewer.SchoolID == nil {
		return nil, fmt.Errorf("auth service: el usuario no tiene colegio asignado")
	}
	return s.repo.List(ctx, viewer.SchoolID)
}

// ChangeRole cambia el rol de un usuario. Quien cambia debe superar en rango
// tanto al rol actual del afectado como al rol nuevo.
func (s *AuthService) ChangeRole(ctx context.Context, actor *models.User, userID uuid.UUID, newRole string) error {
	if err := validation.ValidateRole(newRole); err != nil {
		return fmt.Errorf("auth service: %w", err)
	}

	target, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if models.RoleRank[actor.Role] >= models.RoleRank[target.Role] {
		return fmt.Errorf("auth service: no puede modificar a un usuario de rango igual o superior")
	}
	if !models.RoleAtLeast(actor.Role, newRole) {
		return fmt.Errorf("auth service: no puede asignar un rol superior al propio")
	}

	return s.repo.UpdateRole(ctx, userID, newRole)
}

func (s *AuthService) openSession(ctx context.Context, user *models.User, meta map[string]string) (*TokenPair, error) {
	tokenPair, _, refreshExp, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}
	if meta != nil {
		if ua, ok := meta["user_agent"]; ok {
			session.UserAgent = &ua
		}
		if ip, ok := meta["ip"]; ok {
			session.IPAddress = &ip
		}
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// deriveName saca un nombre presentable de la parte local del email.
func deriveName(email string) string {
	local := strings.Split(email, "@")[0]
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	return strings.Title(local)
}
