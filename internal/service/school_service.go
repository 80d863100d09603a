package service

import (
	"context"
	"strings"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
	"github.com/vmlandae/reemplazos-backend/internal/sheet"
	"github.com/vmlandae/reemplazos-backend/internal/validation"
)

// SchoolInput son los campos editables de un colegio.
type SchoolInput struct {
	Name       string
	RBD        string
	Comuna     string
	Direccion  string
	Telefono   string
	AdminEmail string
}

// SchoolService administra el registro de colegios de la red.
type SchoolService struct {
	store repository.TableStore
	table string
	now   func() time.Time
}

func NewSchoolService(store repository.TableStore, table string) *SchoolService {
	return &SchoolService{store: store, table: table, now: time.Now}
}

func (s *SchoolService) WithClock(now func() time.Time) *SchoolService {
	s.now = now
	return s
}

// List retorna todos los colegios registrados.
func (s *SchoolService) List(ctx context.Context) ([]models.School, error) {
	rows, err := s.store.ReadTable(ctx, s.table)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer la tabla de colegios")
	}
	out := make([]models.School, 0, len(rows))
	for _, row := range rows {
		out = append(out, *sheet.DeserializeSchool(row))
	}
	return out, nil
}

// Get retorna un colegio por id.
func (s *SchoolService) Get(ctx context.Context, id int) (*models.School, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, apperror.ErrSchoolNotFound
}

// GetByName retorna un colegio por su nombre canónico, sin distinguir
// mayúsculas.
func (s *SchoolService) GetByName(ctx context.Context, name string) (*models.School, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Name, name) {
			return &all[i], nil
		}
	}
	return nil, apperror.ErrSchoolNotFound
}

// Create registra un colegio nuevo. Solo oficina central o superior.
func (s *SchoolService) Create(ctx context.Context, actor *models.User, in SchoolInput) (*models.School, error) {
	if !models.RoleAtLeast(actor.Role, models.RoleOficinaCentral) {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidateNonEmpty("nombre", in.Name); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	maxID := 0
	for i := range all {
		if strings.EqualFold(all[i].Name, in.Name) {
			return nil, apperror.New(apperror.ErrCodeConflict, "ya existe un colegio con ese nombre")
		}
		if all[i].ID > maxID {
			maxID = all[i].ID
		}
	}

	school := &models.School{
		ID:         maxID + 1,
		Name:       in.Name,
		RBD:        in.RBD,
		Comuna:     in.Comuna,
		Direccion:  in.Direccion,
		Telefono:   in.Telefono,
		AdminEmail: in.AdminEmail,
		Version:    1,
		CreatedAt:  s.now(),
	}

	if err := s.store.AppendRow(ctx, s.table, sheet.SerializeSchool(school)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo guardar el colegio")
	}

	logger.Log.WithFields(map[string]interface{}{
		"school_id": school.ID,
		"name":      school.Name,
	}).Info("school service: colegio creado")

	return school, nil
}

// Update modifica los datos de un colegio e incrementa su versión. El
// administrador del propio colegio también puede editarlo.
func (s *SchoolService) Update(ctx context.Context, actor *models.User, id int, in SchoolInput) (*models.School, error) {
	if !actor.CanManageSchool(id) {
		return nil, apperror.ErrForbidden
	}

	rows, err := s.store.ReadTable(ctx, s.table)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer la tabla de colegios")
	}

	var updated *models.School
	for _, row := range rows {
		school := sheet.DeserializeSchool(row)
		if school.ID != id {
			continue
		}
		if in.Name != "" {
			school.Name = in.Name
		}
		if in.RBD != "" {
			school.RBD = in.RBD
		}
		if in.Comuna != "" {
			school.Comuna = in.Comuna
		}
		if in.Direccion != "" {
			school.Direccion = in.Direccion
		}
		if in.Telefono != "" {
			school.Telefono = in.Telefono
		}
		if in.AdminEmail != "" {
			school.AdminEmail = in.AdminEmail
		}
		school.Version++
		school.UpdatedAt = s.now()
		for k, v := range sheet.SerializeSchool(school) {
			row[k] = v
		}
		updated = school
		break
	}
	if updated == nil {
		return nil, apperror.ErrSchoolNotFound
	}

	if err := s.store.WriteTable(ctx, s.table, rows); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo actualizar el colegio")
	}
	return updated, nil
}
