package service

import (
	"context"
	"fmt"

	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/normalizer"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
	"github.com/vmlandae/reemplazos-backend/internal/sheet"
)

// Etapas del flujo de candidatos: oficina central valida el pool, propone
// candidatos para una solicitud y el colegio elige.
const (
	CandidateStageValidar     = "validar"
	CandidateStageSeleccionar = "seleccionar"
	CandidateStageElegir      = "elegir"
)

// ApplicantService mantiene el pool de postulantes: lee la tabla cruda, la
// normaliza y publica la tabla canónica que consume el matching.
type ApplicantService struct {
	store      repository.TableStore
	norm       *normalizer.Normalizer
	rawTable   string
	cleanTable string
}

func NewApplicantService(store repository.TableStore, norm *normalizer.Normalizer, rawTable, cleanTable string) *ApplicantService {
	return &ApplicantService{
		store:      store,
		norm:       norm,
		rawTable:   rawTable,
		cleanTable: cleanTable,
	}
}

// RefreshPool lee el pool crudo, lo normaliza y reescribe la tabla canónica.
// Los flags de candidato y el CV ya guardados se preservan por RUT/email.
func (s *ApplicantService) RefreshPool(ctx context.Context) (int, error) {
	rawRows, err := s.store.ReadTable(ctx, s.rawTable)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer el pool crudo")
	}

	raws := make([]models.RawApplicant, 0, len(rawRows))
	for _, row := range rawRows {
		raws = append(raws, models.RawApplicant(row))
	}
	cleaned := s.norm.Normalize(raws)

	// Preservar el estado del flujo de candidatos entre refrescos.
	previous, err := s.Pool(ctx)
	if err == nil && len(previous) > 0 {
		byKey := make(map[string]*models.Applicant, len(previous))
		for i := range previous {
			byKey[applicantKey(&previous[i])] = &previous[i]
		}
		for i := range cleaned {
			if prev, ok := byKey[applicantKey(&cleaned[i])]; ok {
				cleaned[i].Validado = prev.Validado
				cleaned[i].Seleccionado = prev.Seleccionado
				cleaned[i].Elegido = prev.Elegido
				cleaned[i].CVFile = prev.CVFile
			}
		}
	}

	rows := make([]map[string]string, 0, len(cleaned))
	for i := range cleaned {
		rows = append(rows, sheet.SerializeApplicant(&cleaned[i]))
	}
	if err := s.store.WriteTable(ctx, s.cleanTable, rows); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo escribir el pool limpio")
	}

	logger.Log.WithFields(map[string]interface{}{
		"filas_crudas": len(rawRows),
		"postulantes":  len(cleaned),
	}).Info("applicant service: pool refrescado")

	return len(cleaned), nil
}

// Pool retorna el pool canónico completo.
func (s *ApplicantService) Pool(ctx context.Context) ([]models.Applicant, error) {
	rows, err := s.store.ReadTable(ctx, s.cleanTable)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer el pool limpio")
	}

	out := make([]models.Applicant, 0, len(rows))
	for _, row := range rows {
		out = append(out, *sheet.DeserializeApplicant(row))
	}
	return out, nil
}

// GetByRUT busca un postulante canónico por RUT.
func (s *ApplicantService) GetByRUT(ctx context.Context, rut string) (*models.Applicant, error) {
	rut = normalizer.CanonicalRUT(rut)
	pool, err := s.Pool(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pool {
		if pool[i].RUT == rut {
			return &pool[i], nil
		}
	}
	return nil, apperror.ErrApplicantNotFound
}

// SetCandidateStage marca o desmarca una etapa del flujo de candidatos para
// el postulante con el RUT dado.
func (s *ApplicantService) SetCandidateStage(ctx context.Context, rut, stage string, value bool) error {
	rut = normalizer.CanonicalRUT(rut)

	rows, err := s.store.ReadTable(ctx, s.cleanTable)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer el pool limpio")
	}

	found := false
	for _, row := range rows {
		if row["rut"] != rut {
			continue
		}
		found = true
		a := sheet.DeserializeApplicant(row)
		switch stage {
		case CandidateStageValidar:
			a.Validado = value
		case CandidateStageSeleccionar:
			a.Seleccionado = value
		case CandidateStageElegir:
			a.Elegido = value
		default:
			return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("etapa de candidato desconocida: %s", stage))
		}
		for k, v := range sheet.SerializeApplicant(a) {
			row[k] = v
		}
		break
	}
	if !found {
		return apperror.ErrApplicantNotFound
	}

	if err := s.store.WriteTable(ctx, s.cleanTable, rows); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo actualizar el pool limpio")
	}
	return nil
}

// AttachCV asocia el archivo de CV guardado al postulante.
func (s *ApplicantService) AttachCV(ctx context.Context, rut, filename string) error {
	rut = normalizer.CanonicalRUT(rut)

	rows, err := s.store.ReadTable(ctx, s.cleanTable)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer el pool limpio")
	}

	found := false
	for _, row := range rows {
		if row["rut"] == rut {
			row["cv_file"] = filename
			found = true
			break
		}
	}
	if !found {
		return apperror.ErrApplicantNotFound
	}

	if err := s.store.WriteTable(ctx, s.cleanTable, rows); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo actualizar el pool limpio")
	}
	return nil
}

func applicantKey(a *models.Applicant) string {
	if a.RUT != "" {
		return "rut|" + a.RUT
	}
	return "email|" + a.Email
}
