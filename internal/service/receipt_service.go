package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
	"github.com/vmlandae/reemplazos-backend/internal/sheet"
	"github.com/vmlandae/reemplazos-backend/internal/validation"
)

// CreateReceiptInput abre una recepción de servicio para un reemplazo.
type CreateReceiptInput struct {
	ReplacementID int
	SchoolID      int
	CandidatoRUT  string
	CreatedBy     string
}

// EvaluateReceiptInput cierra una recepción con la evaluación del colegio.
type EvaluateReceiptInput struct {
	Status      string
	Rating      int
	Comentarios string
}

// ReceiptService administra las recepciones de servicio: la evaluación que
// el colegio hace del reemplazante al terminar el período.
type ReceiptService struct {
	store    repository.TableStore
	requests *RequestService
	table    string
	now      func() time.Time
}

func NewReceiptService(store repository.TableStore, requests *RequestService, table string) *ReceiptService {
	return &ReceiptService{store: store, requests: requests, table: table, now: time.Now}
}

func (s *ReceiptService) WithClock(now func() time.Time) *ReceiptService {
	s.now = now
	return s
}

// Create abre una recepción en estado pendiente. La solicitud debe existir.
func (s *ReceiptService) Create(ctx context.Context, actor *models.User, in CreateReceiptInput) (*models.Receipt, error) {
	if !actor.CanManageSchool(in.SchoolID) {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidateRUT(in.CandidatoRUT); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if _, err := s.requests.Get(ctx, in.ReplacementID); err != nil {
		return nil, err
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	maxID := 0
	for i := range all {
		if all[i].ReplacementID == in.ReplacementID && all[i].Status == models.ReceiptStatusPendiente {
			return nil, apperror.New(apperror.ErrCodeConflict,
				fmt.Sprintf("el reemplazo %d ya tiene una recepción pendiente", in.ReplacementID))
		}
		if all[i].ReceptionID > maxID {
			maxID = all[i].ReceptionID
		}
	}

	receipt := &models.Receipt{
		ReceptionID:   maxID + 1,
		ReplacementID: in.ReplacementID,
		SchoolID:      in.SchoolID,
		CandidatoRUT:  in.CandidatoRUT,
		Status:        models.ReceiptStatusPendiente,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     s.now(),
	}

	if err := s.store.AppendRow(ctx, s.table, sheet.SerializeReceipt(receipt)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo guardar la recepción")
	}

	logger.Log.WithFields(map[string]interface{}{
		"reception_id":   receipt.ReceptionID,
		"replacement_id": receipt.ReplacementID,
	}).Info("receipt service: recepción creada")

	return receipt, nil
}

// List retorna todas las recepciones.
func (s *ReceiptService) List(ctx context.Context) ([]models.Receipt, error) {
	rows, err := s.store.ReadTable(ctx, s.table)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer la tabla de recepciones")
	}
	out := make([]models.Receipt, 0, len(rows))
	for _, row := range rows {
		out = append(out, *sheet.DeserializeReceipt(row))
	}
	return out, nil
}

// ListBySchool retorna las recepciones de un colegio.
func (s *ReceiptService) ListBySchool(ctx context.Context, schoolID int) ([]models.Receipt, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Receipt, 0)
	for i := range all {
		if all[i].SchoolID == schoolID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Get retorna una recepción por id.
func (s *ReceiptService) Get(ctx context.Context, receptionID int) (*models.Receipt, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ReceptionID == receptionID {
			return &all[i], nil
		}
	}
	return nil, apperror.ErrReceiptNotFound
}

// Evaluate cierra una recepción pendiente como conforme u objetada, con
// nota y comentarios.
func (s *ReceiptService) Evaluate(ctx context.Context, actor *models.User, receptionID int, in EvaluateReceiptInput) (*models.Receipt, error) {
	if in.Status != models.ReceiptStatusConforme && in.Status != models.ReceiptStatusObjetada {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("estado de recepción inválido: %s", in.Status))
	}
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateComment(in.Comentarios); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	rows, err := s.store.ReadTable(ctx, s.table)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer la tabla de recepciones")
	}

	var updated *models.Receipt
	for _, row := range rows {
		receipt := sheet.DeserializeReceipt(row)
		if receipt.ReceptionID != receptionID {
			continue
		}
		if !actor.CanManageSchool(receipt.SchoolID) {
			return nil, apperror.ErrForbidden
		}
		if receipt.Status != models.ReceiptStatusPendiente {
			return nil, apperror.New(apperror.ErrCodeConflict, "la recepción ya fue evaluada")
		}
		receipt.Status = in.Status
		receipt.Rating = in.Rating
		receipt.Comentarios = in.Comentarios
		now := s.now()
		receipt.UpdatedAt = &now
		for k, v := range sheet.SerializeReceipt(receipt) {
			row[k] = v
		}
		updated = receipt
		break
	}
	if updated == nil {
		return nil, apperror.ErrReceiptNotFound
	}

	if err := s.store.WriteTable(ctx, s.table, rows); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo actualizar la recepción")
	}

	logger.Log.WithFields(map[string]interface{}{
		"reception_id": receptionID,
		"status":       updated.Status,
	}).Info("receipt service: recepción evaluada")

	return updated, nil
}
