package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/calendar"
	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/domain/valueobject"
	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
	"github.com/vmlandae/reemplazos-backend/internal/sheet"
	"github.com/vmlandae/reemplazos-backend/internal/validation"
)

// Las respuestas del formulario externo anteriores al corte corresponden a
// una versión vieja del formulario y no se importan.
var gformCutoff = time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)

// ValidationError agrupa los mensajes de las reglas violadas por una
// solicitud, para que el handler los muestre todos juntos.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "solicitud inválida: " + strings.Join(e.Messages, " ")
}

// CreateRequestInput son los datos del formulario interno de solicitud.
type CreateRequestInput struct {
	SchoolID   int
	SchoolName string
	CreatedBy  string

	NivelEducativo []string
	Asignatura     map[string][]string
	Curso          map[string][]string

	FechaInicio time.Time
	FechaFin    time.Time
	// DiasSeleccionados permite deseleccionar días puntuales del rango; si
	// viene vacío se usan todos los días hábiles.
	DiasSeleccionados     []string
	HorariosSeleccionados map[string][]string

	Jefatura                     string
	HorasContrato                int
	MencionEspecialidadPostitulo string
	VacanteConfidencial          string

	Genero             string
	AniosEgreso        int
	Disponibilidad     string
	CandidatoPreferido string
	OtrasPreferencias  string
	Comentarios        string
}

// RequestService administra las solicitudes de reemplazo.
type RequestService struct {
	store    repository.TableStore
	cat      *catalog.Catalog
	cal      *calendar.Calendar
	table    string
	gformTbl string
	now      func() time.Time
}

func NewRequestService(store repository.TableStore, cat *catalog.Catalog, cal *calendar.Calendar, table, gformTable string) *RequestService {
	return &RequestService{
		store:    store,
		cat:      cat,
		cal:      cal,
		table:    table,
		gformTbl: gformTable,
		now:      time.Now,
	}
}

// WithClock fija el reloj del servicio, para los tests.
func (s *RequestService) WithClock(now func() time.Time) *RequestService {
	s.now = now
	return s
}

// Create construye una solicitud desde el formulario interno, la valida y
// la persiste. El replacement_id es el máximo existente más uno.
func (s *RequestService) Create(ctx context.Context, in CreateRequestInput) (*models.Request, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	req := &models.Request{
		ReplacementID:                nextReplacementID(existing),
		SchoolID:                     in.SchoolID,
		SchoolName:                   in.SchoolName,
		CreatedBy:                    in.CreatedBy,
		NivelEducativo:               in.NivelEducativo,
		Asignatura:                   in.Asignatura,
		Curso:                        in.Curso,
		FechaInicio:                  in.FechaInicio,
		FechaFin:                     in.FechaFin,
		DiasSeleccionados:            in.DiasSeleccionados,
		HorariosSeleccionados:        in.HorariosSeleccionados,
		Jefatura:                     in.Jefatura,
		HorasContrato:                in.HorasContrato,
		MencionEspecialidadPostitulo: in.MencionEspecialidadPostitulo,
		VacanteConfidencial:          in.VacanteConfidencial,
		Genero:                       in.Genero,
		AniosEgreso:                  in.AniosEgreso,
		Disponibilidad:               in.Disponibilidad,
		CandidatoPreferido:           in.CandidatoPreferido,
		OtrasPreferencias:            in.OtrasPreferencias,
		Comentarios:                  in.Comentarios,
		Status:                       valueobject.RequestStatusCreada,
		CreatedWith:                  models.CreatedWithWebApp,
		CreatedAt:                    s.now(),
	}

	if len(req.DiasSeleccionados) == 0 {
		if rango, rerr := valueobject.NewRangoFechas(req.FechaInicio, req.FechaFin); rerr == nil {
			req.DiasSeleccionados = s.cal.BusinessDaysISO(rango.Inicio, rango.Fin)
		}
	}
	req.DiasDeLaSemana = weekdaysOf(req.DiasSeleccionados)

	if ok, msgs := validation.ValidateRequest(req); !ok {
		return nil, &ValidationError{Messages: msgs}
	}

	if err := s.store.AppendRow(ctx, s.table, sheet.SerializeRequest(req)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo guardar la solicitud")
	}

	logger.Log.WithFields(map[string]interface{}{
		"replacement_id": req.ReplacementID,
		"school_id":      req.SchoolID,
	}).Info("request service: solicitud creada")

	return req, nil
}

// List retorna todas las solicitudes.
func (s *RequestService) List(ctx context.Context) ([]models.Request, error) {
	rows, err := s.store.ReadTable(ctx, s.table)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer la tabla de solicitudes")
	}

	out := make([]models.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, *sheet.DeserializeRequest(row))
	}
	return out, nil
}

// Get retorna una solicitud por replacement_id.
func (s *RequestService) Get(ctx context.Context, replacementID int) (*models.Request, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ReplacementID == replacementID {
			return &all[i], nil
		}
	}
	return nil, apperror.ErrRequestNotFound
}

// UpdateStatus transiciona el estado de una solicitud validando la máquina
// de estados: creada→aprobada|rechazada, aprobada→finalizada|rechazada.
func (s *RequestService) UpdateStatus(ctx context.Context, replacementID int, newStatus string) (*models.Request, error) {
	status, err := valueobject.NewRequestStatus(newStatus)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ReadTable(ctx, s.table)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer la tabla de solicitudes")
	}

	var updated *models.Request
	for _, row := range rows {
		req := sheet.DeserializeRequest(row)
		if req.ReplacementID != replacementID {
			continue
		}
		if !req.Status.CanTransitionTo(status) {
			return nil, apperror.New(apperror.ErrCodeConflict,
				fmt.Sprintf("transición de estado inválida: %s → %s", req.Status, status))
		}
		req.Status = status
		now := s.now()
		req.UpdatedAt = &now
		for k, v := range sheet.SerializeRequest(req) {
			row[k] = v
		}
		updated = req
		break
	}
	if updated == nil {
		return nil, apperror.ErrRequestNotFound
	}

	if err := s.store.WriteTable(ctx, s.table, rows); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo actualizar la solicitud")
	}

	logger.Log.WithFields(map[string]interface{}{
		"replacement_id": replacementID,
		"status":         string(updated.Status),
	}).Info("request service: estado actualizado")

	return updated, nil
}

// SchoolLookup resuelve school_id desde el nombre canónico del colegio.
type SchoolLookup interface {
	GetByName(ctx context.Context, name string) (*models.School, error)
}

// ImportGForm lee la tabla de respuestas del formulario externo, las limpia
// al formato interno y persiste las que aún no existen. Retorna cuántas
// solicitudes nuevas se importaron.
func (s *RequestService) ImportGForm(ctx context.Context, schools SchoolLookup) (int, error) {
	gformRows, err := s.store.ReadTable(ctx, s.gformTbl)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer el formulario externo")
	}

	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	existingKeys := make(map[string]struct{})
	for i := range existing {
		if existing[i].CreatedWith == models.CreatedWithGForm {
			existingKeys[existing[i].GFormKey()] = struct{}{}
		}
	}

	nextID := nextReplacementID(existing)
	seen := make(map[string]struct{})
	imported := 0

	for _, raw := range gformRows {
		req, err := s.requestFromGFormRow(ctx, raw, schools)
		if err != nil {
			logger.Log.WithField("error", err.Error()).Warn("request service: fila gform descartada")
			continue
		}
		if req == nil {
			continue
		}

		key := req.GFormKey()
		if _, ok := existingKeys[key]; ok {
			continue
		}
		// El propio lote también puede traer duplicados.
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		req.ReplacementID = nextID

		if ok, msgs := validation.ValidateRequest(req); !ok {
			logger.Log.WithFields(map[string]interface{}{
				"key":     key,
				"errores": msgs,
			}).Warn("request service: solicitud gform inválida, no se importa")
			continue
		}

		if err := s.store.AppendRow(ctx, s.table, sheet.SerializeRequest(req)); err != nil {
			return imported, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo guardar la solicitud importada")
		}
		nextID++
		imported++
	}

	if imported > 0 {
		logger.Log.WithField("importadas", imported).Info("request service: importación gform completada")
	}
	return imported, nil
}

// requestFromGFormRow limpia una respuesta cruda del formulario externo.
// Retorna (nil, nil) para las filas anteriores al corte de importación.
func (s *RequestService) requestFromGFormRow(ctx context.Context, raw map[string]string, schools SchoolLookup) (*models.Request, error) {
	// Solo las columnas mapeadas; el resto del formulario se ignora.
	row := make(map[string]string, len(s.cat.GFormColsMap))
	for external, internal := range s.cat.GFormColsMap {
		if v, ok := raw[external]; ok {
			row[internal] = strings.TrimSpace(v)
		}
	}

	createdAt, err := parseGFormTimestamp(row["created_at"])
	if err != nil {
		return nil, fmt.Errorf("marca temporal ilegible %q: %w", row["created_at"], err)
	}
	if !createdAt.After(gformCutoff) {
		return nil, nil
	}

	schoolName := row["school_name"]
	if mapped, ok := s.cat.SchoolNameMap[schoolName]; ok {
		schoolName = mapped
	}

	// Niveles: etiquetas del formulario → niveles canónicos.
	var niveles []string
	for _, tok := range strings.Split(row["nivel_educativo"], ",") {
		tok = strings.TrimSpace(tok)
		if nivel, ok := s.cat.EDMapping[tok]; ok {
			niveles = append(niveles, nivel)
		}
	}

	// Asignaturas: la compuesta se preserva antes de separar por comas.
	asigs := parseGFormSubjects(row["asignatura"], s.cat.AsignaturaCompuesta)
	asignatura := make(map[string][]string, len(niveles))
	curso := make(map[string][]string, len(niveles))
	for _, nivel := range niveles {
		asignatura[nivel] = asigs
		curso[nivel] = []string{}
	}

	fechaInicio, err := time.Parse("2/1/2006", row["fecha_inicio"])
	if err != nil {
		return nil, fmt.Errorf("fecha de inicio ilegible %q: %w", row["fecha_inicio"], err)
	}
	fechaFin, err := time.Parse("2/1/2006", row["fecha_fin"])
	if err != nil {
		return nil, fmt.Errorf("fecha de término ilegible %q: %w", row["fecha_fin"], err)
	}

	req := &models.Request{
		SchoolName:        schoolName,
		CreatedBy:         row["created_by"],
		NivelEducativo:    niveles,
		Asignatura:        asignatura,
		Curso:             curso,
		FechaInicio:       fechaInicio,
		FechaFin:          fechaFin,
		DiasSeleccionados: s.cal.BusinessDaysISO(fechaInicio, fechaFin),
		HorasContrato:     sheet.ParseInt(row["horas_contrato"]),
		Jefatura:          models.JefaturaNoAplica,
		Genero:            string(valueobject.GeneroIndiferente),
		Disponibilidad:    string(valueobject.DisponibilidadCompleta),
		Status:            valueobject.RequestStatusCreada,
		CreatedWith:       models.CreatedWithGForm,
		CreatedAt:         createdAt,
	}
	req.DiasDeLaSemana = s.cal.Weekdays(fechaInicio, fechaFin)

	now := s.now()
	req.ProcessedAt = &now

	if schools != nil {
		if school, err := schools.GetByName(ctx, schoolName); err == nil {
			req.SchoolID = school.ID
		}
	}

	return req, nil
}

func parseGFormSubjects(raw, compound string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	if strings.Contains(raw, compound) {
		out = append(out, compound)
		raw = strings.ReplaceAll(raw, compound, "")
	}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// parseGFormTimestamp acepta la marca temporal del formulario con día
// primero, con o sin segundos.
func parseGFormTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{"2/1/2006 15:04:05", "2/1/2006 15:04", sheet.TimestampLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de fecha no reconocido")
}

func nextReplacementID(existing []models.Request) int {
	max := 0
	for i := range existing {
		if existing[i].ReplacementID > max {
			max = existing[i].ReplacementID
		}
	}
	return max + 1
}

// weekdaysOf deduce los días de semana canónicos de fechas ISO, únicos y en
// orden de semana.
func weekdaysOf(isoDays []string) []string {
	present := make(map[string]struct{})
	for _, d := range isoDays {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		present[calendar.WeekdayName(t)] = struct{}{}
	}

	var out []string
	for _, name := range []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"} {
		if _, ok := present[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
