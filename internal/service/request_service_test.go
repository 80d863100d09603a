package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmlandae/reemplazos-backend/internal/calendar"
	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

var testClock = func() time.Time {
	return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
}

func newRequestService(store repository.TableStore) *RequestService {
	return NewRequestService(store, catalog.Default(), calendar.New(), "requests", "gform").WithClock(testClock)
}

func validCreateInput() CreateRequestInput {
	return CreateRequestInput{
		SchoolID:       1,
		SchoolName:     "Colegio San Andrés",
		CreatedBy:      "director@sanandres.cl",
		NivelEducativo: []string{catalog.NivelMedia},
		Asignatura:     map[string][]string{catalog.NivelMedia: {"Matemática"}},
		Curso:          map[string][]string{catalog.NivelMedia: {"1° Medio"}},
		FechaInicio:    time.Date(2026, 6, 22, 0, 0, 0, 0, time.UTC),
		FechaFin:       time.Date(2026, 6, 26, 0, 0, 0, 0, time.UTC),
		Jefatura:       models.JefaturaSin,
		HorasContrato:  30,
		Genero:         "Indiferente",
		Disponibilidad: "Completa",
	}
}

func TestRequestService_Create_ComputesBusinessDays(t *testing.T) {
	svc := newRequestService(repository.NewMemoryTableStore())

	req, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, 1, req.ReplacementID)
	assert.Equal(t, "creada", string(req.Status))
	assert.Equal(t, models.CreatedWithWebApp, req.CreatedWith)
	assert.Equal(t, []string{
		"2026-06-22", "2026-06-23", "2026-06-24", "2026-06-25", "2026-06-26",
	}, req.DiasSeleccionados)
	assert.Equal(t, []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}, req.DiasDeLaSemana)
}

func TestRequestService_Create_SequentialIDs(t *testing.T) {
	svc := newRequestService(repository.NewMemoryTableStore())

	first, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, 1, first.ReplacementID)
	assert.Equal(t, 2, second.ReplacementID)
}

func TestRequestService_Create_InvalidInput(t *testing.T) {
	svc := newRequestService(repository.NewMemoryTableStore())

	in := validCreateInput()
	in.HorasContrato = 0
	in.Jefatura = ""

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok, "se esperaba un ValidationError, se obtuvo %T", err)
	assert.Contains(t, valErr.Messages, "Debe seleccionar las horas de contrato.")
	assert.Contains(t, valErr.Messages, "Debe seleccionar una jefatura.")

	// Nada quedó persistido.
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRequestService_Get_RoundTrip(t *testing.T) {
	svc := newRequestService(repository.NewMemoryTableStore())

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ReplacementID)
	require.NoError(t, err)

	assert.Equal(t, created.SchoolName, got.SchoolName)
	assert.Equal(t, created.Asignatura, got.Asignatura)
	assert.Equal(t, created.DiasSeleccionados, got.DiasSeleccionados)
}

func TestRequestService_Get_NotFound(t *testing.T) {
	svc := newRequestService(repository.NewMemoryTableStore())

	_, err := svc.Get(context.Background(), 99)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRequestService_UpdateStatus_Transitions(t *testing.T) {
	svc := newRequestService(repository.NewMemoryTableStore())

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ReplacementID, "aprobada")
	require.NoError(t, err)
	assert.Equal(t, "aprobada", string(updated.Status))
	require.NotNil(t, updated.UpdatedAt)

	// aprobada no puede volver a creada.
	_, err = svc.UpdateStatus(context.Background(), created.ReplacementID, "creada")
	require.Error(t, err)

	// aprobada sí puede finalizar.
	updated, err = svc.UpdateStatus(context.Background(), created.ReplacementID, "finalizada")
	require.NoError(t, err)
	assert.Equal(t, "finalizada", string(updated.Status))
}

func TestRequestService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc := newRequestService(repository.NewMemoryTableStore())

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ReplacementID, "archivada")
	assert.Error(t, err)
}

type schoolLookupStub struct {
	schools map[string]*models.School
}

func (s *schoolLookupStub) GetByName(_ context.Context, name string) (*models.School, error) {
	if school, ok := s.schools[name]; ok {
		return school, nil
	}
	return nil, apperror.ErrSchoolNotFound
}

func gformRow(marca string) map[string]string {
	return map[string]string{
		"Marca temporal":                  marca,
		"Dirección de correo electrónico": "utp@sanandres.cl",
		"Colegio":                         "Colegio San Andrés",
		"Nivel educativo":                 "Educación Media [7° a IV medio]",
		"Asignatura":                      "Historia, geografía y Ciencias Sociales, Matemática",
		"Fecha de inicio del reemplazo":   "22/6/2026",
		"Fecha de término del reemplazo":  "26/6/2026",
		"Cantidad de horas de contrato":   "30",
	}
}

func TestRequestService_ImportGForm(t *testing.T) {
	store := repository.NewMemoryTableStore()
	svc := newRequestService(store)
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, "gform", gformRow("15/6/2026 9:30:00")))

	schools := &schoolLookupStub{schools: map[string]*models.School{
		"Colegio San Andrés": {ID: 7, Name: "Colegio San Andrés"},
	}}

	imported, err := svc.ImportGForm(ctx, schools)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	req := all[0]
	assert.Equal(t, models.CreatedWithGForm, req.CreatedWith)
	assert.Equal(t, 7, req.SchoolID)
	assert.Equal(t, []string{catalog.NivelMedia}, req.NivelEducativo)
	// La asignatura compuesta se preserva completa.
	assert.Equal(t, []string{catalog.AsignaturaCompuesta, "Matemática"}, req.Asignatura[catalog.NivelMedia])
	assert.Empty(t, req.Curso[catalog.NivelMedia])
	assert.Equal(t, "Indiferente", req.Genero)
	assert.Equal(t, "Completa", req.Disponibilidad)
	assert.Equal(t, models.JefaturaNoAplica, req.Jefatura)
	assert.Equal(t, 30, req.HorasContrato)
	assert.Len(t, req.DiasSeleccionados, 5)
	require.NotNil(t, req.ProcessedAt)
}

func TestRequestService_ImportGForm_Idempotent(t *testing.T) {
	store := repository.NewMemoryTableStore()
	svc := newRequestService(store)
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, "gform", gformRow("15/6/2026 9:30:00")))

	imported, err := svc.ImportGForm(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	// La misma respuesta no se importa dos veces.
	imported, err = svc.ImportGForm(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, imported)
}

func TestRequestService_ImportGForm_CutoffFiltersOldRows(t *testing.T) {
	store := repository.NewMemoryTableStore()
	svc := newRequestService(store)
	ctx := context.Background()

	// Respuesta anterior al corte: versión vieja del formulario.
	require.NoError(t, store.AppendRow(ctx, "gform", gformRow("1/3/2025 9:00:00")))

	imported, err := svc.ImportGForm(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, imported)
}

func TestRequestService_ImportGForm_BatchDuplicates(t *testing.T) {
	store := repository.NewMemoryTableStore()
	svc := newRequestService(store)
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, "gform", gformRow("15/6/2026 9:30:00")))
	require.NoError(t, store.AppendRow(ctx, "gform", gformRow("15/6/2026 9:30:00")))

	imported, err := svc.ImportGForm(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
}
