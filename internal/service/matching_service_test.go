package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
)

func TestMatchingService_CandidatesForRequest(t *testing.T) {
	store := repository.NewMemoryTableStore()
	requests := newRequestService(store)
	applicants := newApplicantService(store)
	svc := NewMatchingService(requests, applicants)
	ctx := context.Background()

	// Un postulante de Media con Matemática y otro de Básica que no calza.
	require.NoError(t, store.AppendRow(ctx, "pool_raw", rawApplicantRow("12345678-5", "mj.perez@gmail.com")))
	basica := rawApplicantRow("20123456-K", "p.soto@gmail.com")
	basica[models.ColNivelEducativo] = "Educación Básica Generalista"
	require.NoError(t, store.AppendRow(ctx, "pool_raw", basica))

	_, err := applicants.RefreshPool(ctx)
	require.NoError(t, err)

	req, err := requests.Create(ctx, validCreateInput())
	require.NoError(t, err)

	got, err := svc.CandidatesForRequest(ctx, req.ReplacementID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12345678-5", got[0].RUT)
}

func TestMatchingService_CandidatesForRequest_NotFound(t *testing.T) {
	store := repository.NewMemoryTableStore()
	svc := NewMatchingService(newRequestService(store), newApplicantService(store))

	_, err := svc.CandidatesForRequest(context.Background(), 42)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMatchingService_CandidatesForCriteria(t *testing.T) {
	store := repository.NewMemoryTableStore()
	applicants := newApplicantService(store)
	svc := NewMatchingService(newRequestService(store), applicants)
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, "pool_raw", rawApplicantRow("12345678-5", "mj.perez@gmail.com")))
	_, err := applicants.RefreshPool(ctx)
	require.NoError(t, err)

	// Criterios relajados a mano: solo el nivel.
	got, err := svc.CandidatesForCriteria(ctx, models.Criteria{NivelEducativo: []string{"Media"}})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.CandidatesForCriteria(ctx, models.Criteria{NivelEducativo: []string{"Técnico Profesional"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}
