package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

type fakeCVs struct {
	dir string
}

// Path materializa un archivo PDF mínimo para que gomail pueda adjuntarlo.
func (f *fakeCVs) Path(relativePath string) (string, error) {
	path := filepath.Join(f.dir, filepath.Base(relativePath))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("cv no encontrado: %s", relativePath)
	}
	return path, nil
}

type fakeBroadcaster struct {
	events []string
}

func (f *fakeBroadcaster) BroadcastToUser(_ uuid.UUID, event string, _ any) error {
	f.events = append(f.events, event)
	return nil
}

func notificationFixture(t *testing.T) (*NotificationService, *fakeSender, repository.TableStore) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cv_1.pdf"), []byte("%PDF-1.4"), 0o644))

	sender := &fakeSender{}
	store := repository.NewMemoryTableStore()
	svc := NewNotificationService(sender, "reemplazos@red.cl", nil, &fakeCVs{dir: dir}, store, "sent_cvs").WithClock(testClock)
	return svc, sender, store
}

func sampleCandidates() []models.Applicant {
	return []models.Applicant{
		{
			RUT:            "12345678-5",
			Nombre:         "María José Pérez",
			Email:          "mj.perez@gmail.com",
			NivelEducativo: []string{"Media"},
			Asignaturas:    []string{"Matemática"},
			CVFile:         "12345678-5/cv_1.pdf",
		},
	}
}

func TestNotificationService_SendCandidates(t *testing.T) {
	svc, sender, store := notificationFixture(t)
	ctx := context.Background()

	req := &models.Request{ReplacementID: 1, SchoolName: "Colegio San Andrés"}
	err := svc.SendCandidates(ctx, req, sampleCandidates(), []string{"director@sanandres.cl"})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, []string{"director@sanandres.cl"}, m.GetHeader("To"))
	assert.Contains(t, m.GetHeader("Subject")[0], "#1")

	// El envío del CV queda registrado.
	rows, err := store.ReadTable(ctx, "sent_cvs")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestNotificationService_SendCandidates_NoReattach(t *testing.T) {
	svc, sender, store := notificationFixture(t)
	ctx := context.Background()

	req := &models.Request{ReplacementID: 1, SchoolName: "Colegio San Andrés"}
	require.NoError(t, svc.SendCandidates(ctx, req, sampleCandidates(), []string{"director@sanandres.cl"}))
	require.NoError(t, svc.SendCandidates(ctx, req, sampleCandidates(), []string{"director@sanandres.cl"}))

	// El correo se envía igual pero el CV no se adjunta ni registra de nuevo.
	assert.Len(t, sender.sent, 2)
	rows, err := store.ReadTable(ctx, "sent_cvs")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestNotificationService_SendCandidates_Validations(t *testing.T) {
	svc, _, _ := notificationFixture(t)
	ctx := context.Background()
	req := &models.Request{ReplacementID: 1}

	err := svc.SendCandidates(ctx, req, sampleCandidates(), nil)
	assert.True(t, apperror.IsValidation(err))

	err = svc.SendCandidates(ctx, req, nil, []string{"director@sanandres.cl"})
	assert.True(t, apperror.IsValidation(err))
}

func TestNotificationService_SendCandidates_MissingCVIsNotFatal(t *testing.T) {
	svc, sender, store := notificationFixture(t)
	ctx := context.Background()

	candidates := sampleCandidates()
	candidates[0].CVFile = "12345678-5/no_existe.pdf"

	req := &models.Request{ReplacementID: 1, SchoolName: "Colegio San Andrés"}
	require.NoError(t, svc.SendCandidates(ctx, req, candidates, []string{"director@sanandres.cl"}))

	assert.Len(t, sender.sent, 1)
	rows, err := store.ReadTable(ctx, "sent_cvs")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestNotificationService_NotifyUser(t *testing.T) {
	hub := &fakeBroadcaster{}
	svc := NewNotificationService(&fakeSender{}, "reemplazos@red.cl", hub, nil, repository.NewMemoryTableStore(), "sent_cvs")

	svc.NotifyUser(uuid.New(), EventRequestCreated, map[string]int{"replacement_id": 1})
	assert.Equal(t, []string{EventRequestCreated}, hub.events)

	// Sin hub configurado no hace nada.
	svc = NewNotificationService(&fakeSender{}, "reemplazos@red.cl", nil, nil, repository.NewMemoryTableStore(), "sent_cvs")
	svc.NotifyUser(uuid.New(), EventRequestCreated, nil)
}
