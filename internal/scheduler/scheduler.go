// Package scheduler agenda los trabajos periódicos del sistema: la
// renovación del pool limpio de postulantes y la importación de solicitudes
// del formulario externo.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/vmlandae/reemplazos-backend/internal/goroutine"
	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

// Scheduler envuelve robfig/cron con los jobs del sistema.
type Scheduler struct {
	cron       *cron.Cron
	applicants *service.ApplicantService
	requests   *service.RequestService
	schools    service.SchoolLookup
	spec       string
}

// New crea el scheduler con el spec de cron configurado, por ejemplo
// "*/30 * * * *" para cada media hora.
func New(applicants *service.ApplicantService, requests *service.RequestService, schools service.SchoolLookup, spec string) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLogger(cron.DefaultLogger)),
		applicants: applicants,
		requests:   requests,
		schools:    schools,
		spec:       spec,
	}
}

// Start registra los jobs y arranca el cron. Corre un ciclo de inmediato
// para que el pool quede poblado sin esperar el primer tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduler: cron.AddFunc: %w", err)
	}

	s.cron.Start()
	logger.Log.WithField("spec", s.spec).Info("scheduler: cron iniciado")

	goroutine.SafeGoWithContext(ctx, s.runCycle)
	return nil
}

// Stop detiene el scheduler esperando los jobs en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("scheduler: cron detenido")
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	if _, err := s.applicants.RefreshPool(ctx); err != nil {
		logger.Log.WithField("error", err.Error()).Error("scheduler: falló la renovación del pool")
	}

	imported, err := s.requests.ImportGForm(ctx, s.schools)
	if err != nil {
		logger.Log.WithField("error", err.Error()).Error("scheduler: falló la importación del formulario externo")
		return
	}
	if imported > 0 {
		logger.Log.WithField("importadas", imported).Info("scheduler: ciclo completado")
	}
}
