package service

import (
	"context"

	"github.com/vmlandae/reemplazos-backend/internal/matching"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

// MatchingService cruza solicitudes con el pool limpio de postulantes.
// No persiste nada: el resultado se calcula en cada consulta.
type MatchingService struct {
	requests   *RequestService
	applicants *ApplicantService
}

func NewMatchingService(requests *RequestService, applicants *ApplicantService) *MatchingService {
	return &MatchingService{requests: requests, applicants: applicants}
}

// CandidatesForRequest filtra el pool con los criterios derivados de la
// solicitud.
func (s *MatchingService) CandidatesForRequest(ctx context.Context, replacementID int) ([]models.Applicant, error) {
	req, err := s.requests.Get(ctx, replacementID)
	if err != nil {
		return nil, err
	}
	return s.matchCriteria(ctx, models.CriteriaFromRequest(req))
}

// CandidatesForCriteria filtra el pool con criterios editados a mano, por
// ejemplo cuando oficina central relaja los requisitos de una solicitud.
func (s *MatchingService) CandidatesForCriteria(ctx context.Context, c models.Criteria) ([]models.Applicant, error) {
	return s.matchCriteria(ctx, c)
}

func (s *MatchingService) matchCriteria(ctx context.Context, c models.Criteria) ([]models.Applicant, error) {
	pool, err := s.applicants.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return matching.Match(c, pool), nil
}
