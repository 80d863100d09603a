package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/dto"
	"github.com/vmlandae/reemplazos-backend/internal/http/handlers/common"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

// MatchingHandler es la capa HTTP del cruce solicitud-candidatos.
type MatchingHandler struct {
	matching *service.MatchingService
	requests *service.RequestService
}

func NewMatchingHandler(matching *service.MatchingService, requests *service.RequestService) *MatchingHandler {
	return &MatchingHandler{matching: matching, requests: requests}
}

// CandidatesForRequest maneja GET /requests/:id/candidates.
func (h *MatchingHandler) CandidatesForRequest(c *gin.Context) {
	replacementID, err := common.ParseIntParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	req, err := h.requests.Get(c.Request.Context(), replacementID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	candidates, err := h.matching.CandidatesForRequest(c.Request.Context(), replacementID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MatchResponse{
		ReplacementID: replacementID,
		Criteria:      models.CriteriaFromRequest(req),
		Candidates:    candidates,
		Total:         len(candidates),
	})
}

// CandidatesForCriteria maneja POST /matching: busca candidatos con
// criterios editados, sin tocar la solicitud.
func (h *MatchingHandler) CandidatesForCriteria(c *gin.Context) {
	var req dto.MatchCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	criteria := models.Criteria{
		Genero:         req.Genero,
		NivelEducativo: req.NivelEducativo,
		Asignaturas:    req.Asignaturas,
		DiasDeLaSemana: req.DiasDeLaSemana,
		Disponibilidad: req.Disponibilidad,
		MinAniosEgreso: req.MinAniosEgreso,
	}

	candidates, err := h.matching.CandidatesForCriteria(c.Request.Context(), criteria)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MatchResponse{
		Criteria:   criteria,
		Candidates: candidates,
		Total:      len(candidates),
	})
}
