package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/dto"
	"github.com/vmlandae/reemplazos-backend/internal/http/handlers/common"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

// NotificationHandler es la capa HTTP del envío de candidatos por correo.
type NotificationHandler struct {
	notify     *service.NotificationService
	requests   *service.RequestService
	applicants *service.ApplicantService
	auth       *service.AuthService
}

func NewNotificationHandler(notify *service.NotificationService, requests *service.RequestService, applicants *service.ApplicantService, auth *service.AuthService) *NotificationHandler {
	return &NotificationHandler{notify: notify, requests: requests, applicants: applicants, auth: auth}
}

// SendCandidates maneja POST /requests/:id/send-candidates: envía por
// correo los candidatos elegidos, con sus CVs adjuntos.
func (h *NotificationHandler) SendCandidates(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	replacementID, err := common.ParseIntParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.SendCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	request, err := h.requests.Get(c.Request.Context(), replacementID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	candidates := make([]models.Applicant, 0, len(req.RUTs))
	for _, rut := range req.RUTs {
		applicant, err := h.applicants.GetByRUT(c.Request.Context(), rut)
		if err != nil {
			_ = c.Error(err)
			return
		}
		candidates = append(candidates, *applicant)
	}

	if err := h.notify.SendCandidates(c.Request.Context(), request, candidates, req.To); err != nil {
		_ = c.Error(err)
		return
	}

	h.notify.NotifyUser(user.ID, service.EventCandidatesSent, gin.H{
		"replacement_id": replacementID,
		"candidatos":     len(candidates),
	})

	common.RespondSuccess(c, http.StatusOK, "candidatos enviados", nil)
}
