package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/dto"
	"github.com/vmlandae/reemplazos-backend/internal/http/handlers/common"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

// RequestHandler es la capa HTTP de las solicitudes de reemplazo.
type RequestHandler struct {
	requests *service.RequestService
	schools  service.SchoolLookup
	auth     *service.AuthService
	notify   *service.NotificationService
}

func NewRequestHandler(requests *service.RequestService, schools service.SchoolLookup, auth *service.AuthService, notify *service.NotificationService) *RequestHandler {
	return &RequestHandler{requests: requests, schools: schools, auth: auth, notify: notify}
}

// Create maneja POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if !user.CanManageSchool(req.SchoolID) {
		common.RespondForbidden(c, "")
		return
	}

	fechaInicio, err := time.Parse("2006-01-02", req.FechaInicio)
	if err != nil {
		common.RespondBadRequest(c, "fecha_inicio debe tener formato 2006-01-02")
		return
	}
	fechaFin, err := time.Parse("2006-01-02", req.FechaFin)
	if err != nil {
		common.RespondBadRequest(c, "fecha_fin debe tener formato 2006-01-02")
		return
	}

	created, err := h.requests.Create(c.Request.Context(), service.CreateRequestInput{
		SchoolID:                     req.SchoolID,
		SchoolName:                   req.SchoolName,
		CreatedBy:                    user.Email,
		NivelEducativo:               req.NivelEducativo,
		Asignatura:                   req.Asignatura,
		Curso:                        req.Curso,
		FechaInicio:                  fechaInicio,
		FechaFin:                     fechaFin,
		DiasSeleccionados:            req.DiasSeleccionados,
		HorariosSeleccionados:        req.HorariosSeleccionados,
		Jefatura:                     req.Jefatura,
		HorasContrato:                req.HorasContrato,
		MencionEspecialidadPostitulo: req.MencionEspecialidadPostitulo,
		VacanteConfidencial:          req.VacanteConfidencial,
		Genero:                       req.Genero,
		AniosEgreso:                  req.AniosEgreso,
		Disponibilidad:               req.Disponibilidad,
		CandidatoPreferido:           req.CandidatoPreferido,
		OtrasPreferencias:            req.OtrasPreferencias,
		Comentarios:                  req.Comentarios,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	if h.notify != nil {
		h.notify.NotifyUser(user.ID, service.EventRequestCreated, created)
	}

	c.JSON(http.StatusCreated, created)
}

// List maneja GET /requests. Los usuarios de colegio solo ven las
// solicitudes de su colegio.
func (h *RequestHandler) List(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	all, err := h.requests.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	if user.SchoolID != nil {
		filtered := all[:0]
		for i := range all {
			if all[i].SchoolID == *user.SchoolID {
				filtered = append(filtered, all[i])
			}
		}
		all = filtered
	}

	c.JSON(http.StatusOK, all)
}

// Get maneja GET /requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
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

	req, err := h.requests.Get(c.Request.Context(), replacementID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !user.CanManageSchool(req.SchoolID) {
		common.RespondForbidden(c, "")
		return
	}

	c.JSON(http.StatusOK, req)
}

// UpdateStatus maneja PATCH /requests/:id/status. Solo oficina central
// aprueba o rechaza.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
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

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	updated, err := h.requests.UpdateStatus(c.Request.Context(), replacementID, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if h.notify != nil {
		h.notify.NotifyUser(user.ID, service.EventRequestStatus, updated)
	}

	c.JSON(http.StatusOK, updated)
}

// ImportGForm maneja POST /requests/import-gform: dispara manualmente la
// importación que el scheduler corre de forma periódica.
func (h *RequestHandler) ImportGForm(c *gin.Context) {
	imported, err := h.requests.ImportGForm(c.Request.Context(), h.schools)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{Imported: imported})
}
