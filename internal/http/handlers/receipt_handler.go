package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/dto"
	"github.com/vmlandae/reemplazos-backend/internal/http/handlers/common"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

// ReceiptHandler es la capa HTTP de las recepciones de servicio.
type ReceiptHandler struct {
	receipts *service.ReceiptService
	auth     *service.AuthService
	notify   *service.NotificationService
}

func NewReceiptHandler(receipts *service.ReceiptService, auth *service.AuthService, notify *service.NotificationService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, auth: auth, notify: notify}
}

// Create maneja POST /receipts.
func (h *ReceiptHandler) Create(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	receipt, err := h.receipts.Create(c.Request.Context(), user, service.CreateReceiptInput{
		ReplacementID: req.ReplacementID,
		SchoolID:      req.SchoolID,
		CandidatoRUT:  req.CandidatoRUT,
		CreatedBy:     user.Email,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// List maneja GET /receipts. Los usuarios de colegio solo ven las
// recepciones de su colegio.
func (h *ReceiptHandler) List(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	if user.SchoolID != nil {
		receipts, err := h.receipts.ListBySchool(c.Request.Context(), *user.SchoolID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, receipts)
		return
	}

	receipts, err := h.receipts.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}

// Get maneja GET /receipts/:id.
func (h *ReceiptHandler) Get(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	receptionID, err := common.ParseIntParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	receipt, err := h.receipts.Get(c.Request.Context(), receptionID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !user.CanManageSchool(receipt.SchoolID) {
		common.RespondForbidden(c, "")
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// Evaluate maneja PATCH /receipts/:id: cierra la recepción como conforme u
// objetada.
func (h *ReceiptHandler) Evaluate(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	receptionID, err := common.ParseIntParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.EvaluateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	receipt, err := h.receipts.Evaluate(c.Request.Context(), user, receptionID, service.EvaluateReceiptInput{
		Status:      req.Status,
		Rating:      req.Rating,
		Comentarios: req.Comentarios,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	if h.notify != nil {
		h.notify.NotifyUser(user.ID, service.EventReceiptEvaluated, receipt)
	}

	c.JSON(http.StatusOK, receipt)
}
