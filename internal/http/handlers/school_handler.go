package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/dto"
	"github.com/vmlandae/reemplazos-backend/internal/http/handlers/common"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

// SchoolHandler es la capa HTTP del registro de colegios.
type SchoolHandler struct {
	schools *service.SchoolService
	auth    *service.AuthService
}

func NewSchoolHandler(schools *service.SchoolService, auth *service.AuthService) *SchoolHandler {
	return &SchoolHandler{schools: schools, auth: auth}
}

// List maneja GET /schools.
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schools.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

// Get maneja GET /schools/:id.
func (h *SchoolHandler) Get(c *gin.Context) {
	id, err := common.ParseIntParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	school, err := h.schools.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, school)
}

// Create maneja POST /schools.
func (h *SchoolHandler) Create(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	school, err := h.schools.Create(c.Request.Context(), user, service.SchoolInput{
		Name:       req.Name,
		RBD:        req.RBD,
		Comuna:     req.Comuna,
		Direccion:  req.Direccion,
		Telefono:   req.Telefono,
		AdminEmail: req.AdminEmail,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, school)
}

// Update maneja PUT /schools/:id.
func (h *SchoolHandler) Update(c *gin.Context) {
	user, err := currentUser(c, h.auth)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseIntParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	school, err := h.schools.Update(c.Request.Context(), user, id, service.SchoolInput{
		Name:       req.Name,
		RBD:        req.RBD,
		Comuna:     req.Comuna,
		Direccion:  req.Direccion,
		Telefono:   req.Telefono,
		AdminEmail: req.AdminEmail,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, school)
}
