package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/dto"
	"github.com/vmlandae/reemplazos-backend/internal/http/handlers/common"
	"github.com/vmlandae/reemplazos-backend/internal/service"
	"github.com/vmlandae/reemplazos-backend/internal/storage"
)

// ApplicantHandler es la capa HTTP del pool de postulantes y del flujo de
// candidatos.
type ApplicantHandler struct {
	applicants *service.ApplicantService
	cvs        *storage.CVStorage
}

func NewApplicantHandler(applicants *service.ApplicantService, cvs *storage.CVStorage) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants, cvs: cvs}
}

// Pool maneja GET /applicants: el pool limpio completo.
func (h *ApplicantHandler) Pool(c *gin.Context) {
	pool, err := h.applicants.Pool(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PoolResponse{
		Applicants: pool,
		Total:      len(pool),
	})
}

// RefreshPool maneja POST /applicants/refresh: dispara manualmente la
// renovación que el scheduler corre de forma periódica.
func (h *ApplicantHandler) RefreshPool(c *gin.Context) {
	count, err := h.applicants.RefreshPool(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshPoolResponse{Applicants: count})
}

// Get maneja GET /applicants/:rut.
func (h *ApplicantHandler) Get(c *gin.Context) {
	rut := c.Param("rut")
	applicant, err := h.applicants.GetByRUT(c.Request.Context(), rut)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, applicant)
}

// SetStage maneja PATCH /applicants/:rut/stage: marca o desmarca las etapas
// validar, seleccionar y elegir del flujo de candidato.
func (h *ApplicantHandler) SetStage(c *gin.Context) {
	rut := c.Param("rut")

	var req dto.CandidateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.applicants.SetCandidateStage(c.Request.Context(), rut, req.Stage, req.Value); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "etapa actualizada", nil)
}

// UploadCV maneja POST /applicants/:rut/cv: recibe el currículum como
// multipart y lo asocia al postulante.
func (h *ApplicantHandler) UploadCV(c *gin.Context) {
	rut := c.Param("rut")

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "el campo file es obligatorio")
		return
	}
	if file.Size == 0 {
		common.RespondBadRequest(c, "el archivo no puede estar vacío")
		return
	}

	src, err := file.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer src.Close()

	relativePath, size, err := h.cvs.Save(c.Request.Context(), rut, file.Filename, src)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.applicants.AttachCV(c.Request.Context(), rut, relativePath); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"file": relativePath,
		"size": size,
	})
}

// DownloadCV maneja GET /applicants/:rut/cv.
func (h *ApplicantHandler) DownloadCV(c *gin.Context) {
	rut := c.Param("rut")

	applicant, err := h.applicants.GetByRUT(c.Request.Context(), rut)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if applicant.CVFile == "" {
		common.RespondNotFound(c, "el postulante no tiene CV")
		return
	}

	path, err := h.cvs.Path(applicant.CVFile)
	if err != nil {
		common.RespondNotFound(c, "el CV no está disponible")
		return
	}

	c.FileAttachment(path, "CV_"+applicant.RUT+filepath.Ext(path))
}
