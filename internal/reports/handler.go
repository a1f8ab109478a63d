package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/shared/server/respond"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Handler wires HTTP routes to the report service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/participants/:id/reports/baseline", h.participantReport(KindBaseline))
	rg.GET("/participants/:id/reports/progress", h.participantReport(KindProgress))
	rg.GET("/cohorts/:id/reports/impact", h.impactReport)
}

func (h *Handler) participantReport(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		participantID := c.Param("id")
		if participantID == "" {
			respond.Error(c, http.StatusBadRequest, "validation_error", "participant id is required", nil)
			return
		}
		h.serve(c, Request{Kind: kind, ParticipantID: participantID})
	}
}

func (h *Handler) impactReport(c *gin.Context) {
	cohortID := c.Param("id")
	if cohortID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "cohort id is required", nil)
		return
	}
	h.serve(c, Request{Kind: KindImpact, CohortID: cohortID})
}

func (h *Handler) serve(c *gin.Context, req Request) {
	report, err := h.Svc.Generate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "participant or cohort not found", nil)
		case errors.Is(err, ErrMissingData):
			respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeMissingData, err.Error(), nil)
		case errors.Is(err, ErrInsufficientData):
			respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeInsufficientData, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeRenderFailure, "failed to generate report", nil)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	c.Data(http.StatusOK, docxContentType, report.DOCX)
}
