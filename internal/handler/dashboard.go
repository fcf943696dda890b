package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/service"
)

// ReportContentType é o MIME do relatório xlsx
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler serve o modelo publicado e suas análises
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func metaFor(m *model.DomainModel) *model.Meta {
	return &model.Meta{
		ModelID:        m.ID,
		GeneratedAt:    m.GeneratedAt.Format(time.RFC3339),
		TotalRecursos:  len(m.Recursos),
		TotalProyectos: len(m.Proyectos),
		TotalAlertas:   len(m.Alertas),
	}
}

// GetModel returns the whole published model
// @Summary      Modelo publicado
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} model.Response
// @Failure      404 {object} model.ErrorResponse
// @Router       /api/v1/modelo [get]
func (h *DashboardHandler) GetModel(c *gin.Context) {
	m, err := h.svc.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Response{Success: true, Data: m, Meta: metaFor(m)})
}

// GetResourceCapacity returns the per-resource capacity analysis
// @Router       /api/v1/recursos/capacidad [get]
func (h *DashboardHandler) GetResourceCapacity(c *gin.Context) {
	m, err := h.svc.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	if m.RecursosCapacidad == nil {
		respondError(c, service.ErrResourceStageDisabled)
		return
	}

	meta := metaFor(m)
	meta.TotalRecursos = len(m.RecursosCapacidad)
	c.JSON(http.StatusOK, model.Response{Success: true, Data: m.RecursosCapacidad, Meta: meta})
}

// GetTeamCapacity returns the team analysis; 404 when it was omitted
// @Router       /api/v1/equipo/capacidad [get]
func (h *DashboardHandler) GetTeamCapacity(c *gin.Context) {
	m, err := h.svc.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	if m.CapacidadEquipo == nil {
		respondError(c, model.ErrTeamCapacityUnavailable)
		return
	}
	c.JSON(http.StatusOK, model.Response{Success: true, Data: m.CapacidadEquipo, Meta: metaFor(m)})
}

// GetAlerts returns the alerts derived from the model
// @Router       /api/v1/alertas [get]
func (h *DashboardHandler) GetAlerts(c *gin.Context) {
	m, err := h.svc.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Response{Success: true, Data: m.Alertas, Meta: metaFor(m)})
}

// ExportResources returns the resource export contract as a bare JSON document
// @Router       /api/v1/recursos/export [get]
func (h *DashboardHandler) ExportResources(c *gin.Context) {
	export, err := h.svc.Export()
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Audit(c.Request.Context(), logger.AuditEvent{
		Action:   logger.AuditActionExportDownload,
		Resource: "export",
		ClientIP: c.ClientIP(),
		Success:  true,
		Details:  map[string]interface{}{"total_recursos": export.TotalRecursos},
	})
	c.JSON(http.StatusOK, export)
}

// DownloadReport streams the capacity report as xlsx
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router       /api/v1/recursos/reporte.xlsx [get]
func (h *DashboardHandler) DownloadReport(c *gin.Context) {
	log := logger.FromGin(c)

	data, m, err := h.svc.Report(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Erro ao gerar relatório de capacidade")
		respondError(c, err)
		return
	}

	filename := "capacidad_recursos_" + m.GeneratedAt.Format("20060102_150405") + ".xlsx"
	logger.Audit(c.Request.Context(), logger.AuditEvent{
		Action:     logger.AuditActionReportDownload,
		Resource:   "report",
		ResourceID: m.ID,
		ClientIP:   c.ClientIP(),
		Success:    true,
		Details:    map[string]interface{}{"filename": filename, "size": len(data)},
	})

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, ReportContentType, data)
}
