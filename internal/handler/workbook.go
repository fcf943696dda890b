package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/metrics"
	"github.com/cleberrangel/capacidad-recursos-api/internal/middleware"
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/service"
)

// WorkbookHandler handles workbook uploads and reloads
type WorkbookHandler struct {
	svc *service.DashboardService
}

// NewWorkbookHandler creates a new workbook handler
func NewWorkbookHandler(svc *service.DashboardService) *WorkbookHandler {
	return &WorkbookHandler{svc: svc}
}

// Upload receives a workbook, runs the pipeline and publishes the model
// @Summary      Carregar planilha
// @Tags         workbooks
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "XLSX workbook"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      401 {object} model.ErrorResponse
// @Failure      413 {object} model.ErrorResponse
// @Failure      422 {object} model.ErrorResponse
// @Failure      429 {object} model.ErrorResponse
// @Router       /api/v1/workbooks [post]
func (h *WorkbookHandler) Upload(c *gin.Context) {
	log := logger.FromGin(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Warn().Err(err).Msg("Erro ao obter arquivo do formulário")
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "arquivo não encontrado no formulário",
			Details: "use o campo 'file' para enviar a planilha",
		})
		return
	}
	defer file.Close()

	filename := middleware.SanitizeFilename(header.Filename)
	log.Info().
		Str("filename", filename).
		Int64("size", header.Size).
		Msg("Recebendo planilha")

	data, err := service.ReadWorkbook(filename, file, header.Size)
	if err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Planilha rejeitada")
		h.audit(c, logger.AuditActionWorkbookUpload, filename, err)
		respondError(c, err)
		return
	}
	metrics.Get().IncrementFileUpload(int64(len(data)))

	summary, err := h.svc.LoadBytes(c.Request.Context(), "upload:"+filename, data)
	h.audit(c, logger.AuditActionWorkbookUpload, filename, err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{Success: true, Data: summary})
}

// Reload re-reads the workbook configured in WORKBOOK_PATH
// @Summary      Recarregar planilha configurada
// @Tags         workbooks
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} model.Response
// @Failure      404 {object} model.ErrorResponse
// @Failure      409 {object} model.ErrorResponse
// @Failure      422 {object} model.ErrorResponse
// @Router       /api/v1/workbooks/reload [post]
func (h *WorkbookHandler) Reload(c *gin.Context) {
	summary, err := h.svc.Reload(c.Request.Context())
	h.audit(c, logger.AuditActionWorkbookReload, "", err)
	if err != nil {
		logger.FromGin(c).Error().Err(err).Msg("Erro ao recarregar planilha")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{Success: true, Data: summary})
}

func (h *WorkbookHandler) audit(c *gin.Context, action logger.AuditAction, filename string, err error) {
	event := logger.AuditEvent{
		Action:     action,
		Resource:   "workbook",
		ResourceID: filename,
		ClientIP:   c.ClientIP(),
		Success:    err == nil,
	}
	if err != nil {
		event.Error = err.Error()
	}
	logger.Audit(c.Request.Context(), event)
}
