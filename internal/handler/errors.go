package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/service"
	"github.com/cleberrangel/capacidad-recursos-api/internal/sheet"
)

// errorStatus mapeia os erros de domínio para status HTTP
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrModelNotLoaded):
		return http.StatusNotFound, "nenhuma planilha carregada"
	case errors.Is(err, model.ErrTeamCapacityUnavailable):
		return http.StatusNotFound, "análise de capacidade da equipe indisponível"
	case errors.Is(err, service.ErrResourceStageDisabled):
		return http.StatusNotFound, "capacidade por recurso desabilitada"
	case errors.Is(err, service.ErrWorkbookNotFound):
		return http.StatusNotFound, "planilha não encontrada"
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "arquivo muito grande"
	case errors.Is(err, service.ErrEmptyFile):
		return http.StatusBadRequest, "arquivo vazio"
	case errors.Is(err, service.ErrUnsupportedType):
		return http.StatusBadRequest, "formato não suportado"
	case errors.Is(err, service.ErrNoWorkbookPath):
		return http.StatusConflict, "WORKBOOK_PATH não configurado"
	case errors.Is(err, sheet.ErrInvalidWorkbook):
		return http.StatusUnprocessableEntity, "planilha inválida"
	}
	return http.StatusInternalServerError, "erro interno"
}

func respondError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		c.JSON(status, model.ErrorResponse{Success: false, Error: msg})
		return
	}
	c.JSON(status, model.ErrorResponse{
		Success: false,
		Error:   msg,
		Details: err.Error(),
	})
}
