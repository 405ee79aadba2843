package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/response"
	"github.com/stemsi/chemistry-web/internal/service"
	"github.com/stemsi/chemistry-web/internal/validator"
)

type PeriodicHandler struct {
	periodicService *service.PeriodicService
}

func NewPeriodicHandler(periodicService *service.PeriodicService) *PeriodicHandler {
	return &PeriodicHandler{periodicService: periodicService}
}

// ListElements godoc
// GET /api/v1/elements?q=&category=
// Every element is returned with its visibility under the filter.
func (h *PeriodicHandler) ListElements(c *gin.Context) {
	var query model.ElementQuery
	if fields := validator.BindQuery(c, &query); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	elements := h.periodicService.Summaries(query.Query, query.Category)
	visible := 0
	for _, e := range elements {
		if e.Visible {
			visible++
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"elements":   elements,
		"total":      len(elements),
		"visible":    visible,
		"categories": service.CategoryOptions(),
	})
}

// GetGrid godoc
// GET /api/v1/periodic/grid?q=&category=
func (h *PeriodicHandler) GetGrid(c *gin.Context) {
	var query model.ElementQuery
	if fields := validator.BindQuery(c, &query); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"grid": h.periodicService.Grid(query.Query, query.Category)})
}

// GetElement godoc
// GET /api/v1/elements/:key
// key is an atomic number or a symbol.
func (h *PeriodicHandler) GetElement(c *gin.Context) {
	var uri model.ElementURI
	if fields := validator.BindURI(c, &uri); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	e, err := h.periodicService.Lookup(uri.Key)
	if err != nil {
		if errors.Is(err, service.ErrElementNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	details, err := h.periodicService.Details(e.Number)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"element": details,
		"tooltip": service.Tooltip(e),
	})
}
