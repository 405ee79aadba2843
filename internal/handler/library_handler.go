package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/response"
	"github.com/stemsi/chemistry-web/internal/service"
	"github.com/stemsi/chemistry-web/internal/validator"
)

const defaultLibraryPerPage = 20

type LibraryHandler struct {
	libraryService *service.LibraryService
	log            zerolog.Logger
}

func NewLibraryHandler(libraryService *service.LibraryService, log zerolog.Logger) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
		log:            log.With().Str("component", "library_handler").Logger(),
	}
}

// ListCategories godoc
// GET /api/v1/library/categories
func (h *LibraryHandler) ListCategories(c *gin.Context) {
	categories, err := h.libraryService.Categories()
	if err != nil {
		h.log.Warn().Err(err).Msg("Library unavailable")
		response.Fail(c, http.StatusServiceUnavailable, response.ErrLibraryUnavailable)
		return
	}
	levels, formats, _ := h.libraryService.Facets()

	response.Success(c, http.StatusOK, gin.H{
		"categories": categories,
		"levels":     levels,
		"formats":    formats,
	})
}

// ListItems godoc
// GET /api/v1/library/items?category=&level=&format=&free=&q=&page=&per_page=
func (h *LibraryHandler) ListItems(c *gin.Context) {
	var criteria model.LibraryCriteria
	if fields := validator.BindQuery(c, &criteria); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	items, err := h.libraryService.Filter(criteria)
	if err != nil {
		h.log.Warn().Err(err).Msg("Library unavailable")
		response.Fail(c, http.StatusServiceUnavailable, response.ErrLibraryUnavailable)
		return
	}

	page, perPage := criteria.Page, criteria.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultLibraryPerPage
	}
	pageItems, totalPages := service.Paginate(items, page, perPage)
	if pageItems == nil {
		pageItems = []model.LibraryItemView{}
	}

	response.SuccessWithPagination(c, http.StatusOK,
		gin.H{"items": pageItems},
		response.NewPagination(page, perPage, len(items), totalPages),
	)
}
