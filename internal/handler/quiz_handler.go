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

type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// ListBanks godoc
// GET /api/v1/quiz/banks
func (h *QuizHandler) ListBanks(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"banks": h.quizService.Summaries()})
}

// GetBank godoc
// GET /api/v1/quiz/banks/:bank_id
// Returns the questions without answer keys or explanations.
func (h *QuizHandler) GetBank(c *gin.Context) {
	var uri model.QuizBankURI
	if fields := validator.BindURI(c, &uri); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	bank, err := h.quizService.GetBank(uri.BankID)
	if err != nil {
		if errors.Is(err, service.ErrBankNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUnknownBank)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bank": bank})
}
