package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/response"
	"github.com/stemsi/chemistry-web/internal/service"
	"github.com/stemsi/chemistry-web/internal/validator"
)

type EquationHandler struct {
	balancerService *service.BalancerService
}

func NewEquationHandler(balancerService *service.BalancerService) *EquationHandler {
	return &EquationHandler{balancerService: balancerService}
}

// Balance godoc
// POST /api/v1/equations/balance
func (h *EquationHandler) Balance(c *gin.Context) {
	var req model.BalanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.balancerService.Balance(req.Reactants, req.Products)
	if err != nil {
		code := balanceErrCode(err)
		status := http.StatusBadRequest
		if code == response.ErrInternal {
			status = http.StatusInternalServerError
		}
		response.Fail(c, status, code)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Examples godoc
// GET /api/v1/equations/examples
func (h *EquationHandler) Examples(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"examples": h.balancerService.Examples()})
}
