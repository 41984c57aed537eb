package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

type TransactionHandler struct {
	svc *service.TransactionService
}

func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// Create godoc
// @Summary Record a transaction for the caller
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.TransactionInput true "Transaction"
// @Success 201 {object} model.Transaction
// @Failure 400 {object} model.ErrorResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
		return
	}

	var input model.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeValidationError(c, err)
		return
	}

	tx, err := h.svc.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// List godoc
// @Summary List the caller's transactions, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Transaction
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
		return
	}

	transactions, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}

	c.JSON(http.StatusOK, transactions)
}

// Update godoc
// @Summary Update one of the caller's transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction id"
// @Param request body model.TransactionUpdate true "Fields to change"
// @Success 200 {object} model.StatusResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		writeValidationError(c, err)
		return
	}

	var update model.TransactionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		writeValidationError(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, user.ID, update)
	if err != nil {
		writeError(c, err)
		return
	}
	if updated == 0 {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "transaction not found"})
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "updated"})
}

// Delete godoc
// @Summary Delete one of the caller's transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction id"
// @Success 204 {object} nil
// @Failure 404 {object} model.ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		writeValidationError(c, err)
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "transaction not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
