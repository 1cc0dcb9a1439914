package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
	"github.com/fintrack-io/fintrack_backend/internal/utils"
)

// transactionHandler serves one transaction kind. The incomes and expenses
// routes share this implementation; the kind fixed at registration decides
// which category set and resource variant apply.
type transactionHandler struct {
	kind       domain.TransactionKind
	txnService portssvc.TransactionSvcFacade
}

func newTransactionHandler(kind domain.TransactionKind, ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{kind: kind, txnService: ts}
}

// registerTransactionRoutes registers the income and expense route groups.
// Writes go through the draft pipeline; reads only need authentication.
func registerTransactionRoutes(rg *gin.RouterGroup, pipeline *middleware.DraftPipeline, ts portssvc.TransactionSvcFacade) {
	for _, kind := range []domain.TransactionKind{domain.KindIncome, domain.KindExpense} {
		h := newTransactionHandler(kind, ts)

		group := rg.Group("/" + string(kind) + "s")
		{
			group.POST("", append(pipeline.ForCreate(kind), h.create)...)
			group.GET("", h.list)
			group.GET("/:id", h.get)
			group.PUT("/:id", append(pipeline.ForUpdate(kind), h.update)...)
			group.DELETE("/:id", h.delete)
		}
	}
}

// resourceFor builds the resource variant this handler's kind addresses.
func (h *transactionHandler) resourceFor(id string) domain.Resource {
	if h.kind == domain.KindIncome {
		return domain.IncomeResource{TransactionID: id}
	}
	return domain.ExpenseResource{TransactionID: id}
}

// create godoc
// @Summary Create a transaction
// @Description Persists a draft that passed the full request pipeline.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.TransactionDraft true "Transaction draft"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /incomes [post]
func (h *transactionHandler) create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}
	draft, ok := middleware.GetDraft(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Validated draft not available", ""))
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), principal, draft)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(txn, principal))
}

// get godoc
// @Summary Get a transaction
// @Description Returns one owned transaction of this route's kind.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [get]
func (h *transactionHandler) get(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}

	txn, err := h.txnService.GetTransaction(c.Request.Context(), h.resourceFor(c.Param("id")), principal.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(txn, principal))
}

// list godoc
// @Summary List transactions
// @Description Returns a filtered page of the caller's transactions of this route's kind.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Param category query string false "Filter by category"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /incomes [get]
func (h *transactionHandler) list(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid query parameters", err.Error()))
		return
	}

	txns, err := h.txnService.ListTransactions(c.Request.Context(), h.kind, principal.UserID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, h.toResponse(&txns[i], principal))
	}
	c.JSON(http.StatusOK, resp)
}

// update godoc
// @Summary Update a transaction
// @Description Replaces an owned transaction's fields with a draft that passed the schema pipeline.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.TransactionDraft true "Transaction draft"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [put]
func (h *transactionHandler) update(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}
	draft, ok := middleware.GetDraft(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Validated draft not available", ""))
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), h.resourceFor(c.Param("id")), principal, draft)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(txn, principal))
}

// delete godoc
// @Summary Delete a transaction
// @Description Soft-deletes an owned transaction of this route's kind.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [delete]
func (h *transactionHandler) delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required", ""))
		return
	}

	if err := h.txnService.DeleteTransaction(c.Request.Context(), h.resourceFor(c.Param("id")), principal.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *transactionHandler) toResponse(txn *domain.Transaction, principal *domain.User) dto.TransactionResponse {
	formatted := utils.FormatAmount(txn.Amount, principal.Preferences.Currency)
	return dto.ToTransactionResponse(txn, formatted)
}
