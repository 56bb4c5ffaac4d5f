package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
	"dinoverse/internal/service"
)

type TransactionHandler struct {
	Repo    repository.Repository
	Metrics *service.MetricsService
	Gate    *auth.Gate
}

func (h *TransactionHandler) Register(r *gin.Engine) {
	g := r.Group("/api/transactions", requireAdmin(h.Gate))
	g.GET("", h.list)
	g.GET("/summary", h.summary)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type transactionRequest struct {
	Date        *dateValue      `json:"date" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	Category    string          `json:"category" binding:"max=100"`
	Description string          `json:"description" binding:"max=1000"`
	Account     string          `json:"account" binding:"max=100"`
}

func (r transactionRequest) apply(m *models.Transaction, loc *time.Location) {
	m.Date = r.Date.At(loc)
	m.Type = r.Type
	m.Amount = r.Amount
	m.Category = r.Category
	m.Description = r.Description
	m.Account = r.Account
}

// monthQuery reads month/year. Both zero means no month filter; a lone month
// uses the current year.
func (h *TransactionHandler) monthQuery(c *gin.Context) (year int, month time.Month, ok bool) {
	m := intQuery(c, "month", 0)
	y := intQuery(c, "year", 0)
	if m < 0 || m > 12 {
		validationError(c, []fieldError{{Field: "month", Message: "must be between 1 and 12"}})
		return 0, 0, false
	}
	if y < 0 || y > 9999 {
		validationError(c, []fieldError{{Field: "year", Message: "must be a valid year"}})
		return 0, 0, false
	}
	return y, time.Month(m), true
}

// @Summary List transactions
// @Tags life
// @Param type query string false "income|expense"
// @Param category query string false "category"
// @Param month query int false "1-12"
// @Param year query int false "year"
// @Success 200 {object} apiResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) list(c *gin.Context) {
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}
	p := pageQuery(c)
	params := repository.ListTransactionsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "date", Asc: boolPtr(false)},
		Type:       strQueryPtr(c, "type"),
		Category:   strQueryPtr(c, "category"),
	}
	if month != 0 || year != 0 {
		now := time.Now().In(metricsLocation(h.Metrics))
		if year == 0 {
			year = now.Year()
		}
		if month == 0 {
			month = now.Month()
		}
		from, to := service.MonthWindow(year, month, metricsLocation(h.Metrics))
		params.From, params.To = &from, &to
	}
	items, err := h.Repo.ListTransactions(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "transaction")
		return
	}
	total, err := h.Repo.CountTransactions(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "transaction")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

// @Summary Monthly finance summary
// @Description Defaults to the current month.
// @Tags life
// @Param month query int false "1-12"
// @Param year query int false "year"
// @Success 200 {object} apiResponse{data=service.FinanceSummary}
// @Router /api/transactions/summary [get]
func (h *TransactionHandler) summary(c *gin.Context) {
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}
	out, err := h.Metrics.FinanceSummary(c.Request.Context(), year, month)
	if err != nil {
		fail(c, err, "transaction")
		return
	}
	Ok(c, out, nil)
}

func (h *TransactionHandler) get(c *gin.Context) {
	item, err := h.Repo.GetTransactionByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "transaction")
		return
	}
	Ok(c, item, nil)
}

func (h *TransactionHandler) create(c *gin.Context) {
	var req transactionRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Transaction
	req.apply(&item, metricsLocation(h.Metrics))
	if err := h.Repo.CreateTransaction(c.Request.Context(), &item); err != nil {
		fail(c, err, "transaction")
		return
	}
	Created(c, item)
}

func (h *TransactionHandler) update(c *gin.Context) {
	var req transactionRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetTransactionByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "transaction")
		return
	}
	req.apply(item, metricsLocation(h.Metrics))
	if err := h.Repo.UpdateTransaction(c.Request.Context(), item); err != nil {
		fail(c, err, "transaction")
		return
	}
	Ok(c, item, nil)
}

func (h *TransactionHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteTransaction(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "transaction")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
