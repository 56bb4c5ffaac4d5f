package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
	"dinoverse/internal/service"
)

type TradeHandler struct {
	Repo    repository.Repository
	Metrics *service.MetricsService
	Gate    *auth.Gate
}

func (h *TradeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/trades", requireAdmin(h.Gate))
	g.GET("", h.list)
	g.GET("/stats", h.stats)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type tradeRequest struct {
	Date          *dateValue        `json:"date" binding:"required"`
	Instrument    string            `json:"instrument" binding:"required,max=50"`
	Direction     string            `json:"direction" binding:"required,oneof=long short"`
	EntryPrice    float64           `json:"entryPrice" binding:"gt=0"`
	StopLoss      float64           `json:"stopLoss" binding:"gte=0"`
	TakeProfit    float64           `json:"takeProfit" binding:"gte=0"`
	ExitPrice     *float64          `json:"exitPrice" binding:"omitempty,gte=0"`
	PositionSize  float64           `json:"positionSize" binding:"gte=0"`
	RiskPerTrade  *float64          `json:"riskPerTrade" binding:"omitempty,gte=0"`
	ResultR       *float64          `json:"resultR"`
	ResultPct     *float64          `json:"resultPct"`
	PnL           *float64          `json:"pnl"`
	Rules         *models.RuleCheck `json:"rules"`
	Status        string            `json:"status" binding:"omitempty,oneof=open closed breakeven"`
	Setup         string            `json:"setup" binding:"max=200"`
	Notes         string            `json:"notes" binding:"max=10000"`
	Tags          []string          `json:"tags" binding:"omitempty,max=20,dive,max=30"`
	ScreenshotURL string            `json:"screenshotUrl" binding:"omitempty,url"`
}

// apply reads a bare date as a calendar day in loc.
func (r tradeRequest) apply(m *models.Trade, loc *time.Location) {
	m.Date = r.Date.At(loc)
	m.Instrument = strings.ToUpper(strings.TrimSpace(r.Instrument))
	m.Direction = r.Direction
	m.EntryPrice = r.EntryPrice
	m.StopLoss = r.StopLoss
	m.TakeProfit = r.TakeProfit
	m.ExitPrice = r.ExitPrice
	m.PositionSize = r.PositionSize
	m.RiskPerTrade = r.RiskPerTrade
	m.ResultR = r.ResultR
	m.ResultPct = r.ResultPct
	m.PnL = r.PnL
	m.Rules = r.Rules
	m.Status = r.Status
	if m.Status == "" {
		m.Status = models.TradeStatusOpen
	}
	m.Setup = r.Setup
	m.Notes = r.Notes
	m.Tags = r.Tags
	m.ScreenshotURL = r.ScreenshotURL
}

// @Summary List trades
// @Tags life
// @Param q query string false "search instrument, setup and notes"
// @Param status query string false "open|closed|breakeven"
// @Param instrument query string false "instrument"
// @Param direction query string false "long|short"
// @Param from query string false "YYYY-MM-DD or RFC3339"
// @Param to query string false "YYYY-MM-DD or RFC3339 (inclusive)"
// @Success 200 {object} apiResponse
// @Router /api/trades [get]
func (h *TradeHandler) list(c *gin.Context) {
	from, to, ok := rangeQuery(c, metricsLocation(h.Metrics))
	if !ok {
		return
	}
	p := pageQuery(c)
	params := repository.ListTradesParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "date", Asc: boolPtr(false)},
		Query:      strQueryPtr(c, "q"),
		Status:     strQueryPtr(c, "status"),
		Instrument: strQueryPtr(c, "instrument"),
		Direction:  strQueryPtr(c, "direction"),
		From:       from,
		To:         to,
	}
	items, err := h.Repo.ListTrades(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "trade")
		return
	}
	total, err := h.Repo.CountTrades(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "trade")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

// @Summary Trading statistics
// @Description Win rate, average R, rule compliance and streaks over the trades in [from, to].
// @Tags life
// @Param from query string false "YYYY-MM-DD or RFC3339"
// @Param to query string false "YYYY-MM-DD or RFC3339 (inclusive)"
// @Success 200 {object} apiResponse{data=service.TradingStats}
// @Failure 400 {object} apiResponse
// @Router /api/trades/stats [get]
func (h *TradeHandler) stats(c *gin.Context) {
	from, to, ok := rangeQuery(c, metricsLocation(h.Metrics))
	if !ok {
		return
	}
	out, err := h.Metrics.TradingStats(c.Request.Context(), from, to)
	if err != nil {
		fail(c, err, "trade")
		return
	}
	Ok(c, out, nil)
}

func (h *TradeHandler) get(c *gin.Context) {
	item, err := h.Repo.GetTradeByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "trade")
		return
	}
	Ok(c, item, nil)
}

// @Summary Journal a trade
// @Tags life
// @Accept json
// @Param body body tradeRequest true "trade"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/trades [post]
func (h *TradeHandler) create(c *gin.Context) {
	var req tradeRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Trade
	req.apply(&item, metricsLocation(h.Metrics))
	if err := h.Repo.CreateTrade(c.Request.Context(), &item); err != nil {
		fail(c, err, "trade")
		return
	}
	Created(c, item)
}

func (h *TradeHandler) update(c *gin.Context) {
	var req tradeRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetTradeByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "trade")
		return
	}
	req.apply(item, metricsLocation(h.Metrics))
	if err := h.Repo.UpdateTrade(c.Request.Context(), item); err != nil {
		fail(c, err, "trade")
		return
	}
	Ok(c, item, nil)
}

func (h *TradeHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteTrade(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "trade")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
