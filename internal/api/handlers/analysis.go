package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rsu-backtest/internal/analysis"
	"rsu-backtest/internal/api/models"
	"rsu-backtest/internal/backtest"
	"rsu-backtest/internal/config"
	"rsu-backtest/internal/data"
	"rsu-backtest/internal/grant"
	"rsu-backtest/internal/vesting"
)

// AnalysisHandler handles analysis-related requests
type AnalysisHandler struct {
	prices data.PriceSource
	log    zerolog.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(prices data.PriceSource, log zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{prices: prices, log: log}
}

// RunAnalysis handles POST /api/v1/analysis
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	ledger, settings, err := h.buildLedger(req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	engine := backtest.New(h.prices)
	res, err := engine.Run(ledger, settings.Stock, settings.Market, time.Now().UTC())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := models.AnalysisResponse{
		Status:      "completed",
		Stock:       res.Stock,
		Market:      res.Market,
		LatestPrice: res.Final().StockClose,
		Summary:     analysis.Summarize(res),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = models.FromLedger(res.Ledger)
	}
	c.JSON(http.StatusOK, resp)
}

// ResolveGrants handles POST /api/v1/grants
func (h *AnalysisHandler) ResolveGrants(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	ledger, _, err := h.buildLedger(req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	infos := make([]models.GrantInfo, 0, len(ledger.Grants()))
	for _, g := range ledger.Grants() {
		first, err := g.FirstVestDate()
		if err != nil {
			respondDomainError(c, err)
			return
		}
		infos = append(infos, models.GrantInfo{
			GrantReason:   g.Reason,
			GrantDate:     g.Date.Format("2006-01-02"),
			GrantValue:    g.Value,
			GrantQty:      g.Qty,
			VestRate:      g.VestRate,
			FirstVestDate: first.Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"grants": infos})
}

// buildLedger validates the request as settings and resolves every grant.
func (h *AnalysisHandler) buildLedger(req models.AnalysisRequest) (*vesting.Ledger, *config.Settings, error) {
	settings := &config.Settings{
		Stock:        req.Stock,
		Market:       req.Market,
		VestSchedule: req.VestSchedule,
		Grants:       req.Grants,
		WorkEndDate:  req.WorkEndDate,
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}

	sched := settings.Schedule()
	resolver := grant.Resolver{Schedule: sched, Ticker: settings.Stock, Prices: h.prices}
	grants, err := resolver.ResolveAll(settings.Grants)
	if err != nil {
		return nil, nil, err
	}
	return vesting.NewLedger(sched, grants, settings.WorkEnd()), settings, nil
}

func respondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}

// respondDomainError maps domain error types onto HTTP statuses.
func respondDomainError(c *gin.Context, err error) {
	var vErr *grant.ValidationError
	if errors.As(err, &vErr) {
		respondError(c, http.StatusBadRequest, "INVALID_GRANT", err)
		return
	}
	var dErr *data.DataUnavailableError
	if errors.As(err, &dErr) {
		respondError(c, http.StatusBadGateway, "DATA_UNAVAILABLE", err)
		return
	}
	var yErr *data.YahooError
	if errors.As(err, &yErr) {
		status := http.StatusBadGateway
		if yErr.StatusCode == http.StatusTooManyRequests {
			status = http.StatusTooManyRequests
		}
		respondError(c, status, yErr.Code, err)
		return
	}
	respondError(c, http.StatusBadRequest, "INVALID_SETTINGS", err)
}
