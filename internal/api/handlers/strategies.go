package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rsu-backtest/internal/api/models"
	"rsu-backtest/internal/strategy"
)

// ListStrategies handles GET /api/v1/strategies
func ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        strategy.HoldName,
			Description: "Keep every vested share; no sales except what the issuer sells to cover withholding at vest.",
		},
		{
			Name:        strategy.DivestRSUName,
			Description: "Sell vested shares immediately at each vest and reinvest the proceeds into the market benchmark.",
		},
		{
			Name:        strategy.DivestCashName,
			Description: "Take grants as cash instead of shares; invest each cash vest into the market benchmark immediately.",
		},
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
