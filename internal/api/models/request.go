package models

import "rsu-backtest/internal/model"

// AnalysisRequest represents the request body for running an analysis. It is
// the JSON counterpart of the YAML settings file.
type AnalysisRequest struct {
	Stock  string `json:"stock" binding:"required"`
	Market string `json:"market" binding:"required"`

	// VestSchedule is the ordered yearly vesting calendar as [month, day]
	// pairs.
	VestSchedule [][]int `json:"vest_schedule" binding:"required"`

	Grants []model.GrantRecord `json:"grants" binding:"required"`

	WorkEndDate string `json:"work_end_date,omitempty"`

	Options AnalysisOptions `json:"options,omitempty"`
}

// AnalysisOptions contains optional analysis parameters
type AnalysisOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}
