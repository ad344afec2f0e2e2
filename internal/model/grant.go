package model

// GrantRecord is the raw declarative description of one equity award as it
// appears in the settings file or an API request. Exactly one of VestModel /
// VestPlan must be set; the grant package resolves either into a concrete
// per-period plan.
type GrantRecord struct {
	// GrantDate is the issuance date in YYYY-MM-DD form.
	GrantDate   string  `yaml:"grant_date" json:"grant_date"`
	GrantValue  float64 `yaml:"grant_value" json:"grant_value"`
	GrantReason string  `yaml:"grant_reason" json:"grant_reason"`

	// SellableQty / VestQty estimate the issuer's default tax withholding:
	// the fraction of a gross vest actually delivered.
	SellableQty float64 `yaml:"sellable_qty" json:"sellable_qty"`
	VestQty     float64 `yaml:"vest_qty" json:"vest_qty"`

	VestModel *VestModel `yaml:"vest_model,omitempty" json:"vest_model,omitempty"`

	// VestPlan supplies the plan explicitly: period key -> one fractional
	// weight per schedule slot. Keys are absolute calendar years, or
	// zero-based offsets from the grant year (keys below 1900 are offsets).
	VestPlan map[int][]float64 `yaml:"vest_plan,omitempty" json:"vest_plan,omitempty"`
}

// VestModel describes a standard vesting shape for the engine to synthesize:
// equal vests at every schedule slot over DurationYears, optionally preceded
// by a cliff that consumes slots and then releases a lump fraction.
type VestModel struct {
	DurationYears     int     `yaml:"duration_years" json:"duration_years"`
	CliffSkippedVests int     `yaml:"cliff_skipped_vests" json:"cliff_skipped_vests"`
	CliffVestQty      float64 `yaml:"cliff_vest_qty" json:"cliff_vest_qty"`
}
