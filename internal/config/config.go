package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"rsu-backtest/internal/model"
)

const dateLayout = "2006-01-02"

// Settings is the on-disk user settings shape (YAML). Unknown keys are
// rejected at decode time rather than silently accepted.
type Settings struct {
	// Stock is the granted ticker, Market the benchmark the divest
	// strategies buy into.
	Stock  string `yaml:"stock"`
	Market string `yaml:"market"`

	// VestSchedule is the ordered yearly vesting calendar as [month, day]
	// pairs, e.g. [[3, 5], [6, 5], [9, 5], [12, 5]] for quarterly vests.
	VestSchedule [][]int `yaml:"vest_schedule"`

	Grants []model.GrantRecord `yaml:"grants"`

	// WorkEndDate stops vesting after employment ends. Empty means still
	// employed.
	WorkEndDate string `yaml:"work_end_date"`

	// PricesFile switches the run to a local JSON price fixture instead of
	// the network price source.
	PricesFile string `yaml:"prices_file"`

	OutCSV string `yaml:"out_csv"`
	OutPNG string `yaml:"out_png"`

	workEnd *time.Time
}

func Load(path string) (*Settings, error) {
	s, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadUnchecked loads settings without validating them. Useful for
// debugging/printing partial configs.
func LoadUnchecked(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	s.applyDefaults()
	return &s, nil
}

func (s *Settings) applyDefaults() {
	if s.OutCSV == "" {
		s.OutCSV = "results.csv"
	}
	if s.OutPNG == "" {
		s.OutPNG = "results.png"
	}
}

// Validate fails eagerly on configuration inconsistencies; a malformed
// work_end_date must not surface halfway through a run.
func (s *Settings) Validate() error {
	if s == nil {
		return errors.New("settings are nil")
	}
	if s.Stock == "" {
		return errors.New("stock is required")
	}
	if s.Market == "" {
		return errors.New("market is required")
	}
	if len(s.Grants) == 0 {
		return errors.New("at least one grant is required")
	}
	for i, pair := range s.VestSchedule {
		if len(pair) != 2 {
			return fmt.Errorf("vest_schedule[%d] must be a [month, day] pair", i)
		}
	}
	if err := s.Schedule().Validate(); err != nil {
		return err
	}
	if s.WorkEndDate != "" {
		d, err := time.Parse(dateLayout, s.WorkEndDate)
		if err != nil {
			return fmt.Errorf("work_end_date must be in YYYY-MM-DD format, or omitted: %w", err)
		}
		day := model.Day(d.Year(), d.Month(), d.Day())
		s.workEnd = &day
	}
	return nil
}

// Schedule converts the raw [month, day] pairs. Call after Validate.
func (s *Settings) Schedule() model.Schedule {
	sched := make(model.Schedule, 0, len(s.VestSchedule))
	for _, pair := range s.VestSchedule {
		if len(pair) != 2 {
			continue
		}
		sched = append(sched, model.VestSlot{Month: time.Month(pair[0]), Day: pair[1]})
	}
	return sched
}

// WorkEnd returns the parsed employment end date, or nil if still employed.
// Only set after Validate.
func (s *Settings) WorkEnd() *time.Time {
	return s.workEnd
}
