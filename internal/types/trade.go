package types

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
)

type Position string

type StopLossType string

type TradeResult string

const (
	PositionLong  Position = "long"
	PositionShort Position = "short"
)

const (
	StopLossTypePercent StopLossType = "percent"
	StopLossTypePips    StopLossType = "pips"
)

const (
	TradeResultProfit   TradeResult = "profit"
	TradeResultLoss     TradeResult = "loss"
	TradeResultRiskFree TradeResult = "riskfree"
)

const (
	// DateLayout is the storage layout of Trade.Date. It sorts lexically.
	DateLayout = "2006-01-02"
	// TimeLayout is the storage layout of Trade.Time, local clock without zone.
	TimeLayout = "15:04"
)

// Trade is one logged journal entry.
type Trade struct {
	// ID is assigned by the store. Empty for trades that were never persisted.
	ID           string       `yaml:"id" json:"id" csv:"id"`
	Date         string       `yaml:"date" json:"date" csv:"date" validate:"required,datetime=2006-01-02"`
	Time         string       `yaml:"time" json:"time" csv:"time" validate:"required,datetime=15:04"`
	Position     Position     `yaml:"position" json:"position" csv:"position" validate:"required,oneof=long short"`
	Risk         float64      `yaml:"risk" json:"risk" csv:"risk" validate:"gt=0"`
	RRRatio      float64      `yaml:"rr_ratio" json:"rrRatio" csv:"rr_ratio" validate:"gt=0"`
	StopLoss     float64      `yaml:"stop_loss" json:"stopLoss" csv:"stop_loss" validate:"gte=0"`
	StopLossType StopLossType `yaml:"stop_loss_type" json:"stopLossType" csv:"stop_loss_type" validate:"required,oneof=percent pips"`
	// Tags is the comma-joined tag list, e.g. "breakout, london-open".
	Tags   string      `yaml:"tags" json:"tags" csv:"tags"`
	Result TradeResult `yaml:"result" json:"result" csv:"result" validate:"required,oneof=profit loss riskfree"`
	// Pnl is the signed currency delta of the trade. Always 0 for riskfree trades.
	Pnl           float64 `yaml:"pnl" json:"pnl" csv:"pnl"`
	ScreenshotURL string  `yaml:"screenshot_url,omitempty" json:"screenshotUrl,omitempty" csv:"screenshot_url" validate:"omitempty,url"`
}

// Validate validates the Trade struct, including the pnl/result sign invariant.
func (t *Trade) Validate() error {
	numbers := []struct {
		field string
		value float64
	}{
		{"risk", t.Risk},
		{"rr_ratio", t.RRRatio},
		{"stop_loss", t.StopLoss},
		{"pnl", t.Pnl},
	}

	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return errors.Wrap(errors.ErrCodeInvalidTrade, "invalid trade",
				errors.NewFieldError(t.ID, n.field, n.value, "must be a finite number"))
		}
	}

	validate := validator.New()
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTrade, "invalid trade", err)
	}

	switch t.Result {
	case TradeResultProfit:
		if t.Pnl <= 0 {
			return errors.Wrap(errors.ErrCodeInvalidPnlSign, "invalid trade",
				errors.NewFieldError(t.ID, "pnl", t.Pnl, "a profit must have a positive pnl"))
		}
	case TradeResultLoss:
		if t.Pnl >= 0 {
			return errors.Wrap(errors.ErrCodeInvalidPnlSign, "invalid trade",
				errors.NewFieldError(t.ID, "pnl", t.Pnl, "a loss must have a negative pnl"))
		}
	case TradeResultRiskFree:
		if t.Pnl != 0 {
			return errors.Wrap(errors.ErrCodeInvalidPnlSign, "invalid trade",
				errors.NewFieldError(t.ID, "pnl", t.Pnl, "a riskfree trade must have a zero pnl"))
		}
	}

	return nil
}

// IsWin reports whether the trade was a profit.
func (t Trade) IsWin() bool {
	return t.Result == TradeResultProfit
}

// IsLoss reports whether the trade was a loss.
func (t Trade) IsLoss() bool {
	return t.Result == TradeResultLoss
}

// Hour returns the hour of day of the trade's local clock time.
// A malformed time yields 0.
func (t Trade) Hour() int {
	hourPart, _, _ := strings.Cut(strings.TrimSpace(t.Time), ":")

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0
	}

	return hour
}

// Weekday returns the day of week of the trade date, 0 = Sunday.
// A malformed date yields -1, which no weekday filter selects.
func (t Trade) Weekday() int {
	day, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return -1
	}

	return int(day.Weekday())
}

// Month returns the calendar month of the trade date, or 0 for a malformed date.
func (t Trade) Month() time.Month {
	day, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return 0
	}

	return day.Month()
}

// MonthLabel returns the abbreviated month name ("Jan".."Dec") of the trade date.
func (t Trade) MonthLabel() string {
	return MonthLabel(t.Month())
}

// MonthStart returns the first day of the trade's month in DateLayout.
// Trades dated strictly before it belong to earlier months.
func (t Trade) MonthStart() string {
	if len(t.Date) < len("2006-01") {
		return t.Date
	}

	return t.Date[:len("2006-01")] + "-01"
}

// TagList splits the comma-joined tags, trims them and drops empty entries.
func (t Trade) TagList() []string {
	return ParseTags(t.Tags)
}

// ParseTags splits a comma-joined tag field into trimmed, non-empty tags.
func ParseTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}

	parts := strings.Split(tags, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}

		result = append(result, tag)
	}

	return result
}

// JoinTags joins tags into the storage representation, keeping the first
// occurrence of each tag.
func JoinTags(tags ...string) string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}

		if _, ok := seen[tag]; ok {
			continue
		}

		seen[tag] = struct{}{}
		result = append(result, tag)
	}

	return strings.Join(result, ", ")
}
