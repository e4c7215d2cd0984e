package validation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/format"
	"github.com/templui/goalboard/internal/model"
)

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// ParseAmount parses user input such as "$1,250.50" after stripping the
// currency symbol, grouping commas and spaces.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, errors.New("amount is empty")
	}
	return decimal.NewFromString(cleaned)
}

// ValidateTargetAmount requires a positive amount no larger than 1,000,000.
func ValidateTargetAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("target amount is required")
	}

	amount, err := ParseAmount(s)
	if err != nil || !amount.IsPositive() {
		return errors.New("please enter a valid amount")
	}
	if amount.GreaterThan(model.MaxAmount) {
		return errors.New("amount cannot exceed $1,000,000")
	}

	return nil
}

// ValidateCurrentAmount allows zero but nothing negative or above 1,000,000.
func ValidateCurrentAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("current amount is required")
	}

	amount, err := ParseAmount(s)
	if err != nil || amount.IsNegative() {
		return errors.New("please enter a valid amount")
	}
	if amount.GreaterThan(model.MaxAmount) {
		return errors.New("amount cannot exceed $1,000,000")
	}

	return nil
}

// ValidateDepositAmount checks a single deposit against the goal it funds.
func ValidateDepositAmount(s string, goal *model.Goal) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("please enter an amount")
	}

	amount, err := ParseAmount(s)
	if err != nil || !amount.IsPositive() {
		return errors.New("please enter a valid amount")
	}
	if amount.GreaterThan(model.MaxAmount) {
		return errors.New("amount cannot exceed $1,000,000")
	}

	if goal.CurrentAmount.Add(amount).GreaterThan(goal.TargetAmount) {
		return errors.New("cannot exceed target amount of " + format.Currency(goal.TargetAmount))
	}

	return nil
}

// FormatAmountInput reformats an amount while it is being typed: only digits
// and a decimal point are kept, thousands are grouped and at most two
// decimals are shown.
func FormatAmountInput(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	numeric := b.String()

	parts := strings.Split(numeric, ".")
	if len(parts) > 2 {
		return parts[0] + "." + strings.Join(parts[1:], "")
	}

	whole, dot := strings.CutSuffix(numeric, ".")
	f, err := strconv.ParseFloat(whole, 64)
	if err != nil {
		return numeric
	}
	if dot {
		return format.Grouped(f, 2) + "."
	}
	return format.Grouped(f, 2)
}
