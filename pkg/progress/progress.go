package progress

import (
	"github.com/poupanca/poupanca/pkg/plan"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the derived metrics of a plan. It is computed on every
// query and carries no state of its own.
type Summary struct {
	CurrentTotal decimal.Decimal
	// NominalTarget is the effective goal: the sum of all entry values
	// times the multiplier. The plan's stored target field is display
	// metadata only and deliberately not used here.
	NominalTarget   decimal.Decimal
	Percentage      int64
	MonthsCompleted int
}

// Calculate derives all aggregate metrics from the plan's entries and
// multiplier.
func Calculate(p plan.SavingsPlan) Summary {
	multiplier := decimal.NewFromInt(p.Multiplier())

	sum := decimal.Zero
	savedSum := decimal.Zero
	monthsCompleted := 0
	for _, e := range p.Entries {
		sum = sum.Add(e.Value)
		if e.IsSaved {
			savedSum = savedSum.Add(e.Value)
			monthsCompleted++
		}
	}

	nominalTarget := sum.Mul(multiplier)
	currentTotal := savedSum.Mul(multiplier)

	return Summary{
		CurrentTotal:    currentTotal,
		NominalTarget:   nominalTarget,
		Percentage:      Percentage(currentTotal, nominalTarget),
		MonthsCompleted: monthsCompleted,
	}
}

// Percentage returns round(current/target*100) capped at 100, and 0 for
// a zero target.
func Percentage(current, target decimal.Decimal) int64 {
	if target.IsZero() {
		return 0
	}
	pct := current.Div(target).Mul(hundred).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	return pct
}
