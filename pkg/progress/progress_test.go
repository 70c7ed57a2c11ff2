package progress

import (
	"testing"
	"time"

	"github.com/poupanca/poupanca/pkg/plan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func planWithSaved(savedMonths ...int) plan.SavingsPlan {
	p := plan.NewDefaultPlan(testNow())
	saved := map[int]bool{}
	for _, m := range savedMonths {
		saved[m] = true
	}
	for i := range p.Entries {
		p.Entries[i].IsSaved = saved[p.Entries[i].Month]
	}
	return p
}

func TestCalculate(t *testing.T) {
	t.Run("seeded couple plan with two saved months", func(t *testing.T) {
		// Entries 120 and 180 saved, couple multiplier doubles both the
		// current total and the effective target.
		p := planWithSaved(1, 2)

		summary := Calculate(p)

		assert.True(t, summary.CurrentTotal.Equal(decimal.NewFromInt(600)), "currentTotal = %s", summary.CurrentTotal)
		assert.True(t, summary.NominalTarget.Equal(decimal.NewFromInt(10000)), "nominalTarget = %s", summary.NominalTarget)
		assert.Equal(t, int64(6), summary.Percentage)
		assert.Equal(t, 2, summary.MonthsCompleted)
	})

	t.Run("individual mode halves the couple totals", func(t *testing.T) {
		p := planWithSaved(1, 2)
		p.IsCouple = false

		summary := Calculate(p)

		assert.True(t, summary.CurrentTotal.Equal(decimal.NewFromInt(300)))
		assert.True(t, summary.NominalTarget.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("nothing saved yields zero progress", func(t *testing.T) {
		summary := Calculate(planWithSaved())

		assert.True(t, summary.CurrentTotal.IsZero())
		assert.Equal(t, int64(0), summary.Percentage)
		assert.Equal(t, 0, summary.MonthsCompleted)
	})

	t.Run("everything saved yields exactly 100", func(t *testing.T) {
		summary := Calculate(planWithSaved(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12))

		assert.True(t, summary.CurrentTotal.Equal(summary.NominalTarget))
		assert.Equal(t, int64(100), summary.Percentage)
		assert.Equal(t, 12, summary.MonthsCompleted)
	})

	t.Run("effective target ignores the stored target field", func(t *testing.T) {
		p := planWithSaved(1)
		p.Target = decimal.NewFromInt(99999)

		summary := Calculate(p)

		assert.True(t, summary.NominalTarget.Equal(decimal.NewFromInt(10000)))
	})
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		target  int64
		want    int64
	}{
		{"zero current", 0, 1000, 0},
		{"zero target guards divide-by-zero", 500, 0, 0},
		{"full progress", 1000, 1000, 100},
		{"capped at 100 when current exceeds target", 1500, 1000, 100},
		{"rounds to nearest", 333, 1000, 33},
		{"rounds half up", 335, 1000, 34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.target))
			assert.Equal(t, tt.want, got)
		})
	}
}
