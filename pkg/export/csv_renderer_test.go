package export

import (
	"strings"
	"testing"
	"time"

	"github.com/poupanca/poupanca/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvEntriesRenderer_RenderEntries(t *testing.T) {
	p := plan.NewDefaultPlan(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	p.Entries[0].IsSaved = true

	rendered, err := NewCsvEntriesRenderer().RenderEntries(p)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(t, lines, 13, "header plus one row per month")
	assert.Equal(t, "Mes,Valor,Poupado", lines[0])
	assert.Equal(t, "1,120,Sim", lines[1])
	assert.Equal(t, "2,180,Não", lines[2])
	assert.Equal(t, "12,650,Não", lines[12])
}
