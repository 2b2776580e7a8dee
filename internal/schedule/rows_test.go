package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRows(t *testing.T) {
	result := NewScheduler(testCatalog()).Compute(testConfig())

	rows := Rows(result.Phases)

	require.Len(t, rows, 6)
	assert.Equal(t, Row{
		Phase:        "Preparation",
		Milestone:    "B",
		Start:        rows[1].Start,
		End:          rows[1].End,
		DurationDays: 5,
		Owner:        "Counsel",
		Categories:   []string{"legal", "regulatory"},
	}, rows[1])
	assert.Equal(t, []string{"Preparation", "B", "2025-03-03", "2025-03-07", "5", "Counsel", "legal; regulatory"}, rows[1].Strings())
	assert.Len(t, RowHeader, len(rows[0].Strings()))
	assert.Equal(t, "After", rows[5].Phase)
}

func TestRows_Empty(t *testing.T) {
	assert.Empty(t, Rows(nil))
}
