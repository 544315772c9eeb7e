package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/creditgen/internal/domain/insights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteInsights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemas", "credit_score_insights.yaml")
	in := insights.Insights{
		RunID:           "run-1",
		GeneratedAt:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalRecords:    4,
		UniqueCustomers: 2,
		BureausCovered:  []string{"Equifax", "TransUnion"},
		ScoreDistribution: insights.Distribution{
			Count: 2, Mean: 650, Median: 650, Std: 70.71, Min: 600, Max: 700,
		},
		RiskCategoryDistribution: map[string]int{"LOW": 1, "MEDIUM_HIGH": 1},
		DateRange:                insights.DateRange{Earliest: "2025-02-13", Latest: "2025-03-15"},
		CreditEvents:             1,
		EventTypeDistribution:    map[string]int{"CREDIT_INQUIRY": 1},
	}

	require.NoError(t, WriteInsights(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "total_records: 4")

	var got insights.Insights
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, in, got)
}
