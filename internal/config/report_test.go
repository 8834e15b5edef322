package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadReportParams(t *testing.T) {
	path := writeConfig(t, `{
		"name": "June Evaluation",
		"start_date": "2024-06-01",
		"end_date": "2024-06-30",
		"timezone": "America/Phoenix",
		"metrics": ["mae", "rmse", "quantile_score"],
		"categories": ["total", "date"],
		"costs": [{"name": "energy", "type": "constant", "value": 0.05}]
	}`)

	cfg, err := LoadReportParams(path)
	require.NoError(t, err)

	assert.Equal(t, "June Evaluation", cfg.GetName())
	assert.Equal(t, []string{"mae", "rmse", "quantile_score"}, cfg.GetMetrics())
	assert.Len(t, cfg.GetCategories(), 2)
	assert.Equal(t, "America/Phoenix", cfg.GetTimezoneName())
	require.Len(t, cfg.Costs, 1)
	assert.Equal(t, "energy", cfg.Costs[0].Name)
}

func TestLoadReportParams_PartialConfigUsesDefaults(t *testing.T) {
	path := writeConfig(t, `{"name": "Minimal"}`)

	cfg, err := LoadReportParams(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"mae", "mbe", "rmse"}, cfg.GetMetrics())
	assert.Equal(t, "UTC", cfg.GetTimezoneName())
	assert.Equal(t, 0.5, cfg.GetQuantile())
	assert.Equal(t, "W/m^2", cfg.GetUnits())
}

func TestLoadReportParams_RejectsNonJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := LoadReportParams(path)
	assert.Error(t, err)
}

func TestLoadReportParams_RejectsBadDate(t *testing.T) {
	path := writeConfig(t, `{"start_date": "June 1st"}`)
	_, err := LoadReportParams(path)
	assert.Error(t, err)
}

func TestLoadReportParams_RejectsBadQuantile(t *testing.T) {
	path := writeConfig(t, `{"quantile": 1.5}`)
	_, err := LoadReportParams(path)
	assert.Error(t, err)
}

func TestLoadReportParams_RejectsUnknownCategory(t *testing.T) {
	path := writeConfig(t, `{"categories": ["fortnight"]}`)
	_, err := LoadReportParams(path)
	assert.Error(t, err)
}

func TestLoadReportParams_MissingFile(t *testing.T) {
	_, err := LoadReportParams(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
