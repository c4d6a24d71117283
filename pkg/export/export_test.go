package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlab/packsim/core/model"
)

func sampleResult(t *testing.T) *model.PackResult {
	t.Helper()
	ts := model.NewTimeSeries(2)
	require.NoError(t, ts.Append(0, 4.2, 5, 298.15))
	require.NoError(t, ts.Append(10, 4.19, 5, 298.2))
	return &model.PackResult{
		RunID:     "run-1",
		Chemistry: model.ChemistryNMC,
		Series:    1,
		Parallel:  1,
		Cells:     []model.CellResult{{Row: 0, Col: 0, CellID: "abc", Series: ts}},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult(t)))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"row", "col", "cell_id", "time_s", "terminal_voltage_V", "current_A", "temperature_K"}, recs[0])
	assert.Equal(t, []string{"0", "0", "abc", "0", "4.2", "5", "298.15"}, recs[1])
	assert.Equal(t, "10", recs[2][3])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult(t)))

	var got model.PackResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	require.Len(t, got.Cells, 1)
	assert.Equal(t, "abc", got.Cells[0].CellID)
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &model.PackResult{}))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1, "header only")
}
