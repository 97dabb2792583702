package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Region,Date,Frequency,Rate,Employed,Participation,Region,longitude,latitude\n"

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+body), 0o600))
	return path
}

func TestRun_CleanDataset(t *testing.T) {
	path := writeDataset(t,
		"Assam,31-01-2020,M,4.29,12021798,38.77,Northeast,26.2,92.9\n"+
			"Assam,29-02-2020,M,4.61,11764090,38.14,Northeast,26.2,92.9\n")

	var out bytes.Buffer
	assert.Equal(t, 0, run(path, &out))
	assert.Contains(t, out.String(), "All checks passed.")
	assert.Contains(t, out.String(), "Dates: 2020-01-31 to 2020-02-29 (0 null)")
}

func TestRun_ReportsEveryFailingPhase(t *testing.T) {
	path := writeDataset(t,
		"Assam,31-01-2020,M,4.29,12021798,38.77,Northeast,26.2,92.9\n"+
			"Assam,someday,M,140,,38.14,East,26.2,92.9\n")

	var out bytes.Buffer
	assert.Equal(t, 1, run(path, &out))

	s := out.String()
	assert.Contains(t, s, "line 3 (Assam): date did not parse")
	assert.Contains(t, s, `state "Assam" appears under regions [East Northeast]`)
	assert.Contains(t, s, "outside [0, 100]")
	assert.Contains(t, s, "Estimated Employed is empty or not an integer")
	assert.Contains(t, s, "Inspection FAILED.")
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "absent.csv"), &out))
	assert.Contains(t, out.String(), "Phase 1: Load")
}
