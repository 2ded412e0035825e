package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `timestamp,open,high,low,close,volume
2024-01-01T00:00:00Z,100,101,99,100.5,1000
2024-01-01T00:15:00Z, 100.5, 103, 100, 102.25, 1200
`

func TestReadCSV(t *testing.T) {
	bars, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 15, 0, 0, time.UTC), bars[1].Timestamp)
	assert.Equal(t, 102.25, bars[1].Close)
	assert.Equal(t, 1200.0, bars[1].Volume)
}

func TestReadCSV_NoHeader(t *testing.T) {
	bars, err := ReadCSV(strings.NewReader("2024-01-01T00:00:00Z,1,1,1,1,0\n"))
	require.NoError(t, err)
	assert.Len(t, bars, 1)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"bad number":    "2024-01-01T00:00:00Z,abc,1,1,1,0\n",
		"bad timestamp": "yesterday,1,1,1,1,0\n",
		"short row":     "2024-01-01T00:00:00Z,1,1,1\n",
		"inverted bar":  "2024-01-01T00:00:00Z,1,1,2,1,0\n",
		"out of order":  "2024-01-01T00:15:00Z,1,1,1,1,0\n2024-01-01T00:00:00Z,1,1,1,1,0\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformedRow)
		})
	}
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	bars, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Len(t, bars, 2)

	_, err = LoadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
