// Package feed loads historical bars for the backtest engine.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jwtly10/tradetables/internal/types"
)

var ErrMalformedRow = errors.New("malformed bar row")

// columns is the expected CSV layout
var columns = []string{"timestamp", "open", "high", "low", "close", "volume"}

// LoadCSVFile reads bars from a CSV file. See ReadCSV.
func LoadCSVFile(path string) ([]types.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer func() { _ = f.Close() }()

	bars, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("Loaded bars", "path", path, "count", len(bars))
	return bars, nil
}

// ReadCSV parses timestamp,open,high,low,close,volume rows with RFC 3339
// timestamps. A header row is skipped. Bars must be in ascending time order.
func ReadCSV(r io.Reader) ([]types.Bar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(columns)
	reader.TrimLeadingSpace = true

	var bars []types.Bar
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), columns[0]) {
			continue
		}

		bar, err := parseBar(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		if n := len(bars); n > 0 && !bar.Timestamp.After(bars[n-1].Timestamp) {
			return nil, fmt.Errorf("%w: line %d: timestamp %s not after previous bar", ErrMalformedRow, line, record[0])
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseBar(record []string) (types.Bar, error) {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(record[0]))
	if err != nil {
		return types.Bar{}, fmt.Errorf("timestamp: %w", err)
	}

	var prices [5]float64
	for i := range prices {
		prices[i], err = strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return types.Bar{}, fmt.Errorf("%s: %w", columns[i+1], err)
		}
	}

	bar := types.Bar{
		Timestamp: ts,
		Open:      prices[0],
		High:      prices[1],
		Low:       prices[2],
		Close:     prices[3],
		Volume:    prices[4],
	}
	return bar, bar.Validate()
}
