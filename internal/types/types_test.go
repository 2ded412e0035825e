package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBar_Validate(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		bar     Bar
		wantErr bool
	}{
		{"valid", Bar{Timestamp: ts, Open: 100, High: 105, Low: 99, Close: 104}, false},
		{"flat", Bar{Timestamp: ts, Open: 100, High: 100, Low: 100, Close: 100}, false},
		{"no timestamp", Bar{Open: 100, High: 100, Low: 100, Close: 100}, true},
		{"high below low", Bar{Timestamp: ts, Open: 100, High: 99, Low: 101, Close: 100}, true},
		{"close above high", Bar{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 102}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bar.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
