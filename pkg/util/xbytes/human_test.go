package xbytes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		name      string
		num       float64
		metric    bool
		precision int
		want      string
	}{
		{name: "zero", num: 0, precision: 1, want: "0.0 B"},
		{name: "bytes below step", num: 1023, precision: 0, want: "1023 B"},
		{name: "binary KiB", num: 1024, precision: 1, want: "1.0 KiB"},
		{name: "binary fraction", num: 1536, precision: 1, want: "1.5 KiB"},
		{name: "metric kB", num: 1500, metric: true, precision: 1, want: "1.5 kB"},
		{name: "metric MB", num: 2_000_000, metric: true, precision: 2, want: "2.00 MB"},
		{name: "binary MiB", num: 5452595.2, precision: 1, want: "5.2 MiB"},
		{name: "negative", num: -1536, precision: 1, want: "-1.5 KiB"},
		{name: "zero precision", num: 1536, precision: 0, want: "2 KiB"},
		{name: "three digits", num: 1536, precision: 3, want: "1.500 KiB"},
		{name: "rounding promotes unit", num: 1023.96, precision: 1, want: "1.0 KiB"},
		{name: "metric rounding promotes unit", num: 999.96, metric: true, precision: 1, want: "1.0 kB"},
		{name: "huge value stays in last unit", num: math.Pow(1024, 9) * 5, precision: 0, want: "5120 YiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Humanize(tt.num, tt.metric, tt.precision)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHumanizeErrors(t *testing.T) {
	_, err := Humanize(math.NaN(), false, 1)
	assert.ErrorIs(t, err, ErrNotANumber)

	_, err = Humanize(math.Inf(1), false, 1)
	assert.ErrorIs(t, err, ErrNotANumber)

	_, err = Humanize(1024, false, 4)
	assert.ErrorIs(t, err, ErrPrecision)

	_, err = Humanize(1024, false, -1)
	assert.ErrorIs(t, err, ErrPrecision)
}
