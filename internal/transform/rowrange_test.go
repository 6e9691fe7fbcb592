package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowRange(t *testing.T) {
	tests := []struct {
		in      string
		want    RowRange
		wantErr bool
	}{
		{in: "3-38", want: RowRange{3, 38}},
		{in: " 3 - 5 ", want: RowRange{3, 5}},
		{in: "0-0", want: RowRange{0, 0}},
		{in: "3", wantErr: true},
		{in: "", wantErr: true},
		{in: "a-b", wantErr: true},
		{in: "3-", wantErr: true},
		{in: "1-2-3", wantErr: true},
		{in: "-1-5", wantErr: true},
		{in: "3–5", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRowRange(tt.in)
		if tt.wantErr {
			var fe *FormatError
			require.ErrorAs(t, err, &fe, "input %q", tt.in)
			assert.Equal(t, tt.in, fe.Input)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestRowRangeBounds(t *testing.T) {
	tests := []struct {
		name   string
		rr     RowRange
		n      int
		lo, hi int
	}{
		{"first rows", RowRange{3, 5}, 10, 0, 5},
		{"end past table", RowRange{3, 38}, 10, 0, 10},
		{"middle", RowRange{6, 8}, 10, 3, 8},
		{"start past table", RowRange{20, 30}, 10, 10, 10},
		{"start before header counts from end", RowRange{1, 10}, 10, 8, 10},
		{"start before header on short table", RowRange{0, 2}, 2, 0, 2},
		{"end before start", RowRange{8, 4}, 10, 5, 5},
		{"empty table", RowRange{3, 5}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.rr.Bounds(tt.n)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestRowRangeString(t *testing.T) {
	assert.Equal(t, "3-38", RowRange{3, 38}.String())
}
