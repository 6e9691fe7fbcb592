package transform

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderOffset converts the spreadsheet row number a user types into a
// positional table index. Question sheets carry a title row and the
// header on rows 1 and 2, so the first question sits on row 3, which is
// table index 0.
const HeaderOffset = 3

// FormatError reports a row range that is not two integers joined by a
// hyphen.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid question range %q: %s", e.Input, e.Reason)
}

// RowRange is the "start-end" window, as typed.
type RowRange struct {
	Start int
	End   int
}

// ParseRowRange parses "start-end". Spaces around either number are
// allowed; anything else than exactly two integers is a *FormatError.
func ParseRowRange(s string) (RowRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return RowRange{}, &FormatError{Input: s, Reason: fmt.Sprintf("expected start-end, got %d part(s)", len(parts))}
	}

	var bounds [2]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RowRange{}, &FormatError{Input: s, Reason: fmt.Sprintf("%q is not an integer", p)}
		}
		bounds[i] = n
	}

	return RowRange{Start: bounds[0], End: bounds[1]}, nil
}

func (r RowRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Bounds returns the positional slice [lo, hi) the range selects in a
// table of n rows. The slice is [Start-HeaderOffset, End) with the usual
// slice rules: a negative bound counts back from the end and both bounds
// are clamped to [0, n]. The end is used as typed, so the window runs
// HeaderOffset-1 rows past the last row number the user entered when the
// table is long enough.
func (r RowRange) Bounds(n int) (lo, hi int) {
	lo = clampIndex(r.Start-HeaderOffset, n)
	hi = clampIndex(r.End, n)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}
