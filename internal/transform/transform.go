// Package transform tags learning-objective columns with their codes and
// reshapes the tagged question table into the output template.
package transform

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nsip/otf-locode/internal/matcher"
	"github.com/nsip/otf-locode/internal/sheet"
)

const (
	// LOPrefix marks objective columns (LO1, LO2, ...).
	LOPrefix = "LO"
	// CodeSuffix is appended to an objective column to name its code column.
	CodeSuffix = "Code"
)

// Stats counts what happened to the objective cells inside the window.
type Stats struct {
	Rows      int `json:"rows"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Empty     int `json:"empty"`
}

// LOColumns returns the objective columns of t in column order.
func LOColumns(t *sheet.Table) []string {
	var cols []string
	for _, c := range t.Columns {
		if strings.HasPrefix(c, LOPrefix) {
			cols = append(cols, c)
		}
	}
	return cols
}

// CodeColumn names the code column paired with an objective column.
func CodeColumn(lo string) string {
	return lo + CodeSuffix
}

// Transform inserts an empty code column right after every objective
// column of t, then fills the code of each non-empty objective cell of the
// rows selected by rr. t is updated in place and returned; rows outside
// the window keep empty code columns.
func Transform(t *sheet.Table, m *matcher.Mapping, rr RowRange) (*sheet.Table, Stats, error) {
	var st Stats

	los := LOColumns(t)
	for _, lo := range los {
		if err := t.InsertColumn(t.Index(lo)+1, CodeColumn(lo)); err != nil {
			return nil, st, errors.Wrapf(err, "cannot add code column for %s", lo)
		}
	}

	lo, hi := rr.Bounds(t.Len())
	st.Rows = hi - lo
	for i := lo; i < hi; i++ {
		for _, col := range los {
			text := t.Cell(i, col)
			if text == "" {
				st.Empty++
				continue
			}
			code, ok := matcher.Match(text, m)
			if ok {
				st.Matched++
			} else {
				st.Unmatched++
			}
			if err := t.Set(i, CodeColumn(col), code); err != nil {
				return nil, st, err
			}
		}
	}

	return t, st, nil
}
