package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsip/otf-locode/internal/matcher"
	"github.com/nsip/otf-locode/internal/sheet"
)

func questionTable() *sheet.Table {
	t := sheet.New("Level", "LO1", "LO2", "Question Statement")
	t.Rows = [][]string{
		{"FDT", "students will understand recursion.", "", "Q1"},
		{"FDT", "Students will write loops", "photosynthesis in leaves", "Q2"},
		{"FDT", "students will understand recursion", "", "Q3"},
	}
	return t
}

func codeMapping() *matcher.Mapping {
	m := matcher.NewMapping()
	m.Add("students will understand recursion", "C101")
	m.Add("Students will write loops.", "C102")
	return m
}

func TestLOColumns(t *testing.T) {
	tbl := sheet.New("Level", "LO1", "Skill", "LO2", "LOW", "lo3")
	assert.Equal(t, []string{"LO1", "LO2", "LOW"}, LOColumns(tbl))
}

func TestTransformInsertsCodeColumns(t *testing.T) {
	tbl := questionTable()

	got, _, err := Transform(tbl, codeMapping(), RowRange{3, 5})
	require.NoError(t, err)

	assert.Same(t, tbl, got)
	assert.Equal(t, []string{"Level", "LO1", "LO1Code", "LO2", "LO2Code", "Question Statement"}, got.Columns)
	assert.Equal(t, 3, got.Len())
}

func TestTransformAssignsCodes(t *testing.T) {
	got, st, err := Transform(questionTable(), codeMapping(), RowRange{3, 38})
	require.NoError(t, err)

	assert.Equal(t, "C101", got.Cell(0, "LO1Code"))
	assert.Equal(t, "", got.Cell(0, "LO2Code"))
	assert.Equal(t, "C102", got.Cell(1, "LO1Code"))
	assert.Equal(t, "", got.Cell(1, "LO2Code"))
	assert.Equal(t, "C101", got.Cell(2, "LO1Code"))

	assert.Equal(t, Stats{Rows: 3, Matched: 3, Unmatched: 1, Empty: 2}, st)
}

func TestTransformLeavesRowsOutsideWindow(t *testing.T) {
	got, st, err := Transform(questionTable(), codeMapping(), RowRange{4, 4})
	require.NoError(t, err)

	assert.Equal(t, "", got.Cell(0, "LO1Code"))
	assert.Equal(t, "C102", got.Cell(1, "LO1Code"))
	assert.Equal(t, "C101", got.Cell(2, "LO1Code"))
	assert.Equal(t, 2, st.Rows)

	got, st, err = Transform(questionTable(), codeMapping(), RowRange{50, 60})
	require.NoError(t, err)
	for i := 0; i < got.Len(); i++ {
		assert.Equal(t, "", got.Cell(i, "LO1Code"))
		assert.Equal(t, "", got.Cell(i, "LO2Code"))
	}
	assert.Zero(t, st.Rows)
}

func TestTransformWithoutLOColumns(t *testing.T) {
	tbl := sheet.New("Level", "Question Statement")
	tbl.Rows = [][]string{{"FDT", "Q1"}}

	got, st, err := Transform(tbl, codeMapping(), RowRange{3, 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"Level", "Question Statement"}, got.Columns)
	assert.Equal(t, Stats{Rows: 1}, st)
}

func TestTransformExistingCodeColumn(t *testing.T) {
	tbl := sheet.New("LO1", "LO1Code")
	tbl.Grow(1)

	_, _, err := Transform(tbl, codeMapping(), RowRange{3, 5})
	assert.Error(t, err)
}
