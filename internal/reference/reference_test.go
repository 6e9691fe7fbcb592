package reference

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	infoRows = [][]string{
		{"File", "Objective"},
		{"FDT_7_2_10", "Students will understand recursion."},
		{"FDT_7_2_10", ""},
		{"FDT_7_2_11", "Students will write loops."},
		{"FDT_7_2_10", "Students will trace a call stack."},
	}
	codeRows = [][]string{
		{"Code", "Description"},
		{"C101", "Students will understand recursion."},
		{"C102", "Students   will write loops"},
		{"C103", ""},
		{"C104", "students will understand RECURSION"},
	}
)

func writeWorkbook(t *testing.T, path string, sheets map[string][][]string, order ...string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := make([]interface{}, len(row))
			for c, v := range row {
				values[c] = v
			}
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func bankPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TTCA_FDT_LO_Final.xlsx")
	writeWorkbook(t, path, map[string][][]string{
		InfoSheet: infoRows,
		CodeSheet: codeRows,
	}, InfoSheet, CodeSheet)
	return path
}

func TestOpenObjectives(t *testing.T) {
	w, err := Open(bankPath(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Students will understand recursion.",
		"Students will trace a call stack.",
	}, w.Objectives("FDT_7_2_10"))
	assert.Empty(t, w.Objectives("FDT_9_9_9"))
}

func TestOpenMapping(t *testing.T) {
	w, err := Open(bankPath(t))
	require.NoError(t, err)

	m := w.Mapping()
	assert.Equal(t, []string{
		"students will understand recursion",
		"students will write loops",
	}, m.Keys())

	code, ok := m.Code("students will understand recursion")
	require.True(t, ok)
	assert.Equal(t, "C104", code)
}

func TestOpenMissingSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.xlsx")
	writeWorkbook(t, path, map[string][][]string{
		"Other": {{"a", "b"}},
	}, "Other")

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSheet)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 2)
}

func TestOpenShortSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.xlsx")
	writeWorkbook(t, path, map[string][][]string{
		InfoSheet: infoRows,
		CodeSheet: {{"Code"}, {"C101"}},
	}, InfoSheet, CodeSheet)

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrShortSheet)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestOpenRemote(t *testing.T) {
	data, err := os.ReadFile(bankPath(t))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/banks/fdt.xlsx" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	w, err := Open(srv.URL + "/banks/fdt.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, w.Mapping().Len())

	_, err = Open(srv.URL + "/banks/missing.xlsx")
	assert.Error(t, err)
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "QTemplates.xlsx")
	writeWorkbook(t, path, map[string][][]string{
		"Template": {{"level", "skill", "lo1", "notes"}},
	}, "Template")

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"level", "skill", "lo1", "notes"}, tmpl.Columns)
	assert.Zero(t, tmpl.Len())
}
