package sheet

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used when writing a table.
const DefaultSheet = "Sheet1"

// OpenReader opens a workbook from r. The caller closes it.
func OpenReader(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open workbook")
	}
	return f, nil
}

// Read loads the named sheet with its header at headerRow (0-based).
// A missing sheet yields an excelize.ErrSheetNotExist in the error chain.
func Read(f *excelize.File, name string, headerRow int) (*Table, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read sheet %q", name)
	}
	return FromRows(rows, headerRow), nil
}

// ReadFirst loads the first sheet of the workbook.
func ReadFirst(f *excelize.File, headerRow int) (*Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return Read(f, sheets[0], headerRow)
}

// Workbook renders the table into a new workbook: header on row 1, data
// from row 2. Cells holding a canonical number are written as numbers.
func (t *Table) Workbook(name string) (*excelize.File, error) {
	f := excelize.NewFile()
	if name != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, name); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "cannot name output sheet")
		}
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "cannot write header")
	}

	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := make([]interface{}, len(r))
		for j, v := range r {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "cannot write row %d", i+2)
		}
	}

	return f, nil
}

func cellValue(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return n
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(x, 'f', -1, 64) == s {
		return x
	}
	return s
}

// WriteFile saves the table as a single-sheet workbook at path. The file
// is written under a temporary name in the same directory and renamed
// into place, so path only ever holds a complete workbook.
func WriteFile(t *Table, path string) (err error) {
	f, err := t.Workbook(DefaultSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".locode-*.xlsx")
	if err != nil {
		return errors.Wrap(err, "cannot create output file")
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = f.Write(tmp); err != nil {
		tmp.Close()
		return errors.Wrap(err, "cannot write output file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "cannot close output file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "cannot move output file into place")
	}
	return nil
}
