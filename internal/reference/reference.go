// Package reference loads the LO bank workbook (objective lists per file
// name and the description to code table) and the output template.
package reference

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/nsip/otf-locode/internal/matcher"
	"github.com/nsip/otf-locode/internal/sheet"
	"github.com/nsip/otf-locode/internal/util"
)

// Sheet names expected in an LO bank workbook.
const (
	InfoSheet = "PRINFO"
	CodeSheet = "LOCODE"
)

var (
	// ErrMissingSheet is returned when the bank lacks a required sheet.
	ErrMissingSheet = errors.New("reference sheet not found")
	// ErrShortSheet is returned when a bank sheet has fewer than two columns.
	ErrShortSheet = errors.New("reference sheet needs at least two columns")
)

// Workbook is a loaded LO bank.
type Workbook struct {
	// file name key => objective descriptions, in sheet order
	info *sheet.Table
	// code, description rows
	codes *sheet.Table
}

// Open reads an LO bank from a local path or an http(s) url. Every
// problem with the two sheets is reported in the returned error.
func Open(src string) (*Workbook, error) {
	f, err := openWorkbook(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return FromFile(f)
}

// FromFile reads an LO bank from an already opened workbook.
func FromFile(f *excelize.File) (*Workbook, error) {
	var errs *multierror.Error

	info, err := readSheet(f, InfoSheet)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	codes, err := readSheet(f, CodeSheet)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Workbook{info: info, codes: codes}, nil
}

func readSheet(f *excelize.File, name string) (*sheet.Table, error) {
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, errors.Wrapf(ErrMissingSheet, "sheet %q", name)
	}
	t, err := sheet.Read(f, name, 0)
	if err != nil {
		return nil, err
	}
	if len(t.Columns) < 2 {
		return nil, errors.Wrapf(ErrShortSheet, "sheet %q has %d", name, len(t.Columns))
	}
	return t, nil
}

// Objectives lists the non-empty descriptions recorded for fileName.
// An unknown file name gives an empty list.
func (w *Workbook) Objectives(fileName string) []string {
	var out []string
	for _, r := range w.info.Rows {
		if r[0] == fileName && r[1] != "" {
			out = append(out, r[1])
		}
	}
	return out
}

// Mapping builds the normalized description => code lookup. Rows without
// a description are skipped; a later duplicate description overrides the
// code of an earlier one.
func (w *Workbook) Mapping() *matcher.Mapping {
	m := matcher.NewMapping()
	for _, r := range w.codes.Rows {
		if strings.TrimSpace(r[1]) == "" {
			continue
		}
		m.Add(r[1], r[0])
	}
	return m
}

// LoadTemplate reads the first sheet of the template workbook, header on
// the first row.
func LoadTemplate(src string) (*sheet.Table, error) {
	f, err := openWorkbook(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := sheet.ReadFirst(f, 0)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read template")
	}
	return t, nil
}

func openWorkbook(src string) (*excelize.File, error) {
	if isRemote(src) {
		data, err := util.Fetch(src, map[string]string{
			"Accept": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		})
		if err != nil {
			return nil, err
		}
		return sheet.OpenReader(bytes.NewReader(data))
	}

	r, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open reference workbook")
	}
	defer r.Close()

	f, err := sheet.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("reading %s", src))
	}
	return f, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
