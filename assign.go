package otflocode

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nsip/otf-locode/internal/reference"
	"github.com/nsip/otf-locode/internal/sheet"
	"github.com/nsip/otf-locode/internal/transform"
	"github.com/nsip/otf-locode/internal/util"
)

// header of an uploaded question sheet is on its second row
const QuestionHeaderRow = 1

var ErrInvalidSubmission = errors.New("invalid submission")

//
// one form submission
//
type Submission struct {
	Bank Bank
	// Level_Course_Module_SubUnit key, e.g. FDT_7_2_10
	FileName string
	// "start-end" spreadsheet rows to tag, e.g. 3-38
	QuestionRange string
	// the uploaded question workbook
	Questions io.Reader
}

//
// everything produced by one submission
//
type Outcome struct {
	FileName string
	Bank     Bank
	// objectives the LO bank lists for FileName; informational
	Objectives []string
	// question table with the LOxCode columns added
	Processed *sheet.Table
	// template filled from Processed
	Output *sheet.Table
	Stats  transform.Stats
}

//
// run a submission through the pipeline:
// load reference data, tag the question table,
// fill the template.
//
// Matching always searches the whole LO bank; the objectives
// listed for the file name are reported but do not narrow it.
//
func Process(src Sources, sub Submission) (*Outcome, error) {

	defer util.TimeTrack(time.Now(), "process "+sub.FileName)

	if err := validateFileName(sub.FileName); err != nil {
		return nil, err
	}
	if sub.Questions == nil {
		return nil, errors.Wrap(ErrInvalidSubmission, "no question workbook supplied")
	}

	rr, err := transform.ParseRowRange(sub.QuestionRange)
	if err != nil {
		return nil, err
	}

	bank, err := reference.Open(src.Source(sub.Bank))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load %s", sub.Bank)
	}

	tmpl, err := reference.LoadTemplate(src.Template)
	if err != nil {
		return nil, err
	}

	f, err := sheet.OpenReader(sub.Questions)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSubmission, err.Error())
	}
	defer f.Close()

	questions, err := sheet.ReadFirst(f, QuestionHeaderRow)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSubmission, err.Error())
	}

	processed, stats, err := transform.Transform(questions, bank.Mapping(), rr)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		FileName:   sub.FileName,
		Bank:       sub.Bank,
		Objectives: bank.Objectives(sub.FileName),
		Processed:  processed,
		Output:     transform.Fill(processed, tmpl, src.columns()),
		Stats:      stats,
	}, nil
}

//
// writes the filled template as <FileName>_Processed.xlsx
// in dir and returns its path
//
func (o *Outcome) Save(dir string) (string, error) {
	path := filepath.Join(dir, transform.OutputName(o.FileName))
	if err := sheet.WriteFile(o.Output, path); err != nil {
		return "", err
	}
	return path, nil
}

//
// the file name ends up in the output file name,
// so it must not be able to point anywhere else
//
func validateFileName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Wrap(ErrInvalidSubmission, "file name is required")
	case strings.ContainsAny(name, `/\`), name == ".", name == "..":
		return errors.Wrapf(ErrInvalidSubmission, "file name %q must not contain a path", name)
	}
	return nil
}
