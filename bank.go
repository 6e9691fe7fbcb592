package otflocode

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nsip/otf-locode/internal/transform"
)

//
// Bank selects which learning-objective reference
// workbook a submission is matched against.
//
type Bank int

const (
	Foundational Bank = iota
	Preparatory
)

// well-known reference workbook names
const (
	DefaultFoundationalBank = "TTCA_FDT_LO_Final.xlsx"
	DefaultPreparatoryBank  = "TTCA_Prep_LO_Final.xlsx"
	DefaultTemplate         = "QTemplates.xlsx"
)

func (b Bank) String() string {
	switch b {
	case Foundational:
		return "Foundational LO"
	case Preparatory:
		return "Preparatory LO"
	default:
		return "unknown LO bank"
	}
}

//
// accepts the labels shown on the submission form
// ("Foundational LO", "Preparatory LO") as well as
// the bare words, case-insensitive
//
func ParseBank(s string) (Bank, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "foundational lo", "foundational":
		return Foundational, nil
	case "preparatory lo", "preparatory":
		return Preparatory, nil
	}
	return 0, errors.Wrapf(ErrInvalidSubmission, "unknown LO type %q", s)
}

//
// Sources locates the reference data a submission
// is processed against. Locations may be local paths
// or http(s) urls.
//
type Sources struct {
	Foundational string
	Preparatory  string
	Template     string
	// template column mapping, DefaultColumns when empty
	Columns []transform.ColumnPair
}

func DefaultSources() Sources {
	return Sources{
		Foundational: DefaultFoundationalBank,
		Preparatory:  DefaultPreparatoryBank,
		Template:     DefaultTemplate,
	}
}

// Source returns the location of the given LO bank.
func (s Sources) Source(b Bank) string {
	if b == Preparatory {
		return s.Preparatory
	}
	return s.Foundational
}

func (s Sources) columns() []transform.ColumnPair {
	if len(s.Columns) == 0 {
		return transform.DefaultColumns
	}
	return s.Columns
}
