package transform

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/nsip/otf-locode/internal/sheet"
)

// Sentinel fills every template cell left without a value.
const Sentinel = "NA"

// ColumnPair copies the Source column of the tagged question table into
// the Target column of the template.
type ColumnPair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// DefaultColumns is the question bank to template column mapping.
var DefaultColumns = []ColumnPair{
	{"Level", "level"},
	{"Skill", "skill"},
	{"Topic", "topic"},
	{"LO1Code", "lo1"},
	{"LO2Code", "lo2"},
	{"LO3Code", "lo3"},
	{"LO4Code", "lo4"},
	{"Question Type", "questionType"},
	{"Question Statement", "questionStatement"},
	{"Complexity Level", "complexityLevel"},
	{"Difficulty Level Tag (Auto Populated- Do not Edit)", "difficultyLevel"},
	{"Correct Answer (option keyin capital e.g. A )", "correctAnswer"},
	{"Answer Explanation", "answerExplanation"},
	{"Bloom's Taxonomy", "bloomsTaxonomy"},
	{"optionKey1", "optionKey1"},
	{"optionKey2", "optionKey2"},
	{"optionKey3", "optionKey3"},
	{"optionKey4", "optionKey4"},
	{"optionValue1", "optionValue1"},
	{"optionValue2", "optionValue2"},
	{"optionValue3", "optionValue3"},
	{"optionValue4", "optionValue4"},
}

// LoadColumnMapping reads a column mapping file, see ParseColumnMapping.
func LoadColumnMapping(path string) ([]ColumnPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read column mapping")
	}
	return ParseColumnMapping(data)
}

// ParseColumnMapping reads a json document of the form
//
//	{"columns": {"Level": "level", "LO1Code": "lo1"}}
//
// keeping the order the pairs are written in.
func ParseColumnMapping(data []byte) ([]ColumnPair, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("column mapping is not valid json")
	}

	cols := gjson.GetBytes(data, "columns")
	if !cols.IsObject() {
		return nil, errors.New("column mapping needs a \"columns\" object")
	}

	var pairs []ColumnPair
	var bad error
	cols.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String || value.String() == "" {
			bad = errors.Errorf("column %q must map to a template column name", key.String())
			return false
		}
		pairs = append(pairs, ColumnPair{Source: key.String(), Target: value.String()})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if len(pairs) == 0 {
		return nil, errors.New("column mapping is empty")
	}

	return pairs, nil
}

// Fill copies the mapped columns of processed into a copy of template and
// replaces every empty cell with Sentinel. Values are aligned by row
// position. A template without rows takes the row count of processed as
// soon as one pair applies; otherwise the template keeps its own rows.
// Pairs whose source or target column is absent are skipped.
func Fill(processed, template *sheet.Table, pairs []ColumnPair) *sheet.Table {
	out := template.Clone()

	for _, p := range pairs {
		src := processed.Index(p.Source)
		dst := out.Index(p.Target)
		if src < 0 || dst < 0 {
			continue
		}
		if len(template.Rows) == 0 && out.Len() == 0 {
			out.Grow(processed.Len())
		}
		for i := range out.Rows {
			v := ""
			if i < processed.Len() {
				v = processed.Rows[i][src]
			}
			out.Rows[i][dst] = v
		}
	}

	for _, r := range out.Rows {
		for j, v := range r {
			if v == "" {
				r[j] = Sentinel
			}
		}
	}

	return out
}

// OutputName is the file name the processed template is saved under.
func OutputName(fileName string) string {
	return fileName + "_Processed.xlsx"
}
