package otflocode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type sheetRows struct {
	name string
	rows [][]interface{}
}

func buildWorkbook(t *testing.T, sheets ...sheetRows) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if s.name != "Sheet1" {
				require.NoError(t, f.SetSheetName("Sheet1", s.name))
			}
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(s.name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

var questionRows = [][]interface{}{
	{"FDT AMT question bank"},
	{"Level", "Skill", "Topic", "LO1", "LO2", "Question Type", "Question Statement"},
	{"FDT", "Coding", "Recursion", "Students will understand recursion.", "", "MCQ", "What is a base case?"},
	{"FDT", "Coding", "Loops", "students will write   loops", "photosynthesis converts light into chemical energy", "MCQ", "Which loop runs at least once?"},
	{"FDT", "Coding", "Recursion", "Students will understand recursion", "", "MCQ", "What is a call stack?"},
}

func foundationalBank(t *testing.T) []byte {
	return buildWorkbook(t,
		sheetRows{"PRINFO", [][]interface{}{
			{"File", "Objective"},
			{"FDT_7_2_10", "Students will understand recursion."},
			{"FDT_7_2_10", "Students will write loops."},
			{"FDT_7_2_11", "Students will sort arrays."},
		}},
		sheetRows{"LOCODE", [][]interface{}{
			{"Code", "Description"},
			{"C101", "Students will understand recursion."},
			{2001, "Students will write loops."},
			{"C103", "Students will sort arrays."},
		}},
	)
}

func preparatoryBank(t *testing.T) []byte {
	return buildWorkbook(t,
		sheetRows{"PRINFO", [][]interface{}{
			{"File", "Objective"},
			{"PRP_1_1_1", "Students will count to ten."},
		}},
		sheetRows{"LOCODE", [][]interface{}{
			{"Code", "Description"},
			{"P001", "Students will count to ten."},
		}},
	)
}

func templateBook(t *testing.T) []byte {
	return buildWorkbook(t, sheetRows{"Sheet1", [][]interface{}{
		{"level", "skill", "topic", "lo1", "lo2", "lo3", "lo4", "questionType", "questionStatement", "marks"},
	}})
}

// testSources writes the reference workbooks into a temp dir.
func testSources(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()
	return Sources{
		Foundational: writeFile(t, dir, DefaultFoundationalBank, foundationalBank(t)),
		Preparatory:  writeFile(t, dir, DefaultPreparatoryBank, preparatoryBank(t)),
		Template:     writeFile(t, dir, DefaultTemplate, templateBook(t)),
	}
}
