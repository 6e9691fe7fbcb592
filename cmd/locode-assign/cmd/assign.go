package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	otflocode "github.com/nsip/otf-locode"
	"github.com/nsip/otf-locode/internal/transform"
)

// assignCmd represents the assign command
var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Tags the given question spreadsheet and writes <name>_Processed.xlsx.",
	Long: `The assign command reads the question spreadsheet (header on the second row), adds an
LOxCode column after every LO column, fills the codes for the questions in --range and writes
the filled template to the output folder.`,
	RunE: cliCmdAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
	assignCmd.Flags().StringP("file", "f", "", "Path to the question spreadsheet")
	assignCmd.Flags().StringP("name", "n", "", "File name key, Level_Course_Module_SubUnit (e.g. FDT_7_2_10)")
	assignCmd.Flags().StringP("range", "r", "", "Rows holding the questions (e.g. 3-38)")
	assignCmd.Flags().StringP("template", "t", otflocode.DefaultTemplate, "path or url of the question template workbook")
	assignCmd.Flags().StringP("columns", "c", "", "json file overriding the template column mapping")
	assignCmd.Flags().StringP("out", "o", ".", "Folder to write the processed workbook to")
	assignCmd.MarkFlagRequired("file")
	assignCmd.MarkFlagRequired("name")
	assignCmd.MarkFlagRequired("range")
}

func cliCmdAssign(cmd *cobra.Command, args []string) error {
	sources, bank, err := sourcesFromFlags(cmd)
	if err != nil {
		return err
	}

	file, _ := cmd.Flags().GetString("file")
	name, _ := cmd.Flags().GetString("name")
	questionRange, _ := cmd.Flags().GetString("range")
	out, _ := cmd.Flags().GetString("out")

	if sources.Template, err = cmd.Flags().GetString("template"); err != nil {
		return err
	}
	if columns, _ := cmd.Flags().GetString("columns"); columns != "" {
		if sources.Columns, err = transform.LoadColumnMapping(columns); err != nil {
			return err
		}
	}

	questions, err := os.Open(file)
	if err != nil {
		return err
	}
	defer questions.Close()

	outcome, err := otflocode.Process(sources, otflocode.Submission{
		Bank:          bank,
		FileName:      name,
		QuestionRange: questionRange,
		Questions:     questions,
	})
	if err != nil {
		return err
	}

	path, err := outcome.Save(out)
	if err != nil {
		return err
	}

	fmt.Println("Processed", name, "against", bank)
	fmt.Println("   Rows tagged:", outcome.Stats.Rows)
	fmt.Println("   Matched:    ", outcome.Stats.Matched)
	fmt.Println("   Unmatched:  ", outcome.Stats.Unmatched)
	fmt.Println("   Written to: ", path)
	return nil
}
