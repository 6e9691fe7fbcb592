package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	otflocode "github.com/nsip/otf-locode"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "locode-assign",
	Short: "Tags exam question spreadsheets with learning objective codes.",
	Long: `locode-assign runs the same pipeline as the otf-locode service against local files:
the learning objectives of each question are matched to LO codes from an LO bank and the
tagged questions are written into the question template.`,
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("bank", "b", "foundational", "LO bank to match against (foundational|preparatory)")
	rootCmd.PersistentFlags().String("foundational", otflocode.DefaultFoundationalBank, "path or url of the Foundational LO bank workbook")
	rootCmd.PersistentFlags().String("preparatory", otflocode.DefaultPreparatoryBank, "path or url of the Preparatory LO bank workbook")
}

// sourcesFromFlags reads the reference data locations shared by all commands.
func sourcesFromFlags(cmd *cobra.Command) (otflocode.Sources, otflocode.Bank, error) {
	sources := otflocode.DefaultSources()

	bankName, err := cmd.Flags().GetString("bank")
	if err != nil {
		return sources, 0, err
	}
	bank, err := otflocode.ParseBank(bankName)
	if err != nil {
		return sources, 0, err
	}

	if sources.Foundational, err = cmd.Flags().GetString("foundational"); err != nil {
		return sources, 0, err
	}
	if sources.Preparatory, err = cmd.Flags().GetString("preparatory"); err != nil {
		return sources, 0, err
	}

	return sources, bank, nil
}
