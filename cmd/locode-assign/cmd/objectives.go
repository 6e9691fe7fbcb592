package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsip/otf-locode/internal/reference"
)

// objectivesCmd represents the objectives command
var objectivesCmd = &cobra.Command{
	Use:   "objectives <file name>",
	Short: "Lists the learning objectives the LO bank records for a file name.",
	Args:  cobra.ExactArgs(1),
	RunE:  cliCmdObjectives,
}

func init() {
	rootCmd.AddCommand(objectivesCmd)
}

func cliCmdObjectives(cmd *cobra.Command, args []string) error {
	sources, bank, err := sourcesFromFlags(cmd)
	if err != nil {
		return err
	}

	wb, err := reference.Open(sources.Source(bank))
	if err != nil {
		return err
	}

	objectives := wb.Objectives(args[0])
	if len(objectives) == 0 {
		fmt.Println("No objectives listed for", args[0])
		return nil
	}
	for i, o := range objectives {
		fmt.Printf("%3d. %s\n", i+1, o)
	}
	return nil
}
