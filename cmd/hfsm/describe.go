package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/hfsm/internal/presentation/tui"
)

var describeCmd = &cobra.Command{
	Use:   "describe <definition>",
	Short: "Summarize a machine as markdown",
	Long:  `Compiles the definition and prints its states, transitions and triggers. Output is styled when stdout is a terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := settings(cmd)
		if err != nil {
			return err
		}

		def, err := loadDefinition(cmd, args[0])
		if err != nil {
			return err
		}
		c, err := engine(cmd, cfg, logger).Compile(def)
		if err != nil {
			return err
		}
		defer c.Machine.Destroy()

		md := tui.Describe(c.Machine, def.Description)
		if triggers := c.Triggers(); len(triggers) > 0 {
			md += "Triggers:"
			for _, t := range triggers {
				md += " `" + t + "`"
			}
			md += "\n"
		}

		raw, _ := cmd.Flags().GetBool("raw")
		if raw || !isTerminal(os.Stdout) {
			fmt.Print(md)
			return nil
		}

		out, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print markdown without styling")
}
