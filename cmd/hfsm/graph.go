package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/hfsm/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <definition>",
	Short: "Export the machine graph visualization",
	Long:  `Compiles the definition and outputs a Mermaid diagram (graph TD) of its states and transitions, nested machines included.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := settings(cmd)
		if err != nil {
			return err
		}

		c, err := engine(cmd, cfg, logger).Load(args[0])
		if err != nil {
			return err
		}
		defer c.Machine.Destroy()

		fmt.Print(graph.GenerateMermaid(c.Machine, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
