package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/hfsm/internal/presentation/tui"
	"github.com/aretw0/hfsm/pkg/adapters/file"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect recorded machine events",
	Long:  `List and print events stored by HFSM_EVENTS_DIR (JSON lines) or HFSM_REDIS_ADDR (streams).`,
}

var eventsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List machines with recorded events (file storage)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := settings(cmd)
		if err != nil {
			return err
		}

		ids, err := file.NewSink(cfg.EventsDir).Machines()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No recorded machines found.")
			return nil
		}

		fmt.Println("Recorded Machines:")
		for _, id := range ids {
			fmt.Println("- " + id)
		}
		return nil
	},
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <machine-id>",
	Short: "Print the events recorded for a machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := settings(cmd)
		if err != nil {
			return err
		}

		r, closeReader := reader(cfg)
		defer closeReader()

		entries, err := r.Read(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to read events for '%s': %w", args[0], err)
		}

		f := tui.NewEventFormatter(isTerminal(os.Stdout))
		for _, e := range entries {
			fmt.Println(f.Format(e))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsLsCmd)
	eventsCmd.AddCommand(eventsShowCmd)
}
