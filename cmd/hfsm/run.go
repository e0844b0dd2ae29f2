package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/internal/presentation/tui"
	"github.com/aretw0/hfsm/pkg/events"
	"github.com/aretw0/hfsm/pkg/runner"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <definition>",
	Short: "Drive a machine and print its events",
	Long: `Compiles the definition, enables the machine and updates it on a fixed interval.
Each line read from stdin is queued as a trigger. With --ticks the machine is updated
that many times without waiting and the command exits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := settings(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("interval") {
			cfg.Interval, _ = cmd.Flags().GetDuration("interval")
		}
		ticks, _ := cmd.Flags().GetInt("ticks")
		queued, _ := cmd.Flags().GetStringSlice("trigger")
		quiet, _ := cmd.Flags().GetBool("quiet")

		def, err := loadDefinition(cmd, args[0])
		if err != nil {
			return err
		}
		// The event log only records while debug logging is on.
		if def.Behaviour == nil {
			def.Behaviour = &dto.Behaviour{}
		}
		debug := true
		def.Behaviour.Debug = &debug

		eng := engine(cmd, cfg, logger)
		c, err := eng.Compile(def)
		if err != nil {
			return err
		}

		persist, closeSinks := sinks(cfg, logger)
		defer closeSinks()

		interactive := isTerminal(os.Stdin)
		if interactive && ticks == 0 {
			tui.PrintBanner(os.Stdout)
		}

		f := tui.NewEventFormatter(isTerminal(os.Stdout))
		d := eng.Drive(c,
			runner.WithInterval(cfg.Interval),
			runner.WithSinks(persist...),
			runner.WithObserver(func(_ uint64, entries []events.Entry) {
				if quiet {
					return
				}
				for _, e := range entries {
					fmt.Println(f.Format(e))
				}
			}),
		)
		defer d.Close()

		for _, name := range queued {
			if err := d.Trigger(name); err != nil {
				return err
			}
		}

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()
		ctx := sm.Context()

		if ticks > 0 {
			return step(ctx, d, ticks)
		}

		if interactive {
			fmt.Printf("Triggers: %s (type a name and press enter, Ctrl+C to stop)\n", strings.Join(d.Triggers(), ", "))
		}
		go readTriggers(ctx, os.Stdin, d)

		if err := d.Run(ctx); err != nil {
			return err
		}
		fmt.Printf("Stopped in %s after %d ticks\n", pathOf(d), tickOf(d))
		return nil
	},
}

// step updates the machine n times back to back.
func step(ctx context.Context, d *runner.Driver, n int) error {
	if err := d.Start(); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := d.Tick(ctx); err != nil {
			return err
		}
	}
	fmt.Printf("Stopped in %s after %d ticks\n", pathOf(d), tickOf(d))
	return nil
}

func readTriggers(ctx context.Context, r io.Reader, d *runner.Driver) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if err := d.Trigger(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Duration("interval", 0, "Tick interval; overrides HFSM_INTERVAL")
	runCmd.Flags().Int("ticks", 0, "Update this many times without waiting, then exit")
	runCmd.Flags().StringSlice("trigger", nil, "Trigger to queue before the first tick (repeatable)")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print events")
}
