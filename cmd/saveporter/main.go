package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"saveporter/internal/app"
	"saveporter/internal/selectui"
)

type ExitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, selectui.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Operation cancelled by user.")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		if ex, ok := err.(ExitCoder); ok {
			os.Exit(ex.ExitCode())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var steamPath string
	var dryRun bool
	var fixDLC bool
	var listMode bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:           "saveporter",
		Short:         "Convert Xbox Game Pass saves for Rogue Trader to the Steam format",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := os.Stdout
			if jsonOutput {
				// Keep stdout clean for the JSON payload.
				out = os.Stderr
			}
			svc, err := app.New(app.Options{
				ConfigPath: configPath,
				SteamPath:  steamPath,
				Out:        out,
			})
			if err != nil {
				return err
			}
			if listMode {
				return runInteractive(cmd.Context(), svc, jsonOutput, os.Stdin, out, app.ConvertOptions{DryRun: dryRun, FixDLC: fixDLC})
			}
			res, err := svc.ConvertLatest(cmd.Context(), app.ConvertOptions{DryRun: dryRun, FixDLC: fixDLC})
			if err != nil {
				return err
			}
			if res.DryRun {
				return print(jsonOutput, res, "Dry run complete; no files copied to the Steam save directory.")
			}
			return print(jsonOutput, res, "Conversion completed successfully. You can now load the save in the Steam version.")
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.Flags().StringVarP(&steamPath, "steam-path", "s", "", "custom Steam save directory")
	cmd.Flags().BoolVar(&dryRun, "dryrun", false, "convert but keep the result in the scratch directory")
	cmd.Flags().BoolVar(&fixDLC, "fix-dlc", false, "remove DLC entitlement records from the save")
	cmd.Flags().BoolVarP(&listMode, "list", "l", false, "list all containers and select interactively")

	cmd.AddCommand(newVersionCmd(&jsonOutput))
	return cmd
}

// runInteractive drives the selection UI. All human-facing output goes to
// out, which the caller points at stderr in JSON mode so that stdout carries
// only the report payload.
func runInteractive(ctx context.Context, svc *app.Service, jsonOutput bool, in io.Reader, out io.Writer, opts app.ConvertOptions) error {
	containers, err := svc.Discover()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d save container(s):\n\n", len(containers))
	selectui.RenderTable(out, containers)
	fmt.Fprintln(out)

	prompter := selectui.NewPrompter(in, out)
	indices, err := prompter.SelectIndices(ctx, len(containers))
	if err != nil {
		return err
	}
	picked := containers[:0:0]
	for _, idx := range indices {
		picked = append(picked, containers[idx-1])
	}

	proceed, err := prompter.Confirm(ctx, fmt.Sprintf("Convert %d save(s)?", len(picked)), true)
	if err != nil {
		return err
	}
	if !proceed {
		return fmt.Errorf("SEL_DECLINED: %w", selectui.ErrCancelled)
	}
	opts.FixDLC, err = prompter.Confirm(ctx, "Apply the DLC fix?", opts.FixDLC)
	if err != nil {
		return err
	}
	opts.DryRun, err = prompter.Confirm(ctx, "Dry run (skip copying to Steam)?", opts.DryRun)
	if err != nil {
		return err
	}

	report, err := svc.ConvertBatch(ctx, picked, opts)
	if err != nil {
		return err
	}
	if jsonOutput {
		if err := print(true, report, ""); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "\nConverted %d of %d save(s).\n", len(report.Converted), len(picked))
		for _, f := range report.Failed {
			fmt.Fprintf(out, "  failed %s: %s\n", f.Container, f.Err)
		}
	}
	if !report.OK() {
		return &exitError{code: 1, msg: "BATCH_FAILED: no containers converted"}
	}
	return nil
}

func print(jsonOutput bool, payload any, message string) error {
	if jsonOutput {
		blob, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(blob))
		return nil
	}
	if message != "" {
		fmt.Println(message)
	}
	return nil
}
