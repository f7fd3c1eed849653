package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/intune-dash/internal/model"
	"github.com/ytget/intune-dash/internal/runner"
)

const progressBarWidth = 40

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen, color.Bold)
	red   = color.New(color.FgRed)
)

func newRunCmd(e *env) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "run [action...]",
		Short: "Run console actions without a window",
		Long: `Run one or more simulated console actions with a terminal progress bar.

Actions: autopilot, policies, compliance, report. Labels such as
"Autopilot Sync" are accepted as well.`,
		ValidArgs: []string{
			model.ActionAutopilotSync,
			model.ActionApplyPolicies,
			model.ActionCheckCompliance,
			model.ActionGenerateReport,
		},
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("--all does not take action names")
			}
			if !all && len(args) == 0 {
				return fmt.Errorf("name an action or pass --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := selectActions(model.Actions(e.settings.GetFleet()), args, all)
			if err != nil {
				return err
			}

			svc, err := e.newRunner()
			if err != nil {
				return err
			}
			defer svc.Shutdown(context.Background())

			out := cmd.OutOrStdout()
			for _, action := range actions {
				if err := runAction(cmd.Context(), svc, action, out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "run every action one after another")
	return cmd
}

// selectActions resolves action names in argument order
func selectActions(catalog []model.Action, names []string, all bool) ([]model.Action, error) {
	if all {
		return catalog, nil
	}

	selected := make([]model.Action, 0, len(names))
	for _, name := range names {
		action, ok := model.FindAction(catalog, name)
		if !ok {
			keys := make([]string, len(catalog))
			for i, a := range catalog {
				keys[i] = a.Key
			}
			return nil, fmt.Errorf("unknown action %q (available: %s)", name, strings.Join(keys, ", "))
		}
		selected = append(selected, action)
	}
	return selected, nil
}

// runAction runs one action to completion while drawing its progress bar
func runAction(ctx context.Context, svc runner.TaskRunner, action model.Action, w io.Writer) error {
	handle, err := svc.Start(ctx, action.Label, runner.WithCompletion(func() {
		log.Debug("action completed", "action", action.Key)
	}))
	if err != nil {
		return fmt.Errorf("starting %s: %w", action.Label, err)
	}

	pending := model.SimulatedTask{Label: action.Label}
	bar := progressbar.NewOptions(model.MaxProgressPercent,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(pending.ProcessingText()),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(!color.NoColor),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for percent := range handle.Progress() {
			_ = bar.Set(percent)
		}
		return nil
	})

	g.Go(func() error {
		_, err := handle.Wait(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintln(w)
		red.Fprintf(w, "✗ %s stopped: %v\n", action.Label, err)
		return fmt.Errorf("%s: %w", action.Label, err)
	}

	_ = bar.Finish()
	fmt.Fprintln(w)
	res, _ := handle.Result()
	green.Fprintf(w, "✓ %s (%s)\n", res.Task.CompletedText(), res.Task.Elapsed().Round(time.Millisecond))
	bold.Fprintf(w, "  %s: ", action.SuccessTitle)
	fmt.Fprintln(w, action.SuccessMessage)
	return nil
}
