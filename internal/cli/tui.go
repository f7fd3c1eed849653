package cli

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ytget/intune-dash/internal/tui"
)

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.newRunner()
			if err != nil {
				return err
			}
			defer svc.Shutdown(context.Background())

			m := tui.NewModel(svc, e.newGenerator(), tui.Options{
				DeviceCount:  e.settings.GetDeviceCount(),
				ChartRefresh: e.settings.GetChartRefresh(),
			})

			// The alternate screen owns the terminal; log lines would tear it
			log.SetOutput(io.Discard)
			defer log.SetOutput(cmd.ErrOrStderr())

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return nil
		},
	}
}
