package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

// setupLogging configures the package-level logger
func setupLogging(w io.Writer, level string, noColor bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		color.NoColor = true
	}

	styles := log.DefaultStyles()
	styles.Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#0078d4")).
		Bold(true)
	styles.Separator = lipgloss.NewStyle()

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "intune-dash",
	})
	logger.SetStyles(styles)
	if noColor {
		logger.SetColorProfile(termenv.Ascii)
	}

	log.SetDefault(logger)
	return nil
}
