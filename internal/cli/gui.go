package cli

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/ytget/intune-dash/internal/config"
	"github.com/ytget/intune-dash/internal/runner"
	"github.com/ytget/intune-dash/internal/sample"
	"github.com/ytget/intune-dash/internal/ui"
)

const AppID = "com.ytget.intune-dash"

// runGUI opens the desktop dashboard and blocks until the window closes
func runGUI(ctx context.Context, settings *config.Settings, svc runner.TaskRunner, generator *sample.Generator, version string) error {
	log.Info("starting desktop dashboard", "version", version, "seed", generator.Seed())

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewDashboardTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	width, height := settings.GetWindowSize()
	myWindow.Resize(fyne.NewSize(float32(width), float32(height)))

	dashboard := ui.NewDashboard(myWindow, myApp, svc, settings, generator)

	// Ctrl+C in the launching terminal closes the window like the close button
	stop := context.AfterFunc(ctx, func() {
		fyne.Do(myApp.Quit)
	})
	defer stop()

	myWindow.ShowAndRun()
	dashboard.Close()
	return nil
}
