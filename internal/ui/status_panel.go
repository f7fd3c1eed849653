package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/intune-dash/internal/model"
)

// StatusPanel shows the progress bar of the current action and the status
// line below it. Callers must be on the UI thread.
type StatusPanel struct {
	progress  *widget.ProgressBar
	label     *canvas.Text
	cancelBtn *widget.Button
	container *fyne.Container

	taskID   string
	onCancel func(taskID string)
}

// NewStatusPanel creates the panel in its ready state
func NewStatusPanel(ready string, onCancel func(taskID string)) *StatusPanel {
	sp := &StatusPanel{onCancel: onCancel}

	sp.progress = widget.NewProgressBar()
	sp.progress.Min = 0
	sp.progress.Max = 1
	sp.progress.TextFormatter = func() string { return "" }

	sp.label = canvas.NewText(ready, ColorMutedText)
	sp.label.TextSize = StatusTextSize
	sp.label.Alignment = fyne.TextAlignCenter

	sp.cancelBtn = widget.NewButton(IconClose, func() {
		if sp.taskID != "" && sp.onCancel != nil {
			sp.onCancel(sp.taskID)
		}
	})
	sp.cancelBtn.Importance = widget.LowImportance
	sp.cancelBtn.Hide()

	spacer := canvas.NewRectangle(ColorBackground)
	spacer.SetMinSize(fyne.NewSize(ProgressBarWidth, 0))
	bar := container.NewBorder(nil, nil, nil, sp.cancelBtn, container.NewStack(spacer, sp.progress))

	sp.container = container.NewVBox(container.NewCenter(bar), sp.label)
	return sp
}

// Container returns the panel layout
func (sp *StatusPanel) Container() *fyne.Container {
	return sp.container
}

// Text returns the status line
func (sp *StatusPanel) Text() string {
	return sp.label.Text
}

// Value returns the progress bar fraction
func (sp *StatusPanel) Value() float64 {
	return sp.progress.Value
}

// CancelVisible reports whether the cancel button is shown
func (sp *StatusPanel) CancelVisible() bool {
	return sp.cancelBtn.Visible()
}

// ShowTask renders one task snapshot. The bar and the cancel button follow
// the running task; snapshots of other tasks (queued, or finished while
// another one already runs) only replace the status line.
func (sp *StatusPanel) ShowTask(task model.SimulatedTask, localization *Localization) {
	label := localization.Phrase(task.Label)
	owned := sp.taskID == "" || sp.taskID == task.ID

	switch task.Status {
	case model.TaskStatusPending:
		sp.setText(localization.Format(KeyTaskQueued, label))
	case model.TaskStatusRunning:
		sp.taskID = task.ID
		sp.progress.SetValue(task.Progress)
		sp.setText(localization.Format(KeyTaskProcessing, label))
		sp.cancelBtn.Show()
	case model.TaskStatusCompleted:
		if owned {
			sp.finishTask(task.ID)
			sp.progress.SetValue(1)
		}
		sp.setText(localization.Format(KeyTaskCompleted, label))
	case model.TaskStatusCancelled:
		if owned {
			sp.finishTask(task.ID)
			sp.progress.SetValue(0)
		}
		sp.setText(localization.Format(KeyTaskCancelled, label))
	}
}

// ShowNotice replaces the status line without touching the progress bar
func (sp *StatusPanel) ShowNotice(text string) {
	sp.setText(text)
}

// Reset returns to the idle state
func (sp *StatusPanel) Reset(ready string) {
	sp.taskID = ""
	sp.cancelBtn.Hide()
	sp.progress.SetValue(0)
	sp.setText(ready)
}

func (sp *StatusPanel) finishTask(id string) {
	if sp.taskID == id {
		sp.taskID = ""
		sp.cancelBtn.Hide()
	}
}

func (sp *StatusPanel) setText(text string) {
	sp.label.Text = text
	sp.label.Refresh()
}
