package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/intune-dash/internal/model"
	"github.com/ytget/intune-dash/internal/runner"
)

type taskProgressMsg struct {
	TaskId  string
	Percent int
}

type taskFinishedMsg struct {
	TaskId string
	Action model.Action
	Result runner.Result
}

type chartTickMsg time.Time

// waitForProgress turns the next event of handle into a message. Progress
// events come first; once the channel is closed the final result follows.
func waitForProgress(handle *runner.Handle, action model.Action) tea.Cmd {
	return func() tea.Msg {
		if percent, ok := <-handle.Progress(); ok {
			return taskProgressMsg{TaskId: handle.ID(), Percent: percent}
		}
		res, _ := handle.Wait(context.Background())
		return taskFinishedMsg{TaskId: handle.ID(), Action: action, Result: res}
	}
}

func chartTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return chartTickMsg(t)
	})
}
