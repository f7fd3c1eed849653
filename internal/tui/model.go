package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ytget/intune-dash/internal/model"
	"github.com/ytget/intune-dash/internal/runner"
	"github.com/ytget/intune-dash/internal/sample"
)

const (
	appTitle       = "Intune Deployment & Policy Automation Dashboard"
	readyText      = "Ready"
	busyText       = "Another action is still running, please wait"
	tableHeight    = 10
	progressWidth  = 60
	cancelledLabel = "cancelled"

	defaultDeviceCount  = 15
	defaultChartRefresh = 4 * time.Second
)

// Options configures the terminal dashboard
type Options struct {
	DeviceCount  int
	ChartRefresh time.Duration
}

type Model struct {
	runner    runner.TaskRunner
	generator *sample.Generator
	actions   []model.Action
	options   Options

	table      table.Model
	spinner    spinner.Model
	progress   progress.Model
	compliance model.ComplianceSample
	details    *model.DeviceDetails

	current       *runner.Handle
	currentAction model.Action
	percent       int
	status        string
	notice        string
	quitting      bool
}

func NewModel(svc runner.TaskRunner, generator *sample.Generator, opts Options) Model {
	if opts.DeviceCount <= 0 {
		opts.DeviceCount = defaultDeviceCount
	}
	if opts.ChartRefresh <= 0 {
		opts.ChartRefresh = defaultChartRefresh
	}

	devices := generator.Devices(opts.DeviceCount)

	columns := make([]table.Column, len(model.DeviceColumns))
	for i, title := range model.DeviceColumns {
		columns[i] = table.Column{Title: title, Width: columnWidth(title)}
	}
	rows := make([]table.Row, len(devices))
	for i, d := range devices {
		rows[i] = table.Row(d.Cells())
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(colorText).
		Background(colorAccent)
	styles.Selected = styles.Selected.
		Foreground(colorText).
		Background(lipgloss.Color("#005a9e"))

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
		table.WithStyles(styles),
	)

	return Model{
		runner:     svc,
		generator:  generator,
		actions:    model.Actions(generator.Fleet()),
		options:    opts,
		table:      t,
		spinner:    spinner.Model{Spinner: spinner.Dot},
		progress:   progress.New(progress.WithSolidFill(string(colorAccent)), progress.WithWidth(progressWidth)),
		compliance: generator.Compliance(),
		status:     readyText,
	}
}

func columnWidth(title string) int {
	if w := len(title) + 2; w > 16 {
		return w
	}
	return 16
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, chartTick(m.options.ChartRefresh))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKeys):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, actionKeys):
			idx := int(msg.String()[0] - '1')
			return m.startAction(idx)
		case key.Matches(msg, cancelKeys):
			m.cancelCurrent()
			return m, nil
		case key.Matches(msg, detailsKeys):
			m.toggleDetails()
			return m, nil
		}
		m.details = nil
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case taskProgressMsg:
		if m.current == nil || msg.TaskId != m.current.ID() {
			return m, nil
		}
		m.percent = msg.Percent
		return m, waitForProgress(m.current, m.currentAction)

	case taskFinishedMsg:
		if m.current != nil && msg.TaskId == m.current.ID() {
			m.current = nil
		}
		if msg.Result.Err != nil {
			log.Debug("Task finished with error", "id", msg.TaskId, "err", msg.Result.Err)
			m.status = msg.Action.Label + " " + cancelledLabel
			m.percent = 0
			return m, nil
		}
		log.Debug("Task finished", "id", msg.TaskId)
		m.status = msg.Result.Task.CompletedText()
		m.notice = msg.Action.SuccessMessage
		m.percent = model.MaxProgressPercent
		return m, nil

	case chartTickMsg:
		m.compliance = m.generator.Compliance()
		return m, chartTick(m.options.ChartRefresh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		if w := msg.Width - 4; w > 0 && w < progressWidth {
			m.progress.Width = w
		}
		return m, nil
	}

	return m, nil
}

func (m Model) startAction(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.actions) {
		return m, nil
	}
	action := m.actions[idx]

	handle, err := m.runner.Start(context.Background(), action.Label)
	if err != nil {
		if errors.Is(err, runner.ErrTaskInProgress) {
			m.notice = busyText
		} else {
			m.notice = err.Error()
		}
		return m, nil
	}

	log.Debug("Starting task", "id", handle.ID(), "action", action.Key)
	m.current = handle
	m.currentAction = action
	m.percent = 0
	m.notice = ""
	m.status = model.SimulatedTask{Label: action.Label}.ProcessingText()
	return m, waitForProgress(handle, action)
}

func (m *Model) cancelCurrent() {
	if m.current == nil {
		return
	}
	if err := m.runner.Cancel(m.current.ID()); err != nil {
		log.Debug("cancel ignored", "id", m.current.ID(), "err", err)
	}
}

func (m *Model) toggleDetails() {
	if m.details != nil {
		m.details = nil
		return
	}
	devices := m.table.Rows()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(devices) {
		return
	}
	row := devices[cursor]
	device, ok := m.deviceFromRow(row)
	if !ok {
		return
	}
	details := m.generator.Details(device)
	m.details = &details
}

func (m Model) deviceFromRow(row table.Row) (model.Device, bool) {
	if len(row) != len(model.DeviceColumns) {
		return model.Device{}, false
	}
	checkIn, err := time.ParseInLocation(model.CheckInLayout, row[3], time.Local)
	if err != nil {
		return model.Device{}, false
	}
	return model.Device{
		ID:          row[0],
		User:        row[1],
		Compliance:  model.ComplianceState(row[2]),
		LastCheckIn: checkIn,
		Status:      model.DeviceStatus(row[4]),
	}, true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := strings.Builder{}
	s.WriteString(titleStyle.Render(appTitle))
	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("Deployment Analytics"))
	s.WriteString("\n")
	s.WriteString(m.statsView())
	s.WriteString("\n\n")
	s.WriteString(m.complianceView())
	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("Device Management"))
	s.WriteString("\n")
	s.WriteString(m.table.View())
	s.WriteString("\n")

	if m.details != nil {
		s.WriteString(m.detailsView())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.actionsView())
	s.WriteString("\n\n")
	s.WriteString(m.statusView())
	s.WriteString("\n")
	s.WriteString(m.helpView())
	s.WriteString("\n")

	return s.String()
}

func (m Model) statsView() string {
	cards := make([]string, 0, 4)
	for _, field := range m.generator.Stats() {
		cards = append(cards, cardStyle.Render(field.Label+": "+cardValueStyle.Render(field.Value)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) complianceView() string {
	share := m.compliance.CompliantShare()
	filled := int(math.Round(share * complianceBarWidth))
	bar := compliantStyle.Render(strings.Repeat("█", filled)) +
		nonCompliantStyle.Render(strings.Repeat("█", complianceBarWidth-filled))
	return fmt.Sprintf("%s  %s %.1f%%  %s %.1f%%",
		bar,
		compliantStyle.Render("Compliant"), m.compliance.Compliant,
		nonCompliantStyle.Render("Non-compliant"), m.compliance.NonCompliant)
}

func (m Model) detailsView() string {
	lines := []string{sectionStyle.UnsetMarginTop().Render("Device Details")}
	for _, f := range m.details.Fields() {
		lines = append(lines, fmt.Sprintf("%-14s %s", f.Label+":", compliantStyle.Render(f.Value)))
	}
	return detailsStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) actionsView() string {
	buttons := make([]string, len(m.actions))
	for i, a := range m.actions {
		buttons[i] = cardStyle.Render(fmt.Sprintf("[%d] %s", i+1, a.Button))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m Model) statusView() string {
	s := strings.Builder{}
	if m.current != nil {
		s.WriteString(m.spinner.View())
		s.WriteString(" ")
	}
	s.WriteString(m.progress.ViewAs(float64(m.percent) / model.MaxProgressPercent))
	s.WriteString("\n")
	s.WriteString(statusStyle.Render(m.status))
	if m.notice != "" {
		s.WriteString("\n")
		s.WriteString(noticeStyle.Render(m.notice))
	}
	return s.String()
}

func (m Model) helpView() string {
	parts := make([]string, len(helpBindings))
	for i, b := range helpBindings {
		parts[i] = b.Help().Key + " " + b.Help().Desc
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
