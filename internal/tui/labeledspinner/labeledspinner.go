// Package labeledspinner renders a spinner next to a title and subtitle.
package labeledspinner

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/podcasts/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner with title, subtitle and the time spent so far.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	Help     string
	started  time.Time
}

// New creates a new labeled spinner. The elapsed clock starts now.
func New(s spinner.Spinner, title, subtitle, help string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Help:     help,
		started:  time.Now(),
	}
}

// Relabel swaps the text and restarts the elapsed clock, keeping the
// spinner animation running.
func (ls Model) Relabel(title, subtitle string) Model {
	ls.Title = title
	ls.Subtitle = subtitle
	ls.started = time.Now()

	return ls
}

// Init returns the initial command for the spinner.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Update handles spinner tick messages.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

		return ls, cmd
	}

	return ls, nil
}

// Elapsed returns the time since the spinner was created or relabeled.
func (ls Model) Elapsed() time.Duration {
	return time.Since(ls.started)
}

// View renders the labeled spinner with the help text and elapsed seconds.
func (ls Model) View() string {
	var sb strings.Builder

	sb.WriteString(ls.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(ls.Title))
	sb.WriteString("\n\n")

	sb.WriteString(style.Subtitle.Render(ls.Subtitle))
	sb.WriteString("\n\n")

	help := fmt.Sprintf("%s (%ds)", ls.Help, int(ls.Elapsed().Seconds()))
	sb.WriteString(style.Help.Render(help))

	return sb.String()
}
