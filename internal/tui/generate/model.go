// Package generate is the terminal flow behind `podcast generate`: a
// spinner while the backend works, then the result.
package generate

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/alkime/podcasts/internal/podcast"
	"github.com/alkime/podcasts/internal/saver"
	"github.com/alkime/podcasts/internal/tui/labeledspinner"
	"github.com/alkime/podcasts/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes one run of the flow.
type Config struct {
	Text     string
	Type     string
	Origin   string
	Download bool
	// SaveDir is only shown to the user; the service decides where bytes go.
	SaveDir string
}

type state int

const (
	stateGenerating state = iota
	stateDownloading
	stateDone
)

type generatedMsg struct{ result podcast.GenerateResult }

type downloadedMsg struct{ result podcast.DownloadResult }

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model runs GeneratePodcast and, when asked, DownloadPodcast.
type Model struct {
	ctx      context.Context
	service  podcast.Service
	cfg      Config
	spinner  labeledspinner.Model
	state    state
	aborted  bool
	generate *podcast.GenerateResult
	download *podcast.DownloadResult
}

// New creates the flow model. ctx bounds both requests.
func New(ctx context.Context, service podcast.Service, cfg Config) *Model {
	subtitle := "Sending text to the podcast service"
	if cfg.Origin != "" {
		subtitle = "Sending text to " + cfg.Origin
	}

	return &Model{
		ctx:     ctx,
		service: service,
		cfg:     cfg,
		spinner: labeledspinner.New(spinner.Dot, "Generating podcast...", subtitle, "q to quit"),
		state:   stateGenerating,
	}
}

// Init starts the spinner and the generate request together.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), m.generateCmd())
}

// Update handles results, quit keys and spinner ticks.
func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if m.state != stateDone {
				m.aborted = true
			}
			m.state = stateDone
			return m, tea.Quit
		}

		return m, nil

	case generatedMsg:
		res := msg.result
		m.generate = &res
		if res.Success && m.cfg.Download {
			m.state = stateDownloading
			m.spinner = m.spinner.Relabel("Downloading "+res.AudioFile+"...", "Fetching audio from "+res.AudioURL)
			return m, m.downloadCmd(res.AudioFile)
		}

		m.state = stateDone
		return m, tea.Quit

	case downloadedMsg:
		res := msg.result
		m.download = &res
		m.state = stateDone
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(teaMsg)

	return m, cmd
}

// View renders the spinner while working and the outcome when done.
func (m *Model) View() string {
	if m.state != stateDone {
		return m.spinner.View() + "\n"
	}

	var sb strings.Builder

	switch {
	case m.aborted:
		sb.WriteString(style.Error.Render("Aborted"))
		sb.WriteString("\n")

	case m.generate != nil && !m.generate.Success:
		sb.WriteString(style.Error.Render("✗ " + m.generate.Error))
		sb.WriteString("\n")

	case m.generate != nil:
		sb.WriteString(style.Success.Render("✓ Podcast ready"))
		sb.WriteString("\n\n")
		writeField(&sb, "File:", m.generate.AudioFile)
		if m.generate.PodcastType != "" {
			writeField(&sb, "Type:", m.generate.PodcastType)
		}
		writeField(&sb, "URL:", m.generate.AudioURL)

		if m.download != nil {
			sb.WriteString("\n")
			if m.download.Success {
				writeField(&sb, "Saved:", m.savedPath())
			} else {
				sb.WriteString(style.Error.Render("✗ " + m.download.Error))
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

// savedPath names the file the way the saver writes it.
func (m *Model) savedPath() string {
	name, err := saver.CleanFilename(m.generate.AudioFile)
	if err != nil {
		name = m.generate.AudioFile
	}
	if m.cfg.SaveDir == "" {
		return name
	}
	return filepath.Join(m.cfg.SaveDir, name)
}

func writeField(sb *strings.Builder, label, value string) {
	sb.WriteString(style.Label.Render(label))
	sb.WriteString(" ")
	sb.WriteString(style.Muted.Render(value))
	sb.WriteString("\n")
}

// Aborted reports whether the user quit before the flow finished.
func (m *Model) Aborted() bool {
	return m.aborted
}

// GenerateResult returns the generate outcome, nil if it never arrived.
func (m *Model) GenerateResult() *podcast.GenerateResult {
	return m.generate
}

// DownloadResult returns the download outcome, nil if none was attempted.
func (m *Model) DownloadResult() *podcast.DownloadResult {
	return m.download
}

func (m *Model) generateCmd() tea.Cmd {
	return func() tea.Msg {
		return generatedMsg{result: m.service.GeneratePodcast(m.ctx, m.cfg.Text, m.cfg.Type)}
	}
}

func (m *Model) downloadCmd(audioFile string) tea.Cmd {
	return func() tea.Msg {
		return downloadedMsg{result: m.service.DownloadPodcast(m.ctx, audioFile)}
	}
}
