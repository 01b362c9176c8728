package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alkime/podcasts/internal/config"
	"github.com/alkime/podcasts/internal/logger"
	"github.com/alkime/podcasts/internal/podcast"
	"github.com/alkime/podcasts/internal/routes"
	"github.com/alkime/podcasts/internal/saver"
	"github.com/alkime/podcasts/internal/tui/generate"
	"github.com/alkime/podcasts/internal/tui/style"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// CLI defines the podcast command structure.
type CLI struct {
	BaseOrigin string `name:"base-origin" env:"PODCAST_BASE_ORIGIN" default:"http://localhost:5001" help:"Podcast service origin"`
	LogLevel   string `name:"log-level" env:"LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level for diagnostics on stderr"`

	Generate GenerateCmd `cmd:"" help:"Generate a podcast from text"`
	Download DownloadCmd `cmd:"" help:"Download a generated podcast"`
	Routes   RoutesCmd   `cmd:"" help:"Print the web client route table"`
}

// Validate rejects an unusable base origin before any command runs.
func (c *CLI) Validate() error {
	return config.ValidateBaseOrigin(c.BaseOrigin)
}

// Globals are handed to every command's Run method.
type Globals struct {
	Client *podcast.Client
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// errUnsuccessful marks a command whose result was reported but failed.
var errUnsuccessful = errors.New("request did not succeed")

// GenerateCmd sends text to the backend.
type GenerateCmd struct {
	Text     string `arg:"" optional:"" help:"Text to turn into a podcast (default: --file or stdin)"`
	File     string `short:"f" type:"existingfile" help:"Read the text from a file"`
	Type     string `short:"t" default:"single" help:"Podcast type, e.g. single or dual"`
	Download bool   `short:"d" help:"Download the audio once it is ready"`
	Dir      string `type:"path" help:"Download directory (default: ~/Downloads/Podcasts)"`
	Plain    bool   `help:"Print the result as JSON instead of the terminal UI"`
}

// Run executes the generate command.
func (c *GenerateCmd) Run(g *Globals) error {
	text, err := c.readText(g.Stdin)
	if err != nil {
		return err
	}

	dir, err := resolveDir(c.Dir)
	if err != nil {
		return err
	}
	client := g.Client.WithSaver(saver.NewDir(dir, g.Logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if c.Plain {
		return c.runPlain(ctx, client, text, g.Stdout)
	}

	model := generate.New(ctx, client, generate.Config{
		Text:     text,
		Type:     c.Type,
		Origin:   client.BaseOrigin(),
		Download: c.Download,
		SaveDir:  dir,
	})

	opts := []tea.ProgramOption{tea.WithOutput(g.Stdout)}
	if c.Text == "" && c.File == "" {
		// stdin already held the text
		opts = append(opts, tea.WithInput(nil))
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("failed to run generate TUI: %w", err)
	}

	if model.Aborted() {
		return errors.New("aborted")
	}
	if res := model.GenerateResult(); res == nil || !res.Success {
		return errUnsuccessful
	}
	if res := model.DownloadResult(); res != nil && !res.Success {
		return errUnsuccessful
	}

	return nil
}

// plainOutput is the JSON printed by --plain.
type plainOutput struct {
	Generate podcast.GenerateResult  `json:"generate"`
	Download *podcast.DownloadResult `json:"download,omitempty"`
}

func (c *GenerateCmd) runPlain(ctx context.Context, client *podcast.Client, text string, out io.Writer) error {
	result := plainOutput{Generate: client.GeneratePodcast(ctx, text, c.Type)}

	if result.Generate.Success && c.Download {
		res := client.DownloadPodcast(ctx, result.Generate.AudioFile)
		result.Download = &res
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if !result.Generate.Success || (result.Download != nil && !result.Download.Success) {
		return errUnsuccessful
	}

	return nil
}

func (c *GenerateCmd) readText(stdin io.Reader) (string, error) {
	switch {
	case c.Text != "" && c.File != "":
		return "", errors.New("give the text as an argument or with --file, not both")
	case c.Text != "":
		return c.Text, nil
	case c.File != "":
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", c.File, err)
		}
		return string(data), nil
	}

	if stdin == nil {
		return "", errors.New("no text given")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("no text given: pass it as an argument, with --file or on stdin")
	}

	return string(data), nil
}

// DownloadCmd saves one audio file from the backend.
type DownloadCmd struct {
	File string `arg:"" required:"" help:"Audio file name returned by generate"`
	Dir  string `type:"path" help:"Download directory (default: ~/Downloads/Podcasts)"`
}

// Run executes the download command.
func (c *DownloadCmd) Run(g *Globals) error {
	dir, err := resolveDir(c.Dir)
	if err != nil {
		return err
	}

	target := saver.NewDir(dir, g.Logger)

	res := g.Client.WithSaver(target).DownloadPodcast(context.Background(), c.File)
	if !res.Success {
		fmt.Fprintln(g.Stdout, style.Error.Render("✗ "+res.Error))
		return errUnsuccessful
	}

	saved, err := target.Target(c.File)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Stdout, "%s %s\n", style.Label.Render("Saved:"), style.Muted.Render(saved))

	return nil
}

// RoutesCmd prints the route table as it resolves under a base path.
type RoutesCmd struct {
	Base string `default:"/" help:"History base path"`
}

// Run executes the routes command.
//
//nolint:unparam // error return required by Kong interface
func (c *RoutesCmd) Run(g *Globals) error {
	history := routes.NewHistory(c.Base)

	rows := make([][]string, 0, len(routes.Table()))
	for _, r := range routes.Table() {
		target := string(r.View)
		if r.IsRedirect() {
			target = "→ " + history.Href(r.Redirect)
		}
		rows = append(rows, []string{history.Href(r.Path), r.Name, target})
	}
	rows = append(rows, []string{"*", "", "→ " + history.Href(routes.DefaultPath)})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PATH", "NAME", "TARGET").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.TableHeader
			}
			return style.TableCell
		})

	fmt.Fprintln(g.Stdout, t.Render())

	return nil
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}

	def, err := saver.DefaultDir()
	if err != nil {
		return "", err
	}

	return def, nil
}

func main() {
	config.LoadDotEnv()

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("podcast"),
		kong.Description("Generate and download podcasts from the podcast service."),
		kong.UsageOnError(),
	)

	// Diagnostics go to stderr so --plain output stays parseable
	log := logger.SetupCLILogger(os.Stderr, cli.LogLevel)

	client := podcast.NewClient(cli.BaseOrigin, podcast.WithLogger(log))

	err := ctx.Run(&Globals{
		Client: client,
		Logger: log,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	})
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
