// Package tui is the terminal side of long-running operations: status
// lines, notifications, yes/no prompts, download progress and the patch
// toggle list.
package tui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"samm/internal/core"
	"samm/internal/domain"
	"samm/internal/settings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// Reporter writes operation feedback to a terminal
type Reporter struct {
	mu          sync.Mutex
	out         io.Writer
	in          io.Reader
	keys        *KeyMap
	assumeYes   bool
	interactive bool
	bar         progress.Model
	inProgress  bool
}

// Option configures a Reporter
type Option func(*Reporter)

// WithInput sets where prompt answers are read from
func WithInput(in io.Reader) Option {
	return func(r *Reporter) { r.in = in }
}

// WithAssumeYes answers every prompt with yes without asking
func WithAssumeYes(yes bool) Option {
	return func(r *Reporter) { r.assumeYes = yes }
}

// WithInteractive enables prompts. A non-interactive reporter answers no.
func WithInteractive(interactive bool) Option {
	return func(r *Reporter) { r.interactive = interactive }
}

// WithKeyMap sets the prompt keybindings
func WithKeyMap(k *KeyMap) Option {
	return func(r *Reporter) { r.keys = k }
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:         out,
		in:          os.Stdin,
		keys:        NewKeyMap(""),
		interactive: true,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ core.Reporter = (*Reporter)(nil)

// endProgress finishes a progress line so the next message starts clean
func (r *Reporter) endProgress() {
	if r.inProgress {
		fmt.Fprintln(r.out)
		r.inProgress = false
	}
}

// Status prints a one-line status
func (r *Reporter) Status(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endProgress()
	fmt.Fprintln(r.out, statusStyle.Render("› "+msg))
}

// Notify prints a titled message styled by level
func (r *Reporter) Notify(level domain.Level, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endProgress()
	fmt.Fprintf(r.out, "%s %s\n", levelStyle(level).Render(title+":"), message)
}

// Confirm asks a yes/no question
func (r *Reporter) Confirm(title, message string) bool {
	if r.assumeYes {
		return true
	}
	if !r.interactive {
		return false
	}

	r.mu.Lock()
	r.endProgress()
	r.mu.Unlock()

	model := NewConfirm(title, message, r.keys)
	final, err := tea.NewProgram(model, tea.WithInput(r.in), tea.WithOutput(r.out)).Run()
	if err != nil {
		return false
	}
	answer, ok := final.(ConfirmModel)
	return ok && answer.Confirmed()
}

// Progress redraws the download progress line
func (r *Reporter) Progress(p core.DownloadProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := FormatProgress(r.bar, p)
	fmt.Fprintf(r.out, "\r%s", line)
	r.inProgress = true
	if p.TotalBytes > 0 && p.Downloaded >= p.TotalBytes {
		r.endProgress()
	}
}

// FormatProgress renders one progress line. Downloads of unknown size show
// the byte count only.
func FormatProgress(bar progress.Model, p core.DownloadProgress) string {
	name := p.Name
	if name == "" {
		name = "Downloading"
	}
	if p.TotalBytes <= 0 {
		return fmt.Sprintf("%s %s", name, humanize.Bytes(uint64(max(p.Downloaded, 0))))
	}
	return fmt.Sprintf("%s %s %3.0f%% of %s", name, bar.ViewAs(p.Percentage/100), p.Percentage,
		humanize.Bytes(uint64(p.TotalBytes)))
}

// OfflineResult reports the outcome of an embedded payload install
func (r *Reporter) OfflineResult(component string, ok bool) {
	if ok {
		r.Notify(domain.LevelInfo, "Offline Install",
			fmt.Sprintf("%s could not be downloaded and was installed from the bundled copy.", component))
		return
	}
	r.Notify(domain.LevelError, "Offline Install",
		fmt.Sprintf("%s could not be downloaded and no bundled copy could be installed.", component))
}

// EditPatches shows the patch list and returns the toggles the user saved,
// or nil when they discarded the changes
func (r *Reporter) EditPatches(states []settings.PatchState) (map[string]bool, error) {
	model := NewPatches(states, r.keys)
	final, err := tea.NewProgram(model, tea.WithInput(r.in), tea.WithOutput(r.out)).Run()
	if err != nil {
		return nil, fmt.Errorf("running patch editor: %w", err)
	}
	m, ok := final.(PatchesModel)
	if !ok || !m.Saved() {
		return nil, nil
	}
	return m.Toggles(), nil
}
