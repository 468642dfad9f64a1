package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/customerdesk/internal/analytics"
	"github.com/jask/customerdesk/internal/chart"
	"github.com/jask/customerdesk/internal/filepick"
	"github.com/jask/customerdesk/internal/metrics"
	"github.com/jask/customerdesk/internal/report"
	"github.com/jask/customerdesk/internal/roster"
	"github.com/jask/customerdesk/internal/workflow"
)

// Analyzer uploads a CSV and returns the validated analytics result.
type Analyzer interface {
	Analyze(ctx context.Context, requestID, filename string, r io.Reader) (analytics.Result, error)
}

// Options configures the screen.
type Options struct {
	Currency  string
	BrowseDir string
	ExportDir string
	Logger    *slog.Logger
	Bindings  []KeyBinding // nil uses DefaultKeyBindings
}

// App is the customer screen: roster editor plus analytics workflow.
type App struct {
	ctx      context.Context
	analyzer Analyzer
	logger   *slog.Logger
	keys     *KeyRegistry

	roster *roster.Roster
	flow   *workflow.Workflow
	picker *filepick.Picker

	focus      field
	nameInput  string
	phoneInput string
	fileInput  string
	status     string
	showHelp   bool
	width      int
	height     int

	currency  string
	browseDir string
	exportDir string
	open      func(path string) (io.ReadCloser, error)
}

type field int

const (
	fieldName field = iota
	fieldPhone
	fieldFile
	fieldCount
)

func New(ctx context.Context, analyzer Analyzer, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	browse := strings.TrimSpace(opts.BrowseDir)
	if browse == "" {
		browse = "."
	}
	bindings := opts.Bindings
	if bindings == nil {
		bindings = DefaultKeyBindings()
	}
	export := strings.TrimSpace(opts.ExportDir)
	if export == "" {
		export = "."
	}
	return &App{
		ctx:       ctx,
		analyzer:  analyzer,
		logger:    logger,
		keys:      NewKeyRegistry(bindings),
		roster:    roster.New(),
		flow:      workflow.New(),
		picker:    filepick.NewPicker(nil),
		currency:  opts.Currency,
		browseDir: browse,
		exportDir: export,
		width:     100,
		height:    40,
		open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

func (a *App) Init() tea.Cmd {
	return a.scanCmd()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		return a.handleKey(m)
	case candidatesMsg:
		a.picker.SetItems([]filepick.Candidate(m))
	case analyticsDoneMsg:
		a.finishAnalytics(m)
	case exportDoneMsg:
		if m.Err != nil {
			a.logger.Error("chart export failed", "path", m.Path, "err", m.Err)
			a.status = "chart export failed (see log)"
		} else {
			a.logger.Info("chart exported", "path", m.Path)
			a.status = "chart saved to " + m.Path
		}
	case errMsg:
		a.logger.Error("screen error", "err", m.error)
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.keys.ActionFor(m, a.scope()) {
	case actionQuit:
		return a, tea.Quit
	case actionHelp:
		a.showHelp = !a.showHelp
		return a, nil
	case actionClose:
		a.showHelp = false
		return a, nil
	case actionNextField:
		a.focus = (a.focus + 1) % fieldCount
		return a, nil
	case actionPrevField:
		a.focus = (a.focus + fieldCount - 1) % fieldCount
		return a, nil
	case actionSubmit:
		return a, a.submit()
	case actionExport:
		return a, a.exportCmd()
	case actionRescan:
		a.status = "rescanning " + a.browseDir
		return a, a.scanCmd()
	case actionConfirm:
		if a.focus == fieldFile {
			a.selectFile()
		} else {
			a.addRecord()
		}
		return a, nil
	case actionUp:
		a.picker.CursorUp()
		return a, nil
	case actionDown:
		a.picker.CursorDown()
		return a, nil
	}

	input := a.focusedInput()
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if r := []rune(*input); len(r) > 0 {
			*input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		*input += " "
	case tea.KeyRunes:
		*input += string(m.Runes)
	default:
		return a, nil
	}
	if a.focus == fieldFile {
		a.picker.SetQuery(a.fileInput)
	}
	return a, nil
}

func (a *App) scope() string {
	if a.focus == fieldFile {
		return scopeFile
	}
	return scopeForm
}

func (a *App) focusedInput() *string {
	switch a.focus {
	case fieldPhone:
		return &a.phoneInput
	case fieldFile:
		return &a.fileInput
	default:
		return &a.nameInput
	}
}

// addRecord applies the soft-validation policy: an empty name does nothing.
func (a *App) addRecord() {
	if !a.roster.Add(a.nameInput, a.phoneInput) {
		return
	}
	a.nameInput, a.phoneInput = "", ""
	a.focus = fieldName
	metrics.SetRosterRecords(a.roster.Len())
}

// selectFile stages the typed path when it names a file, otherwise the picker
// entry under the cursor.
func (a *App) selectFile() {
	path := strings.TrimSpace(a.fileInput)
	if path != "" {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			a.stage(path)
			return
		}
	}
	if c, ok := a.picker.Current(); ok {
		a.stage(c.Path)
		return
	}
	a.status = "no matching CSV file"
}

func (a *App) stage(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	a.flow.SelectFile(analytics.File{Path: path})
	a.status = "selected " + filepath.Base(path)
}

// submit is the Run Analytics trigger. It is inert while a request is in flight.
func (a *App) submit() tea.Cmd {
	if a.flow.Phase() == workflow.PhaseLoading {
		return nil
	}
	req, err := a.flow.Submit()
	if err != nil {
		if !errors.Is(err, workflow.ErrBusy) {
			a.logger.Info("analytics submit rejected", "reason", err)
		}
		return nil
	}
	a.status = ""
	a.logger.Info("analytics request started", "request_id", req.ID, "file", req.File.Path)
	return a.analyzeCmd(req)
}

func (a *App) finishAnalytics(m analyticsDoneMsg) {
	if !a.flow.Complete(m.ID, m.Result, m.Err) {
		a.logger.Warn("dropping stale analytics completion", "request_id", m.ID)
		return
	}
	if m.Err != nil {
		a.logger.Error("analytics request failed",
			"request_id", m.ID,
			"kind", analytics.KindOf(m.Err).String(),
			"err", m.Err)
		return
	}
	a.logger.Info("analytics request succeeded",
		"request_id", m.ID,
		"months", len(m.Result.Months),
		"anomalies", len(m.Result.Anomalies))
}

// commands

func (a *App) analyzeCmd(req workflow.Request) tea.Cmd {
	analyzer, ctx, open := a.analyzer, a.ctx, a.open
	return func() tea.Msg {
		if analyzer == nil {
			return analyticsDoneMsg{ID: req.ID, Err: fmt.Errorf("analytics client not configured")}
		}
		f, err := open(req.File.Path)
		if err != nil {
			return analyticsDoneMsg{ID: req.ID, Err: fmt.Errorf("open %s: %w", req.File.Path, err)}
		}
		defer f.Close()
		res, err := analyzer.Analyze(ctx, req.ID, req.File.Name(), f)
		return analyticsDoneMsg{ID: req.ID, Result: res, Err: err}
	}
}

func (a *App) scanCmd() tea.Cmd {
	dir := a.browseDir
	return func() tea.Msg {
		items, err := filepick.Scan(dir)
		if err != nil {
			return errMsg{err}
		}
		return candidatesMsg(items)
	}
}

func (a *App) exportCmd() tea.Cmd {
	res, ok := a.flow.Result()
	if !ok || a.flow.Phase() == workflow.PhaseError {
		a.status = "nothing to export yet"
		return nil
	}
	series := report.Build(res, a.currency).Trend
	path := filepath.Join(a.exportDir, "revenue_trend.png")
	return func() tea.Msg {
		r, err := chart.Lookup(chart.PNG)
		if err != nil {
			return exportDoneMsg{Path: path, Err: err}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return exportDoneMsg{Path: path, Err: err}
		}
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{Path: path, Err: err}
		}
		if err := r.Render(f, series, chart.Size{}); err != nil {
			_ = f.Close()
			return exportDoneMsg{Path: path, Err: err}
		}
		return exportDoneMsg{Path: path, Err: f.Close()}
	}
}

// messages
type candidatesMsg []filepick.Candidate

type analyticsDoneMsg struct {
	ID     string
	Result analytics.Result
	Err    error
}

type exportDoneMsg struct {
	Path string
	Err  error
}

type errMsg struct{ error }
