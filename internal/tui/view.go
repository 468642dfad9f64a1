package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/customerdesk/internal/analytics"
	"github.com/jask/customerdesk/internal/chart"
	"github.com/jask/customerdesk/internal/report"
	"github.com/jask/customerdesk/internal/workflow"
	"github.com/jask/customerdesk/widgets"
)

const (
	submitLabel  = "Run Analytics"
	loadingLabel = "Running..."
	pickerRows   = 5
	chartHeight  = 10
)

// styles
var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	focusStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	buttonStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1)
	disabledStyle   = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	predictionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hintStyle       = lipgloss.NewStyle().Faint(true)

	goodAccent  = lipgloss.Color("10")
	alertAccent = lipgloss.Color("9")
)

func (a *App) View() string {
	width := max(40, a.width)
	body := strings.Join([]string{
		a.renderRoster(width),
		a.renderAnalytics(width),
		a.renderFooter(width),
	}, "\n\n")
	if !a.showHelp {
		return body
	}
	return widgets.Popup{
		Base:  widgets.Text(body),
		Title: "Keys",
		Body:  a.helpText(),
	}.Render(width, max(20, a.height))
}

// helpText lists every binding, one per line.
func (a *App) helpText() string {
	lines := make([]string, 0, len(a.keys.bindings)+2)
	seen := map[string]bool{}
	for _, b := range a.keys.bindings {
		if len(b.Keys) == 0 {
			continue
		}
		line := fmt.Sprintf("%-14s %s", strings.Join(b.Keys, " / "), b.Description)
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	lines = append(lines, "", "Keys can be remapped under [keys] in config.toml")
	return strings.Join(lines, "\n")
}

func (a *App) renderRoster(width int) string {
	title := titleStyle.Render("Customer Management")
	form := a.input("Name", a.nameInput, fieldName) + "  " + a.input("Phone", a.phoneInput, fieldPhone) +
		"\n" + hintStyle.Render("["+a.keyFor(actionConfirm)+"] Add Customer")

	rows := make([][]string, 0, a.roster.Len())
	for _, r := range a.roster.Rows() {
		rows = append(rows, []string{strconv.Itoa(r.Index), r.Name, r.Phone})
	}
	table := widgets.Table{
		Headers: []string{"#", "Name", "Phone"},
		Rows:    rows,
		Empty:   "(no customers yet)",
	}.Render(width-4, len(rows)+3)
	list := widgets.Box{Title: "Customer List", Content: table}.Render(width, len(rows)+6)
	return fmt.Sprintf("%s\n%s\n%s", title, form, list)
}

func (a *App) keyFor(action string) string {
	for _, b := range a.keys.bindings {
		if b.Action == action && len(b.Keys) > 0 {
			return b.Keys[0]
		}
	}
	return "?"
}

func (a *App) input(label, value string, f field) string {
	text := fmt.Sprintf("%s: [%s]", label, value)
	if a.focus == f {
		return focusStyle.Render("> " + text)
	}
	return "  " + text
}

func (a *App) renderAnalytics(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Customer Data Analytics"))
	b.WriteString("\nUpload CSV with columns: " + analytics.RequiredColumns)

	b.WriteString("\n" + a.input("CSV file", a.fileInput, fieldFile))
	if sel, ok := a.flow.Selected(); ok {
		b.WriteString("\nSelected: " + sel.Name())
	} else {
		b.WriteString("\nSelected: (none)")
	}
	if a.focus == fieldFile {
		b.WriteString("\n" + a.renderPicker(width))
	}

	b.WriteString("\n" + a.renderSubmit())
	if a.flow.Phase() == workflow.PhaseError {
		b.WriteString("\n" + errorStyle.Render(a.flow.Message()))
	}

	res, ok := a.flow.Result()
	if !ok {
		return b.String()
	}
	b.WriteString("\n\n" + a.renderResult(report.Build(res, a.currency), width))
	return b.String()
}

func (a *App) renderPicker(width int) string {
	items := a.picker.Items()
	if len(items) == 0 {
		return hintStyle.Render("  no CSV files in " + a.browseDir)
	}
	start := 0
	if a.picker.Cursor() >= pickerRows {
		start = a.picker.Cursor() - pickerRows + 1
	}
	lines := make([]string, 0, pickerRows)
	for i := start; i < len(items) && i < start+pickerRows; i++ {
		marker := "  "
		if i == a.picker.Cursor() {
			marker = "> "
		}
		lines = append(lines, marker+items[i].Name)
	}
	return widgets.Text(strings.Join(lines, "\n")).Render(width, pickerRows)
}

func (a *App) renderSubmit() string {
	if a.flow.Phase() == workflow.PhaseLoading {
		return disabledStyle.Render(loadingLabel)
	}
	return buttonStyle.Render(submitLabel) + " " + hintStyle.Render("["+a.keyFor(actionSubmit)+"]")
}

// renderResult puts the customers and the prediction side by side above the
// trend chart and the anomalies.
func (a *App) renderResult(v report.View, width int) string {
	summaryHeight := max(len(v.TopCustomers), 1) + 3
	summary := widgets.HStack{
		Widgets: []widgets.Widget{
			widgets.Box{Title: "Top Customers", Body: widgets.List{Items: v.TopCustomers}},
			widgets.Box{
				Title:  "Next Month Prediction",
				Body:   widgets.Text(predictionStyle.Render(v.Prediction)),
				Accent: goodAccent,
			},
		},
		Ratios: []float64{3, 2},
		Gap:    1,
	}

	trendHeight := chartHeight + 4
	trend := widgets.Box{
		Title:   "Revenue Trend",
		Content: a.renderTrend(v.Trend, width-4),
	}

	lines := v.AnomalyLines()
	anomaliesHeight := len(lines) + 3
	anomalies := widgets.Box{Title: "Anomalies", Body: widgets.List{Items: lines}, Accent: goodAccent}
	if !v.NoAnomalies {
		anomalies.Accent = alertAccent
	}

	heights := []int{summaryHeight, trendHeight, anomaliesHeight}
	ratios := make([]float64, len(heights))
	total := 0
	for i, h := range heights {
		ratios[i] = float64(h)
		total += h
	}
	return widgets.VStack{
		Widgets: []widgets.Widget{summary, trend, anomalies},
		Ratios:  ratios,
	}.Render(width, total)
}

func (a *App) renderTrend(s chart.Series, width int) string {
	r, err := chart.Lookup(chart.Text)
	if err != nil {
		return "(chart unavailable)"
	}
	var b strings.Builder
	if err := r.Render(&b, s, chart.Size{Width: width, Height: chartHeight}); err != nil {
		a.logger.Warn("trend chart render failed", "err", err)
		return "(chart unavailable)"
	}
	return b.String()
}

func (a *App) renderFooter(width int) string {
	hints := hintStyle.Width(width).Render(keyHints(a.keys.BindingsForScope(a.scope())))
	if a.status == "" {
		return hints
	}
	return hints + "\n" + a.status
}
