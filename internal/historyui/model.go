// Package historyui provides the Bubble Tea history browser.
package historyui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuikit/internal/config"
	"github.com/verte-zerg/tuikit/internal/model"
	"github.com/verte-zerg/tuikit/internal/report"
)

const (
	tabGenerated = iota
	tabTranslations
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// CopyFunc writes text to the system clipboard.
type CopyFunc func(text string) error

type copyResultMsg struct {
	err error
}

// Model implements the history browser.
type Model struct {
	src  report.Source
	cfg  model.HistoryConfig
	copy CopyFunc
	log  zerolog.Logger

	report report.Report
	errMsg string
	status string

	tabs      []string
	activeTab int
	tables    []table.Model

	width  int
	height int

	filterMode  bool
	lastInput   textinput.Model
	filterError string
}

// Option customizes the Model.
type Option func(*Model)

// WithCopyFunc replaces the system clipboard.
func WithCopyFunc(fn CopyFunc) Option {
	return func(m *Model) {
		m.copy = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// NewModel loads the records and opens the tab matching cfg.Kind.
func NewModel(src report.Source, cfg model.HistoryConfig, opts ...Option) *Model {
	m := &Model{
		src:  src,
		cfg:  cfg,
		copy: clipboard.WriteAll,
		log:  zerolog.Nop(),
		tabs: []string{"Generated", "Translations"},
	}
	for _, opt := range opts {
		opt(m)
	}
	if cfg.Kind == "translate" {
		m.activeTab = tabTranslations
	}
	m.lastInput = newFilterInput("Last: ")
	m.tables = []table.Model{
		buildTable(report.GeneratedHeaders, nil, 0, 1),
		buildTable(report.TranslationHeaders, nil, 0, 1),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case copyResultMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("failed to copy text")
			m.status = ""
			m.errMsg = "Failed to copy: " + msg.err.Error()
			return m, nil
		}
		m.status = "Copied to clipboard."
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "/":
			return m.startFilter()
		case "r":
			m.refreshReport()
			m.updateLayout()
			return m, nil
		case "enter", "c", "y":
			return m, m.copySelected()
		default:
			var cmd tea.Cmd
			m.tables[m.activeTab], cmd = m.tables[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) refreshReport() {
	load := model.HistoryConfig{Kind: "all", Last: m.cfg.Last}
	rep, err := report.BuildReport(context.Background(), m.src, load)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to load history")
		m.errMsg = err.Error()
		m.report = report.Report{}
	} else {
		m.errMsg = ""
		m.report = rep
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.tables[tabGenerated] = buildTable(report.GeneratedHeaders, report.GeneratedRows(m.report.Generated), width, bodyHeight)
	m.tables[tabTranslations] = buildTable(report.TranslationHeaders, report.TranslationRows(m.report.Translations), width, bodyHeight)
}

func buildTable(headers []string, rows [][]string, width, height int) table.Model {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
		tableRows = append(tableRows, table.Row(row))
	}
	columns := make([]table.Column, 0, len(headers))
	for i, h := range headers {
		columns = append(columns, table.Column{Title: h, Width: widths[i]})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(max(1, height-1)),
		table.WithFocused(true),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && (m.errMsg != "" || m.status != "") {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.tables {
		m.tables[i].SetWidth(m.width)
		m.tables[i].SetHeight(max(1, bodyHeight-1))
	}
	promptWidth := lipgloss.Width(m.lastInput.Prompt)
	m.lastInput.Width = max(10, m.width-promptWidth-2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.status = ""
}

func (m *Model) selectedValue() string {
	idx := m.tables[m.activeTab].Cursor()
	switch m.activeTab {
	case tabGenerated:
		if idx >= 0 && idx < len(m.report.Generated) {
			return m.report.Generated[idx].Value
		}
	case tabTranslations:
		if idx >= 0 && idx < len(m.report.Translations) {
			return m.report.Translations[idx].Result
		}
	}
	return ""
}

func (m *Model) copySelected() tea.Cmd {
	text := m.selectedValue()
	if text == "" {
		return nil
	}
	copyFn := m.copy
	return func() tea.Msg {
		return copyResultMsg{err: copyFn(text)}
	}
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = "all"
	input.CharLimit = 6
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	if m.cfg.Last > 0 {
		m.lastInput.SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.lastInput.SetValue("")
	}
	return m, m.lastInput.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		m.lastInput.Blur()
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.lastInput.Blur()
		m.refreshReport()
		m.updateLayout()
		return m, nil
	}
	var cmd tea.Cmd
	m.lastInput, cmd = m.lastInput.Update(msg)
	return m, cmd
}

func (m *Model) applyFilter() error {
	last := 0
	if raw := strings.TrimSpace(m.lastInput.Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("--last must be a number")
		}
		last = parsed
	}
	next := model.HistoryConfig{Kind: m.cfg.Kind, Last: last}
	if err := config.Validate(next); err != nil {
		return err
	}
	m.cfg = next
	return nil
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: last=%s  generated=%d  translations=%d", last, len(m.report.Generated), len(m.report.Translations))
	summary = truncateLine(summary, m.width)
	return tabs + "\n" + padLines(headerStyle.Render(summary), m.width)
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		lines := []string{"Settings (enter to apply, esc to cancel)", m.lastInput.View()}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return fitLines(strings.Join(lines, "\n"), m.width, height)
	}
	if m.errMsg != "" && len(m.report.Generated) == 0 && len(m.report.Translations) == 0 {
		return fitLines("Failed to load history.", m.width, height)
	}
	switch {
	case m.activeTab == tabGenerated && len(m.report.Generated) == 0:
		return fitLines("No generated strings found.", m.width, height)
	case m.activeTab == tabTranslations && len(m.report.Translations) == 0:
		return fitLines("No translations found.", m.width, height)
	}
	return fitLines(tableMutedStyle.Render(m.tables[m.activeTab].View()), m.width, height)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("enter: apply  esc: cancel  quit: ctrl+c")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Copy: enter  Reload: r  Settings: /  Quit: q")
	switch {
	case m.errMsg != "":
		return help + "\n" + errorStyle.Render(m.errMsg)
	case m.status != "":
		return help + "\n" + statusStyle.Render(m.status)
	default:
		return help
	}
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
