package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuikit/internal/generator"
	"github.com/verte-zerg/tuikit/internal/model"
)

// Length bounds for the slider.
const (
	MinLength     = 4
	MaxLength     = 50
	DefaultLength = 12
)

const (
	autoInterval   = 2 * time.Second
	copiedDuration = 2 * time.Second
	sliderWidth    = 24
)

// Recorder persists generated strings.
type Recorder interface {
	InsertGenerated(ctx context.Context, rec model.GeneratedRecord) (int64, error)
}

// CopyFunc writes text to the system clipboard.
type CopyFunc func(text string) error

type autoTickMsg struct {
	seq int
}

type copyResultMsg struct {
	err error
}

type clearCopiedMsg struct {
	seq int
}

// Model implements the Bubble Tea generator UI.
type Model struct {
	config   model.GeneratorConfig
	gen      *generator.Generator
	history  *generator.History
	recorder Recorder
	copy     CopyFunc
	log      zerolog.Logger

	keys keyMap
	help help.Model

	width  int
	height int

	current string
	copied  bool
	copySeq int
	autoSeq int
	status  string

	pending tea.Cmd
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	copiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	statStyle   = accentStyle.Bold(true)
	upperStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	lowerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#69B1FF"))
	symbolStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	boxStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Option customizes the Model.
type Option func(*Model)

// WithRecorder persists every generated string.
func WithRecorder(r Recorder) Option {
	return func(m *Model) {
		m.recorder = r
	}
}

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

// NewModel constructs a generator TUI model and produces the first string.
func NewModel(cfg model.GeneratorConfig, gen *generator.Generator, opts ...Option) *Model {
	m := &Model{
		config:  cfg,
		gen:     gen,
		history: generator.NewHistory(generator.DefaultHistorySize),
		copy:    clipboard.WriteAll,
		log:     zerolog.Nop(),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.config.Length = clampLength(m.config.Length)
	m.pending = m.generate()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.pending}
	m.pending = nil
	if m.config.Auto {
		cmds = append(cmds, m.restartAuto())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case autoTickMsg:
		if !m.config.Auto || msg.seq != m.autoSeq {
			return m, nil
		}
		return m, tea.Batch(m.generate(), autoTick(m.autoSeq))
	case copyResultMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("failed to copy text")
			m.status = "Failed to copy: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.copied = true
		m.copySeq++
		seq := m.copySeq
		return m, tea.Tick(copiedDuration, func(time.Time) tea.Msg {
			return clearCopiedMsg{seq: seq}
		})
	case clearCopiedMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Generate):
		return m, m.generate()
	case key.Matches(msg, m.keys.Upper):
		m.config.Classes.Uppercase = !m.config.Classes.Uppercase
		return m, m.settingsChanged()
	case key.Matches(msg, m.keys.Lower):
		m.config.Classes.Lowercase = !m.config.Classes.Lowercase
		return m, m.settingsChanged()
	case key.Matches(msg, m.keys.Numbers):
		m.config.Classes.Numbers = !m.config.Classes.Numbers
		return m, m.settingsChanged()
	case key.Matches(msg, m.keys.Symbols):
		m.config.Classes.Symbols = !m.config.Classes.Symbols
		return m, m.settingsChanged()
	case key.Matches(msg, m.keys.Shorter):
		return m, m.setLength(m.config.Length - 1)
	case key.Matches(msg, m.keys.Longer):
		return m, m.setLength(m.config.Length + 1)
	case key.Matches(msg, m.keys.Auto):
		m.config.Auto = !m.config.Auto
		if !m.config.Auto {
			// Bumping the sequence orphans the live tick chain.
			m.autoSeq++
			return m, nil
		}
		return m, m.restartAuto()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyText(m.current)
	case key.Matches(msg, m.keys.CopyNth):
		idx := int(msg.String()[0] - '1')
		entry, ok := m.history.At(idx)
		if !ok {
			return m, nil
		}
		return m, m.copyText(entry)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := 60
	if m.width > 0 {
		contentWidth = min(contentWidth, m.width-2)
		if contentWidth < 10 {
			contentWidth = 10
		}
	}

	sections := []string{
		titleStyle.Render("Random String Generator"),
		subtleStyle.Render("Generate random strings with custom options"),
		"",
		m.renderOutput(contentWidth),
		"",
		m.renderLength(),
		"",
		m.renderClasses(),
		m.renderAuto(),
	}
	if hist := m.renderHistory(contentWidth); hist != "" {
		sections = append(sections, "", hist)
	}
	sections = append(sections, "", m.renderStats())
	if m.status != "" {
		sections = append(sections, errorStyle.Render(m.status))
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(strings.Join(sections, "\n"))
	footer := footerStyle.Render(m.help.View(m.keys))

	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	bodyHeight := m.height - lipgloss.Height(footer)
	if bodyHeight < 1 {
		return content
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, lipgloss.Height(footer), lipgloss.Center, lipgloss.Top, footer)
	return body + "\n" + footerLine
}

// Current returns the latest generated string.
func (m *Model) Current() string {
	return m.current
}

// History returns recent strings, newest first.
func (m *Model) History() []string {
	return m.history.Items()
}

func (m *Model) generate() tea.Cmd {
	m.current = m.gen.Generate(m.config.Classes, m.config.Length)
	m.history.Push(m.current)
	m.copied = false
	return m.record(model.GeneratedRecord{
		CreatedAt: time.Now(),
		Value:     m.current,
		Length:    m.config.Length,
		Classes:   m.config.Classes,
	})
}

func (m *Model) settingsChanged() tea.Cmd {
	cmd := m.generate()
	if m.config.Auto {
		return tea.Batch(cmd, m.restartAuto())
	}
	return cmd
}

func (m *Model) setLength(length int) tea.Cmd {
	length = clampLength(length)
	if length == m.config.Length {
		return nil
	}
	m.config.Length = length
	return m.settingsChanged()
}

func (m *Model) restartAuto() tea.Cmd {
	m.autoSeq++
	return autoTick(m.autoSeq)
}

func autoTick(seq int) tea.Cmd {
	return tea.Tick(autoInterval, func(time.Time) tea.Msg {
		return autoTickMsg{seq: seq}
	})
}

func (m *Model) copyText(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	copyFn := m.copy
	return func() tea.Msg {
		return copyResultMsg{err: copyFn(text)}
	}
}

func (m *Model) record(rec model.GeneratedRecord) tea.Cmd {
	if m.recorder == nil {
		return nil
	}
	recorder := m.recorder
	log := m.log
	return func() tea.Msg {
		if _, err := recorder.InsertGenerated(context.Background(), rec); err != nil {
			log.Error().Err(err).Msg("failed to save generated string")
		}
		return nil
	}
}

func (m *Model) renderOutput(width int) string {
	inner := width - boxStyle.GetHorizontalFrameSize()
	value := subtleStyle.Render("Press enter to create a random string")
	if m.current != "" {
		value = wrapStyledRunes(buildStyledRunes(m.current), inner)
	}
	label := subtleStyle.Render("c copy")
	if m.copied {
		label = copiedStyle.Render("✓ Copied!")
	}
	return boxStyle.Width(inner + boxStyle.GetHorizontalPadding()).Render(value) + "\n" + label
}

func (m *Model) renderLength() string {
	pos := (m.config.Length - MinLength) * (sliderWidth - 1) / (MaxLength - MinLength)
	bar := strings.Repeat("─", pos) + accentStyle.Render("●") + strings.Repeat("─", sliderWidth-1-pos)
	return fmt.Sprintf("Length: %d\n%d %s %d", m.config.Length, MinLength, bar, MaxLength)
}

func (m *Model) renderClasses() string {
	c := m.config.Classes
	lines := []string{
		"Character Types",
		checkbox(c.Uppercase) + " Uppercase (A-Z)   " + checkbox(c.Lowercase) + " Lowercase (a-z)",
		checkbox(c.Numbers) + " Numbers (0-9)     " + checkbox(c.Symbols) + " Symbols (!@#$...)",
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAuto() string {
	return checkbox(m.config.Auto) + " Auto-generate every 2 seconds"
}

func (m *Model) renderHistory(width int) string {
	items := m.history.Items()
	if len(items) == 0 {
		return ""
	}
	lines := []string{"Recent History"}
	for i, item := range items {
		prefix := fmt.Sprintf("%d ", i+1)
		lines = append(lines, subtleStyle.Render(prefix)+wrapStyledRunes(buildStyledRunes(item), width-len(prefix)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStats() string {
	return fmt.Sprintf("%s Characters   %s Generated",
		statStyle.Render(fmt.Sprintf("%d", len([]rune(m.current)))),
		statStyle.Render(fmt.Sprintf("%d", m.history.Len())),
	)
}

func checkbox(on bool) string {
	if on {
		return accentStyle.Render("[x]")
	}
	return "[ ]"
}

func clampLength(length int) int {
	switch {
	case length == 0:
		return DefaultLength
	case length < MinLength:
		return MinLength
	case length > MaxLength:
		return MaxLength
	default:
		return length
	}
}
