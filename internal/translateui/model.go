// Package translateui provides the Bubble Tea translator form.
package translateui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuikit/internal/model"
	"github.com/verte-zerg/tuikit/internal/translate"
)

const (
	defaultWidth = 60
	inputHeight  = 5
	charLimit    = 5000
)

const emptyTextMessage = "Please enter some text to translate."

// Translator performs a single translation request.
type Translator interface {
	Translate(ctx context.Context, text, lang string) (translate.Result, error)
}

// Recorder persists translation attempts.
type Recorder interface {
	InsertTranslation(ctx context.Context, rec model.TranslationRecord) error
}

type translatedMsg struct {
	text   string
	lang   string
	result translate.Result
	err    error
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	resultStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the translator form.
type Model struct {
	translator Translator
	recorder   Recorder
	log        zerolog.Logger

	keys    keyMap
	help    help.Model
	input   textarea.Model
	spinner spinner.Model

	langs   []translate.Language
	langIdx int

	width  int
	height int

	loading    bool
	result     string
	resultLang string
	errMsg     string
}

// Option customizes the Model.
type Option func(*Model)

// WithRecorder persists every completed request.
func WithRecorder(r Recorder) Option {
	return func(m *Model) {
		m.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// NewModel builds the form with lang preselected. Unknown codes fall back to
// the default language.
func NewModel(tr Translator, lang string, opts ...Option) *Model {
	input := textarea.New()
	input.Placeholder = "Enter text to translate..."
	input.ShowLineNumbers = false
	input.CharLimit = charLimit
	input.SetWidth(defaultWidth)
	input.SetHeight(inputHeight)
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))

	m := &Model{
		translator: tr,
		log:        zerolog.Nop(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      input,
		spinner:    spin,
		langs:      translate.Languages(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.selectLang(lang)
	return m
}

func (m *Model) selectLang(code string) {
	target, ok := translate.Lookup(code)
	if !ok {
		target, _ = translate.Lookup(translate.DefaultLang)
	}
	for i, l := range m.langs {
		if l.Code == target.Code {
			m.langIdx = i
			return
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.SetWidth(m.contentWidth())
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case translatedMsg:
		return m, m.finish(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Translate):
		return m, m.submit()
	case key.Matches(msg, m.keys.NextLang):
		m.langIdx = (m.langIdx + 1) % len(m.langs)
		return m, nil
	case key.Matches(msg, m.keys.PrevLang):
		m.langIdx = (m.langIdx - 1 + len(m.langs)) % len(m.langs)
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		if m.loading {
			return m, nil
		}
		m.input.Reset()
		m.result = ""
		m.resultLang = ""
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	if m.loading {
		return nil
	}
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.errMsg = emptyTextMessage
		m.result = ""
		return nil
	}
	m.loading = true
	m.errMsg = ""
	m.result = ""
	lang := m.Lang()
	tr := m.translator
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := tr.Translate(context.Background(), text, lang)
		return translatedMsg{text: text, lang: lang, result: res, err: err}
	})
}

func (m *Model) finish(msg translatedMsg) tea.Cmd {
	m.loading = false
	rec := model.TranslationRecord{
		ID:        msg.result.RequestID,
		CreatedAt: time.Now(),
		Text:      msg.text,
		Lang:      msg.lang,
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("lang", msg.lang).Msg("translation failed")
		m.errMsg = msg.err.Error()
		m.result = ""
		rec.Error = m.errMsg
	} else {
		m.result = msg.result.Translated
		m.resultLang = msg.result.Lang
		rec.Result = m.result
	}
	return m.record(rec)
}

func (m *Model) record(rec model.TranslationRecord) tea.Cmd {
	if m.recorder == nil {
		return nil
	}
	recorder := m.recorder
	log := m.log
	return func() tea.Msg {
		if err := recorder.InsertTranslation(context.Background(), rec); err != nil {
			log.Error().Err(err).Msg("failed to save translation")
		}
		return nil
	}
}

// Lang returns the selected target language code.
func (m *Model) Lang() string {
	return m.langs[m.langIdx].Code
}

// Loading reports whether a request is in flight.
func (m *Model) Loading() bool {
	return m.loading
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return max(min(defaultWidth, m.width-2), 10)
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	lang := m.langs[m.langIdx]

	sections := []string{
		titleStyle.Render("Text Translator"),
		subtleStyle.Render("Translate text into another language"),
		"",
		m.input.View(),
		"",
		"Target Language: " + accentStyle.Render("‹ "+lang.Label()+" ›"),
	}
	switch {
	case m.loading:
		sections = append(sections, "", m.spinner.View()+" Translating...")
	case m.errMsg != "":
		sections = append(sections, "", errorStyle.Render(m.errMsg))
	case m.result != "":
		header := "Translated Text (" + strings.ToUpper(m.resultLang) + "):"
		inner := width - resultStyle.GetHorizontalFrameSize()
		body := resultStyle.Width(inner + resultStyle.GetHorizontalPadding()).Render(m.result)
		sections = append(sections, "", header, body)
	}
	content := lipgloss.NewStyle().Width(width).Render(strings.Join(sections, "\n"))
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
