package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"study-rag/internal/config"
	"study-rag/internal/embedding"
	"study-rag/internal/models"
	"study-rag/internal/report"
	"study-rag/internal/session"
)

// Service is the part of session.Service the TUI drives.
type Service interface {
	Upload(ctx context.Context, st session.State, src string) (session.State, error)
	Process(ctx context.Context, st session.State, progress embedding.Progress) (session.State, error)
	Flashcards(ctx context.Context, st session.State, numCards int) (session.State, error)
	Quiz(ctx context.Context, st session.State, numQuestions int) (session.State, error)
	Ask(ctx context.Context, st session.State, question string) (session.State, error)
	Summarize(ctx context.Context, st session.State, title, outDir string) (session.State, error)
}

type menuAction int

const (
	actionUpload menuAction = iota
	actionProcess
	actionFlashcards
	actionQuiz
	actionAsk
	actionSummarize
	actionQuit
)

type menuItem struct {
	label  string
	action menuAction
	mode   session.Mode
}

var menu = []menuItem{
	{label: "Upload document", action: actionUpload},
	{label: "Process & embed", action: actionProcess},
	{label: "Flashcards", action: actionFlashcards, mode: session.ModeFlashcards},
	{label: "Quiz", action: actionQuiz, mode: session.ModeQuiz},
	{label: "Ask a question", action: actionAsk, mode: session.ModeAsk},
	{label: "Summarize", action: actionSummarize, mode: session.ModeSummarize},
	{label: "Quit", action: actionQuit},
}

type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputPath
	inputQuestion
)

const (
	menuWidth  = 24
	headerRows = 4
	footerRows = 3
)

// Model is the root BubbleTea model
type Model struct {
	ctx    context.Context
	svc    Service
	cfg    *config.Config
	styles Styles

	state session.State

	cursor      int
	input       textinput.Model
	inputFor    inputPurpose
	spinner     spinner.Model
	viewport    viewport.Model
	busy        string
	showAnswers bool

	width  int
	height int
}

func NewModel(ctx context.Context, svc Service, st session.State, cfg *config.Config) Model {
	styles := DefaultStyles()

	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctx:      ctx,
		svc:      svc,
		cfg:      cfg,
		styles:   styles,
		state:    st,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(80, 20),
	}
	m.refreshContent()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the current session snapshot.
func (m Model) State() session.State {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(msg.Width-menuWidth-4, 20)
		m.viewport.Height = max(msg.Height-headerRows-footerRows-2, 5)
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDoneMsg:
		m.busy = ""
		m.state = msg.State
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// one call at a time
	if m.busy != "" {
		return m, nil
	}

	if m.inputFor != inputNone {
		switch msg.String() {
		case "esc":
			m.closeInput()
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			purpose := m.inputFor
			m.closeInput()
			if value == "" {
				return m, nil
			}
			return m.submit(purpose, value)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menu)-1 {
			m.cursor++
		}
	case "a":
		if m.state.Mode == session.ModeQuiz {
			m.showAnswers = !m.showAnswers
			m.refreshContent()
		}
	case "enter":
		return m.selectItem(menu[m.cursor])
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) selectItem(item menuItem) (tea.Model, tea.Cmd) {
	if item.mode != session.ModeNone {
		m.state = session.Reduce(m.state, session.ModeSelected{Mode: item.mode})
		m.refreshContent()
		if m.state.Warning != "" {
			return m, nil
		}
	}

	st := m.state
	switch item.action {
	case actionQuit:
		return m, tea.Quit
	case actionUpload:
		m.openInput(inputPath, "path to a .pdf or .docx file")
		return m, textinput.Blink
	case actionAsk:
		m.openInput(inputQuestion, "your question")
		return m, textinput.Blink
	case actionProcess:
		return m.run("Chunking and embedding...", func(ctx context.Context) (session.State, error) {
			return m.svc.Process(ctx, st, nil)
		})
	case actionFlashcards:
		m.showAnswers = false
		return m.run("Generating flashcards...", func(ctx context.Context) (session.State, error) {
			return m.svc.Flashcards(ctx, st, m.cfg.Generation.NumCards)
		})
	case actionQuiz:
		m.showAnswers = false
		return m.run("Generating quiz...", func(ctx context.Context) (session.State, error) {
			return m.svc.Quiz(ctx, st, m.cfg.Generation.NumQuestions)
		})
	case actionSummarize:
		return m.run("Summarizing...", func(ctx context.Context) (session.State, error) {
			return m.svc.Summarize(ctx, st, "", "")
		})
	}
	return m, nil
}

func (m Model) submit(purpose inputPurpose, value string) (tea.Model, tea.Cmd) {
	st := m.state
	switch purpose {
	case inputPath:
		return m.run("Uploading...", func(ctx context.Context) (session.State, error) {
			return m.svc.Upload(ctx, st, value)
		})
	case inputQuestion:
		return m.run("Thinking...", func(ctx context.Context) (session.State, error) {
			return m.svc.Ask(ctx, st, value)
		})
	}
	return m, nil
}

func (m Model) run(label string, fn func(ctx context.Context) (session.State, error)) (tea.Model, tea.Cmd) {
	m.busy = label
	ctx := m.ctx
	call := func() tea.Msg {
		st, err := fn(ctx)
		return actionDoneMsg{State: st, Err: err}
	}
	return m, tea.Batch(m.spinner.Tick, call)
}

func (m *Model) openInput(purpose inputPurpose, placeholder string) {
	m.inputFor = purpose
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.inputFor = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) refreshContent() {
	width := m.viewport.Width - 2
	content := lipgloss.NewStyle().Width(max(width, 10)).Render(m.artifact())
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// artifact renders what the current mode produced.
func (m Model) artifact() string {
	st := m.state
	switch st.Mode {
	case session.ModeFlashcards:
		if len(st.Flashcards) > 0 {
			return report.FormatFlashcards(st.Flashcards)
		}
	case session.ModeQuiz:
		if len(st.Quiz) > 0 {
			hint := "\n[a] show answers"
			if m.showAnswers {
				hint = "\n[a] hide answers"
			}
			return report.FormatQuiz(st.Quiz, m.showAnswers) + hint
		}
	case session.ModeAsk:
		if st.Answer != nil {
			return "Q: " + st.Answer.Query + "\n\n" + report.FormatAnswer(st.Answer)
		}
		return "Choose \"Ask a question\" to ask about the document."
	case session.ModeSummarize:
		if st.Summary != nil {
			return fmt.Sprintf("%s\n\nPDF saved to %s", st.Summary.Text, st.Summary.PDFPath)
		}
	}

	switch st.Stage {
	case session.NoDocument:
		return "Upload a study file (.pdf or .docx) to begin."
	case session.Uploaded:
		return "Document uploaded. Process & embed it to start studying."
	default:
		return "Your document is ready. Pick a study mode."
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("AI StudyMate"))
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(m.statusLine()))
	b.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(menuWidth).Render(m.menuView()),
		m.styles.Content.Render(m.viewport.View()),
	)
	b.WriteString(body)
	b.WriteString("\n")

	switch {
	case m.busy != "":
		b.WriteString(m.spinner.View() + " " + m.busy)
	case m.inputFor != inputNone:
		b.WriteString(m.input.View())
	case m.state.Err != nil:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("%s: %v", models.Kind(m.state.Err), m.state.Err)))
	case m.state.Warning != "":
		b.WriteString(m.styles.Warning.Render(m.state.Warning))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ move • enter select • pgup/pgdn scroll • esc cancel • q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	st := m.state
	switch st.Stage {
	case session.Processed:
		doc := st.Document
		if doc == "" {
			doc = "restored index"
		}
		return fmt.Sprintf("%s • %d chunks • mode: %s", doc, st.ChunkCount, st.Mode)
	case session.Uploaded:
		return st.Document + " • not processed"
	default:
		return "no document"
	}
}

func (m Model) menuView() string {
	var b strings.Builder
	for i, item := range menu {
		style := m.styles.MenuItem
		prefix := ""
		switch {
		case i == m.cursor:
			style = m.styles.MenuActive
			prefix = "> "
		case item.mode != session.ModeNone && !m.state.Ready():
			style = m.styles.MenuMuted
		}
		b.WriteString(style.Render(prefix+item.label) + "\n")
	}
	return b.String()
}
