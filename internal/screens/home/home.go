package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbank/internal/history"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	historyscreen "github.com/abhisek/quizbank/internal/screens/history"
	"github.com/abhisek/quizbank/internal/screens/selection"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/keys"
	"github.com/abhisek/quizbank/internal/ui/layout"
)

type ledgerLoadedMsg struct {
	Entries []history.Entry
}

// HomeScreen is the main menu.
type HomeScreen struct {
	engine     *quiz.Engine
	menu       components.Menu
	menuLabels []string
	last       *history.Entry
	sessions   int
	notice     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen for engine.
func New(engine *quiz.Engine) *HomeScreen {
	menuLabels := []string{"START QUIZ", "HISTORY", "QUIT"}
	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: selection.New(engine)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(engine)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	if engine.Bank().Len() == 0 {
		items[0].Disabled = true
	}

	return &HomeScreen{
		engine:     engine,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

// WithNotice sets a warning shown under the menu, such as history being
// unavailable for this run.
func (h *HomeScreen) WithNotice(notice string) *HomeScreen {
	h.notice = notice
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Resume reloads the last result after a quiz or a history clear.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	return func() tea.Msg {
		return ledgerLoadedMsg{Entries: h.engine.History(context.Background())}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(ledgerLoadedMsg); ok {
		h.sessions = len(msg.Entries)
		h.last = nil
		if n := len(msg.Entries); n > 0 {
			e := msg.Entries[n-1]
			h.last = &e
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 90
	cw := components.ContentWidth(width)
	b := h.engine.Bank()
	title := b.Title()
	if title == "" {
		title = "Question bank"
	}

	sections := []string{
		renderTitle(cw, compact),
		renderBankBar(title, len(b.Subjects()), b.Len(), cw),
		renderLastResult(h.last, h.sessions, cw),
		renderMenu(h.menuLabels, h.menu.Selected, cw, compact),
	}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFrom(keys.Up, keys.Down, keys.Enter, keys.Theme, keys.Quit)
}
