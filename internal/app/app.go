package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/screens/home"
	"github.com/abhisek/quizbank/internal/store"
	"github.com/abhisek/quizbank/internal/ui/keys"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

// ThemeSetting is the settings key the palette name is saved under.
const ThemeSetting = "theme"

// Options holds the dependencies the TUI runs with.
type Options struct {
	Engine   *quiz.Engine
	Settings store.SettingsRepo // nil disables theme persistence
	Logger   *slog.Logger

	// Theme is used when no theme has been saved.
	Theme string

	// Notice is a startup warning shown on the home screen.
	Notice string
}

type themeSavedMsg struct {
	Name string
	Err  error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	settings store.SettingsRepo
	logger   *slog.Logger
	width    int
	height   int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return AppModel{
		router:   router.New(home.New(opts.Engine).WithNotice(opts.Notice)),
		settings: opts.Settings,
		logger:   logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case themeSavedMsg:
		if msg.Err != nil {
			m.logger.Warn("theme not saved", "theme", msg.Name, "error", msg.Err)
		}
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Theme):
			return m, m.saveTheme(theme.Toggle().Name)
		case key.Matches(msg, keys.Back):
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) saveTheme(name string) tea.Cmd {
	if m.settings == nil {
		return nil
	}
	settings := m.settings
	return func() tea.Msg {
		return themeSavedMsg{Name: name, Err: settings.PutSetting(context.Background(), ThemeSetting, name)}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = layout.HintsFrom(keys.Back, keys.Quit)
	} else {
		footerHints = layout.HintsFrom(keys.Up, keys.Down, keys.Enter, keys.Quit)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// ResolveTheme picks the saved palette, falling back to fallback and then
// to dark.
func ResolveTheme(ctx context.Context, settings store.SettingsRepo, fallback string) theme.Palette {
	if settings != nil {
		if name, ok, err := settings.GetSetting(ctx, ThemeSetting); err == nil && ok {
			if p, ok := theme.ByName(name); ok {
				return p
			}
		}
	}
	if p, ok := theme.ByName(fallback); ok {
		return p
	}
	return theme.Dark
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	theme.Apply(ResolveTheme(context.Background(), opts.Settings, opts.Theme))

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
