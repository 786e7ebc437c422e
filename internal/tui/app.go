package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jasktasks/internal/config"
	"github.com/jask/jasktasks/internal/service"
	"github.com/jask/jasktasks/internal/task"
)

// Store is the task state the screen renders and mutates.
type Store interface {
	Load(ctx context.Context) (task.List, error)
	List() task.List
	Add(title string) service.Result
	Toggle(id string) service.Result
	Delete(id string) service.Result
}

type mode int

const (
	modeCompose mode = iota
	modeList
)

// App is the single task list screen.
type App struct {
	ctx    context.Context
	store  Store
	cfg    config.UIConfig
	keys   keyMap
	help   help.Model
	input  textinput.Model
	tasks  task.List
	cursor int
	mode   mode
	ready  bool
	status string
	width  int
}

type loadedMsg struct {
	tasks task.List
	err   error
}

func New(ctx context.Context, store Store, cfg config.UIConfig) *App {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.CharLimit = 0
	ti.Width = 40
	ti.Prompt = "+ "
	ti.Focus()

	keys := defaultKeyMap()
	keys.composing = true

	return &App{
		ctx:   ctx,
		store: store,
		cfg:   cfg,
		keys:  keys,
		help:  help.New(),
		input: ti,
		mode:  modeCompose,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadTasks())
}

func (a *App) loadTasks() tea.Cmd {
	return func() tea.Msg {
		l, err := a.store.Load(a.ctx)
		return loadedMsg{tasks: l, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		if w := m.Width - 8; w > 10 {
			a.input.Width = w
		}
		return a, nil
	case loadedMsg:
		if m.err != nil {
			log.Printf("load tasks: %v", m.err)
		}
		a.ready = true
		a.tasks = m.tasks
		a.clampCursor()
		return a, nil
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.mode == modeCompose {
			return a.updateCompose(m)
		}
		return a.updateList(m)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateCompose(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Submit):
		a.submit()
		return a, nil
	case key.Matches(m, a.keys.Leave):
		a.mode = modeList
		a.keys.composing = false
		a.input.Blur()
		a.status = ""
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) submit() {
	if !a.ready {
		return
	}
	title := a.input.Value()
	if !task.ValidTitle(title) {
		return
	}
	similar, hasSimilar := task.Similar(a.tasks, title, a.cfg.SimilarityThreshold)
	res := a.store.Add(title)
	a.apply(res)
	if !res.Changed {
		return
	}
	a.input.Reset()
	a.cursor = len(a.tasks) - 1
	if hasSimilar {
		a.status = fmt.Sprintf("similar to %q", similar.Title)
	}
}

func (a *App) updateList(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Compose):
		a.mode = modeCompose
		a.keys.composing = true
		return a, a.input.Focus()
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.tasks)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Toggle):
		if t, ok := a.selected(); ok && a.ready {
			a.apply(a.store.Toggle(t.ID))
		}
	case key.Matches(m, a.keys.Delete):
		if t, ok := a.selected(); ok && a.ready {
			a.apply(a.store.Delete(t.ID))
		}
	}
	return a, nil
}

func (a *App) apply(res service.Result) {
	a.tasks = res.List
	if res.SaveErr != nil {
		a.status = "not saved: " + res.SaveErr.Error()
	}
	a.clampCursor()
}

func (a *App) selected() (task.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(a.tasks) {
		return task.Task{}, false
	}
	return a.tasks[a.cursor], true
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.tasks) {
		a.cursor = len(a.tasks) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}
