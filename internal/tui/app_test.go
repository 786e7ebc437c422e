package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/jasktasks/internal/config"
	"github.com/jask/jasktasks/internal/kvstore"
	"github.com/jask/jasktasks/internal/service"
)

func runeKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a *App, msg tea.Msg) *App {
	t.Helper()
	next, _ := a.Update(msg)
	got, ok := next.(*App)
	if !ok {
		t.Fatalf("Update returned %T, want *App", next)
	}
	return got
}

func typeText(t *testing.T, a *App, s string) *App {
	t.Helper()
	for _, r := range s {
		a = press(t, a, runeKey(string(r)))
	}
	return a
}

func testUIConfig() config.UIConfig {
	return config.UIConfig{Title: "Task List", Placeholder: "Add a new task", SimilarityThreshold: 0.25}
}

func newLoadedApp(t *testing.T, mem *kvstore.Memory) (*App, *service.TaskStore) {
	t.Helper()
	store := service.NewTaskStore(mem, kvstore.DefaultKey, nil)
	a := New(context.Background(), store, testUIConfig())
	a = press(t, a, a.loadTasks()())
	require.True(t, a.ready)
	return a, store
}

func TestAddToggleDeleteFlow(t *testing.T) {
	t.Parallel()

	a, store := newLoadedApp(t, kvstore.NewMemory())
	require.Contains(t, a.View(), "No tasks yet.")

	a = typeText(t, a, "Buy milk")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, store.List(), 1)
	require.Equal(t, "Buy milk", store.List()[0].Title)
	require.Empty(t, a.input.Value(), "input clears after add")

	// blank submit is ignored
	a = typeText(t, a, "   ")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, store.List(), 1)
	require.Equal(t, "   ", a.input.Value())
	a.input.Reset()

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeList, a.mode)

	a = press(t, a, tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, store.List()[0].Completed)
	require.Contains(t, a.View(), "1/1 done")

	a = press(t, a, runeKey("x"))
	require.Empty(t, store.List())
	require.Empty(t, a.tasks)
	require.Contains(t, a.View(), "No tasks yet.")
}

func TestTypingQInComposeDoesNotQuit(t *testing.T) {
	t.Parallel()

	a, _ := newLoadedApp(t, kvstore.NewMemory())
	a = press(t, a, runeKey("q"))
	require.Equal(t, "q", a.input.Value())
	require.Equal(t, modeCompose, a.mode)
}

func TestLongTitleIsNotTruncated(t *testing.T) {
	t.Parallel()

	a, store := newLoadedApp(t, kvstore.NewMemory())
	title := strings.Repeat("a", 300)
	a = press(t, a, runeKey(title))
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, store.List(), 1)
	require.Equal(t, title, store.List()[0].Title)
	require.Empty(t, a.input.Value())
}

func TestHelpFollowsModeAndViewIsPure(t *testing.T) {
	t.Parallel()

	a, _ := newLoadedApp(t, kvstore.NewMemory())
	require.True(t, a.keys.composing)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeList, a.mode)
	require.False(t, a.keys.composing)

	keys, m := a.keys, a.mode
	first := a.View()
	require.Equal(t, first, a.View())
	require.Equal(t, keys.composing, a.keys.composing)
	require.Equal(t, m, a.mode)

	a = press(t, a, runeKey("a"))
	require.Equal(t, modeCompose, a.mode)
	require.True(t, a.keys.composing)
	_ = a.View()
	require.True(t, a.keys.composing)
	require.Equal(t, modeCompose, a.mode)
}

func TestQuitFromList(t *testing.T) {
	t.Parallel()

	a, _ := newLoadedApp(t, kvstore.NewMemory())
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := a.Update(runeKey("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCursorNavigationAndDeleteClamp(t *testing.T) {
	t.Parallel()

	mem := kvstore.NewMemory()
	mem.Set(kvstore.DefaultKey, `[
		{"id":"1","title":"one","completed":false},
		{"id":"2","title":"two","completed":false},
		{"id":"3","title":"three","completed":false}
	]`)
	a, store := newLoadedApp(t, mem)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	a = press(t, a, runeKey("j"))
	a = press(t, a, runeKey("j"))
	a = press(t, a, runeKey("j"))
	require.Equal(t, 2, a.cursor)

	a = press(t, a, runeKey("x"))
	require.Equal(t, 1, a.cursor)
	require.Equal(t, []string{"one", "two"}, []string{store.List()[0].Title, store.List()[1].Title})

	a = press(t, a, runeKey("k"))
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, store.List()[0].Completed)
	require.False(t, store.List()[1].Completed)
}

func TestMutationsIgnoredUntilLoaded(t *testing.T) {
	t.Parallel()

	mem := kvstore.NewMemory()
	mem.Set(kvstore.DefaultKey, `[{"id":"1","title":"stored","completed":false}]`)
	store := service.NewTaskStore(mem, kvstore.DefaultKey, nil)
	a := New(context.Background(), store, testUIConfig())
	require.Contains(t, a.View(), "loading...")

	a = typeText(t, a, "early")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, store.List())

	a = press(t, a, a.loadTasks()())
	require.Len(t, a.tasks, 1)
	require.Equal(t, "stored", a.tasks[0].Title)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, store.List(), 2)
	require.Equal(t, "early", store.List()[1].Title)
}

func TestCorruptStorageStartsEmpty(t *testing.T) {
	t.Parallel()

	mem := kvstore.NewMemory()
	mem.Set(kvstore.DefaultKey, "{{{")
	a, _ := newLoadedApp(t, mem)
	require.Empty(t, a.tasks)
	require.Empty(t, a.status, "load failures are not shown")
	require.Contains(t, a.View(), "No tasks yet.")
}

func TestSimilarTitleHint(t *testing.T) {
	t.Parallel()

	a, store := newLoadedApp(t, kvstore.NewMemory())
	a = typeText(t, a, "Buy milk")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, a.status)

	a = typeText(t, a, "buy milk")
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, store.List(), 2, "hint never blocks the add")
	require.Contains(t, a.status, `"Buy milk"`)
}

func TestViewRendersCompletedAndTruncates(t *testing.T) {
	t.Parallel()

	mem := kvstore.NewMemory()
	mem.Set(kvstore.DefaultKey, `[
		{"id":"1","title":"done task","completed":true},
		{"id":"2","title":"`+strings.Repeat("long ", 40)+`","completed":false}
	]`)
	a, _ := newLoadedApp(t, mem)
	a = press(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})

	out := a.View()
	require.Contains(t, out, "Task List")
	require.Contains(t, out, "[x]")
	require.Contains(t, out, "[ ]")
	require.Contains(t, out, "…")
	require.Contains(t, out, "1/2 done")
}
