package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jask/jasktasks/internal/task"
)

const defaultWidth = 60

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.cfg.Title))
	b.WriteString("\n")

	box := inputStyle
	if a.mode == modeCompose {
		box = inputFocused
	}
	b.WriteString(box.Render(a.input.View()))
	b.WriteString("\n\n")

	switch {
	case !a.ready:
		b.WriteString(emptyStyle.Render("loading..."))
		b.WriteString("\n")
	case len(a.tasks) == 0:
		b.WriteString(emptyStyle.Render("No tasks yet."))
		b.WriteString("\n")
	default:
		for i, t := range a.tasks {
			b.WriteString(a.renderTask(i, t))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d done", a.tasks.Completed(), len(a.tasks))))
		b.WriteString("\n")
	}

	if a.status != "" {
		b.WriteString(statusStyle.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderTask(i int, t task.Task) string {
	marker := "  "
	if a.mode == modeList && i == a.cursor {
		marker = cursorStyle.Render("> ")
	}
	box := "[ ] "
	style := taskStyle
	if t.Completed {
		box = checkStyle.Render("[x]") + " "
		style = doneStyle
	}
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}
	// marker + box take six cells
	title := ansi.Truncate(t.Title, max(width-6, 1), "…")
	return marker + box + style.Render(title)
}
