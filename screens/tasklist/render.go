package tasklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tasklist/core"
	"github.com/jask/tasklist/internal/task"
)

type ViewState int

const (
	StateLoading ViewState = iota
	StateEmpty
	StateRows
)

func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	default:
		return "rows"
	}
}

// SelectState picks the single visual state for (tasks, loading). Loading
// wins over whatever tasks are held.
func SelectState(tasks []task.Task, loading bool) ViewState {
	switch {
	case loading:
		return StateLoading
	case len(tasks) == 0:
		return StateEmpty
	default:
		return StateRows
	}
}

const (
	GlyphDone = "✔"
	GlyphOpen = "○"
)

// Row is the unstyled content of one list row.
type Row struct {
	ID     string
	Glyph  string
	Title  string
	Due    string
	Struck bool
}

func NewRow(t task.Task, dueLabel string) Row {
	r := Row{ID: t.ID, Glyph: GlyphOpen, Title: t.Title, Due: strings.TrimSpace(dueLabel + " " + t.DueDateDisplay)}
	if t.Completed {
		r.Glyph = GlyphDone
		r.Struck = true
	}
	return r
}

// Text holds the user-facing strings of the list screen.
type Text struct {
	Title    string
	Empty    string
	Loading  string
	Create   string
	DueLabel string
	Count    string // status bar after a refresh, e.g. "%d görev"
}

type Styles struct {
	Cursor    lipgloss.Style
	GlyphOpen lipgloss.Style
	GlyphDone lipgloss.Style
	Title     lipgloss.Style
	TitleDone lipgloss.Style
	Due       lipgloss.Style
	Loading   lipgloss.Style
	Empty     lipgloss.Style
	Create    lipgloss.Style
}

// NewStyles builds the list styles on r; nil means the default renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Cursor:    r.NewStyle().Foreground(core.ColorAccent).Bold(true),
		GlyphOpen: r.NewStyle().Foreground(core.ColorSubtle),
		GlyphDone: r.NewStyle().Foreground(core.ColorAccent),
		Title:     r.NewStyle().Foreground(core.ColorText).Bold(true),
		TitleDone: r.NewStyle().Foreground(core.ColorSubtle).Strikethrough(true),
		Due:       r.NewStyle().Foreground(core.ColorMuted),
		Loading:   r.NewStyle().Foreground(core.ColorAccent).PaddingTop(1).PaddingLeft(2),
		Empty:     r.NewStyle().Foreground(core.ColorMuted).PaddingTop(2).PaddingLeft(2),
		Create:    r.NewStyle().Foreground(core.ColorMantle).Background(core.ColorAccent).Bold(true).Padding(0, 1),
	}
}

type taskItem struct {
	task.Task
}

func (i taskItem) FilterValue() string { return i.Title }

type rowDelegate struct {
	styles   Styles
	dueLabel string
}

func (d rowDelegate) Height() int  { return 2 }
func (d rowDelegate) Spacing() int { return 1 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderRow(NewRow(it.Task, d.dueLabel), index == m.Index(), m.Width()))
}

func (d rowDelegate) renderRow(row Row, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = d.styles.Cursor.Render("> ")
	}
	glyph := d.styles.GlyphOpen.Render(row.Glyph)
	title := d.styles.Title.Render(row.Title)
	if row.Struck {
		glyph = d.styles.GlyphDone.Render(row.Glyph)
		title = d.styles.TitleDone.Render(row.Title)
	}
	first := cursor + glyph + " " + title
	second := "    " + d.styles.Due.Render(row.Due)
	return core.TrimToWidth(first, width) + "\n" + core.TrimToWidth(second, width)
}

func newListModel(d rowDelegate) list.Model {
	l := list.New([]list.Item{}, d, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	// row-up and row-down come from the key registry
	l.KeyMap.CursorUp.SetEnabled(false)
	l.KeyMap.CursorDown.SetEnabled(false)
	l.Styles.NoItems = lipgloss.NewStyle()
	return l
}

func toItems(tasks []task.Task) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{Task: t})
	}
	return items
}
