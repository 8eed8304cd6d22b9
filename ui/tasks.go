package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fastygo/taskdesk/domain"
	taskUC "github.com/fastygo/taskdesk/usecase/task"
)

const (
	tasksFocusTitle = iota
	tasksFocusDescription
	tasksFocusDeadline
	tasksFocusList
	tasksFocusCount
)

const (
	markColumnWidth     = 1
	titleColumnWidth    = 24
	descColumnWidth     = 36
	deadlineColumnWidth = 10
	tableChrome         = 12
)

type tasksView struct {
	title       textinput.Model
	description textinput.Model
	deadline    textinput.Model
	table       table.Model

	rows   []domain.Task
	marked map[int64]bool
	focus  int
	today  string
}

func newTasksView(today time.Time, height int) tasksView {
	newInput := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = 40
		return in
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: " ", Width: markColumnWidth},
			{Title: "Title", Width: titleColumnWidth},
			{Title: "Description", Width: descColumnWidth},
			{Title: "Deadline", Width: deadlineColumnWidth},
		}),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	v := tasksView{
		title:       newInput("what needs doing", 256),
		description: newInput("optional details", 1024),
		deadline:    newInput(domain.DateLayout, len(domain.DateLayout)),
		table:       t,
		marked:      make(map[int64]bool),
		today:       today.Format(domain.DateLayout),
	}
	v.deadline.SetValue(v.today)
	v.resize(height)
	v.focusAt(tasksFocusTitle)
	return v
}

func (v *tasksView) resize(height int) {
	if height <= 0 {
		return
	}
	v.table.SetHeight(max(height-tableChrome, 3))
}

func (v *tasksView) focusAt(i int) tea.Cmd {
	v.focus = (i + tasksFocusCount) % tasksFocusCount
	v.title.Blur()
	v.description.Blur()
	v.deadline.Blur()
	v.table.Blur()

	switch v.focus {
	case tasksFocusTitle:
		return v.title.Focus()
	case tasksFocusDescription:
		return v.description.Focus()
	case tasksFocusDeadline:
		return v.deadline.Focus()
	}
	v.table.Focus()
	return nil
}

func (v *tasksView) listFocused() bool {
	return v.focus == tasksFocusList
}

func (v *tasksView) input() taskUC.NewTask {
	return taskUC.NewTask{
		Title:       v.title.Value(),
		Description: v.description.Value(),
		Deadline:    v.deadline.Value(),
	}
}

// resetInputs empties the form; the deadline goes back to today like a fresh date picker.
func (v *tasksView) resetInputs() {
	v.title.SetValue("")
	v.description.SetValue("")
	v.deadline.SetValue(v.today)
}

// setRows replaces the displayed tasks. Marks on tasks that are gone are dropped.
func (v *tasksView) setRows(tasks []domain.Task) {
	v.rows = tasks

	present := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}
	for id := range v.marked {
		if !present[id] {
			delete(v.marked, id)
		}
	}
	v.renderRows()

	if c := v.table.Cursor(); c >= len(tasks) {
		v.table.SetCursor(max(len(tasks)-1, 0))
	}
}

func (v *tasksView) renderRows() {
	rows := make([]table.Row, 0, len(v.rows))
	for _, t := range v.rows {
		mark := " "
		if v.marked[t.ID] {
			mark = "*"
		}
		rows = append(rows, table.Row{mark, t.Title, t.Description, t.DeadlineString()})
	}
	v.table.SetRows(rows)
}

func (v *tasksView) current() (domain.Task, bool) {
	c := v.table.Cursor()
	if c < 0 || c >= len(v.rows) {
		return domain.Task{}, false
	}
	return v.rows[c], true
}

func (v *tasksView) toggleMark() {
	t, ok := v.current()
	if !ok {
		return
	}
	if v.marked[t.ID] {
		delete(v.marked, t.ID)
	} else {
		v.marked[t.ID] = true
	}
	v.renderRows()
}

// selection returns the marked tasks in display order, or the cursor row when nothing is marked.
func (v *tasksView) selection() []domain.Task {
	var out []domain.Task
	for _, t := range v.rows {
		if v.marked[t.ID] {
			out = append(out, t)
		}
	}
	if len(out) > 0 {
		return out
	}
	if t, ok := v.current(); ok {
		return []domain.Task{t}
	}
	return nil
}

func (v *tasksView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus {
	case tasksFocusTitle:
		v.title, cmd = v.title.Update(msg)
	case tasksFocusDescription:
		v.description, cmd = v.description.Update(msg)
	case tasksFocusDeadline:
		v.deadline, cmd = v.deadline.Update(msg)
	case tasksFocusList:
		v.table, cmd = v.table.Update(msg)
	}
	return cmd
}

func (v *tasksView) view(title string, sess *domain.Session) string {
	var b strings.Builder
	header := title
	if sess != nil {
		header = fmt.Sprintf("%s: %s", title, sess.Username)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Title") + v.title.View() + "\n")
	b.WriteString(labelStyle.Render("Description") + v.description.View() + "\n")
	b.WriteString(labelStyle.Render("Deadline") + v.deadline.View() + "\n\n")
	b.WriteString(v.table.View())
	b.WriteString("\n")

	order := "insertion order"
	if sess != nil && sess.SortByDeadline {
		order = "sorted by deadline"
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("%d tasks, %s, %d marked", len(v.rows), order, len(v.marked))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: add / details • ctrl+s: sort • space: mark • ctrl+x: delete • tab: next • esc: quit"))
	return b.String()
}
