package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/fastygo/taskdesk/domain"
	"github.com/fastygo/taskdesk/pkg/actionctx"
	appLogger "github.com/fastygo/taskdesk/pkg/logger"
	authUC "github.com/fastygo/taskdesk/usecase/auth"
	taskUC "github.com/fastygo/taskdesk/usecase/task"
)

type view int

const (
	viewLogin view = iota
	viewTasks
)

func (v view) String() string {
	if v == viewTasks {
		return "tasks"
	}
	return "login"
}

// Deps carries everything the UI calls into.
type Deps struct {
	Auth    *authUC.UseCase
	Tasks   *taskUC.UseCase
	Adapter *actionctx.Adapter
	Logger  *zap.Logger
	Title   string
	// Now defaults to time.Now; it seeds the deadline field.
	Now func() time.Time
}

// App is the root bubbletea model. It owns the login and task views, the
// session once logged in, and at most one blocking dialog.
type App struct {
	deps    Deps
	view    view
	session *domain.Session
	login   loginView
	tasks   tasksView
	dialog  *dialog
	err     error

	width  int
	height int
}

func New(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Title == "" {
		deps.Title = "TODO App"
	}
	return App{
		deps:  deps,
		view:  viewLogin,
		login: newLoginView(),
	}
}

// Err is the fatal storage error that ended the program, if any.
func (a App) Err() error { return a.err }

func (a App) Session() *domain.Session { return a.session }

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.view == viewTasks {
			a.tasks.resize(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if a.dialog != nil {
			if isDismissKey(msg.String()) {
				a.dialog = nil
			}
			return a, nil
		}
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.view == viewTasks {
			return a.updateTasks(msg)
		}
		return a.updateLogin(msg)
	}

	// cursor blink and friends go to whatever holds focus
	var cmd tea.Cmd
	if a.view == viewTasks {
		cmd = a.tasks.update(msg)
	} else {
		cmd = a.login.updateInput(msg)
	}
	return a, cmd
}

func (a App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return a, tea.Quit
	case "tab", "down":
		return a, a.login.focusAt(a.login.focus + 1)
	case "shift+tab", "up":
		return a, a.login.focusAt(a.login.focus - 1)
	case "ctrl+r":
		return a.register()
	case "enter":
		if a.login.focus == loginFocusRegister {
			return a.register()
		}
		return a.doLogin()
	}
	return a, a.login.updateInput(msg)
}

func (a App) register() (tea.Model, tea.Cmd) {
	ctx, cancel := a.deps.Adapter.Attach(nil)
	defer cancel()

	username, password := a.login.credentials()
	if _, err := a.deps.Auth.Register(ctx, username, password); err != nil {
		a.dialog = errorDialog("Registration", err)
		return a, nil
	}
	a.login.clear()
	a.dialog = infoDialog("Registration", "Registration successful! Please log in.")
	return a, a.login.focusAt(loginFocusUsername)
}

func (a App) doLogin() (tea.Model, tea.Cmd) {
	ctx, cancel := a.deps.Adapter.Attach(nil)
	defer cancel()

	username, password := a.login.credentials()
	sess, err := a.deps.Auth.Login(ctx, username, password)
	if err != nil {
		a.dialog = errorDialog("Login", err)
		return a, nil
	}

	a.session = sess
	a.tasks = newTasksView(a.deps.Now(), a.height)
	if err := a.refresh(); err != nil {
		return a.fatal(err)
	}
	a.view = viewTasks
	return a, a.tasks.focusAt(tasksFocusTitle)
}

func (a App) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		return a, tea.Quit
	case "tab":
		return a, a.tasks.focusAt(a.tasks.focus + 1)
	case "shift+tab":
		return a, a.tasks.focusAt(a.tasks.focus - 1)
	case "ctrl+s":
		return a.toggleSort()
	case "ctrl+x":
		return a.deleteSelected()
	case "enter":
		if a.tasks.listFocused() {
			return a.showDetails()
		}
		return a.addTask()
	}

	if a.tasks.listFocused() {
		switch key {
		case " ":
			a.tasks.toggleMark()
			return a, nil
		case "delete":
			return a.deleteSelected()
		}
	}
	return a, a.tasks.update(msg)
}

func (a *App) refresh() error {
	ctx, cancel := a.deps.Adapter.Attach(a.session)
	defer cancel()

	list, err := a.deps.Tasks.List(ctx, a.session)
	if err != nil {
		return err
	}
	a.tasks.setRows(list)
	return nil
}

func (a App) addTask() (tea.Model, tea.Cmd) {
	ctx, cancel := a.deps.Adapter.Attach(a.session)
	defer cancel()

	if _, err := a.deps.Tasks.Add(ctx, a.session, a.tasks.input()); err != nil {
		a.dialog = errorDialog("Add Task", err)
		return a, nil
	}
	if err := a.refresh(); err != nil {
		return a.fatal(err)
	}
	a.tasks.resetInputs()
	return a, nil
}

func (a App) toggleSort() (tea.Model, tea.Cmd) {
	ctx, cancel := a.deps.Adapter.Attach(a.session)
	defer cancel()

	list, err := a.deps.Tasks.ToggleSort(ctx, a.session)
	if err != nil {
		return a.fatal(err)
	}
	a.tasks.setRows(list)
	return a, nil
}

func (a App) deleteSelected() (tea.Model, tea.Cmd) {
	selected := a.tasks.selection()
	if len(selected) == 0 {
		return a, nil
	}

	ctx, cancel := a.deps.Adapter.Attach(a.session)
	defer cancel()

	if err := a.deps.Tasks.Delete(ctx, a.session, selected); err != nil {
		return a.fatal(err)
	}
	if err := a.refresh(); err != nil {
		return a.fatal(err)
	}
	return a, nil
}

func (a App) showDetails() (tea.Model, tea.Cmd) {
	row, ok := a.tasks.current()
	if !ok {
		return a, nil
	}

	ctx, cancel := a.deps.Adapter.Attach(a.session)
	defer cancel()

	task, err := a.deps.Tasks.Get(ctx, a.session, row.ID)
	if err != nil {
		a.dialog = errorDialog("Task Details", err)
		return a, nil
	}
	description := task.Description
	if description == "" {
		description = "-"
	}
	a.dialog = infoDialog(task.Title, fmt.Sprintf("Description: %s\nDeadline:    %s", description, task.DeadlineString()))
	return a, nil
}

// fatal records a storage failure from list, sort or delete and ends the program.
func (a App) fatal(err error) (tea.Model, tea.Cmd) {
	ctx, cancel := a.deps.Adapter.Attach(a.session)
	defer cancel()

	appLogger.WithSession(ctx, a.deps.Logger).Error("storage failure, quitting",
		zap.String("view", a.view.String()),
		zap.Error(err))
	a.err = err
	return a, tea.Quit
}

func (a App) View() string {
	var body string
	if a.view == viewTasks {
		body = a.tasks.view(a.deps.Title, a.session)
	} else {
		body = a.login.view(a.deps.Title)
	}
	if a.dialog != nil {
		return a.dialog.place(a.width, a.height, body)
	}
	return body
}

// Run drives the UI until the user quits, ctx is cancelled, or a fatal
// storage error occurs. Only the last case is returned as an error.
func Run(ctx context.Context, deps Deps) error {
	program := tea.NewProgram(New(deps), tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	if app, ok := final.(App); ok {
		return app.Err()
	}
	return nil
}
