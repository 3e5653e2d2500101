package tui

import (
	"errors"
	"log/slog"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/student-registration/internal/auth"
	"github.com/aanand-mishra/student-registration/internal/form"
	"github.com/aanand-mishra/student-registration/internal/roster"
	"github.com/aanand-mishra/student-registration/internal/route"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/validation"
)

// MsgRegistrationFailed is the retry prompt shown when the backend
// rejects or cannot be reached during registration.
const MsgRegistrationFailed = "Registration could not be saved. Please try again."

// MsgLoadFailed is shown while the list has never loaded.
const MsgLoadFailed = "Could not load students. Press r to retry."

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case registeredMsg:
		m.busy = false
		var verrs validation.Errors
		switch {
		case msg.err == nil:
			var cmds []tea.Cmd
			cmds = append(cmds, m.showToast(form.SuccessMessage))
			m.register.DismissNotification()
			if msg.nav {
				cmds = append(cmds, m.navigate(msg.to))
			}
			return m, tea.Batch(cmds...)
		case errors.As(msg.err, &verrs):
			// Shown inline next to each field.
		default:
			m.status = MsgRegistrationFailed
		}
		return m, nil

	case loggedInMsg:
		m.busy = false
		if msg.err != nil {
			return m, nil
		}
		var cmds []tea.Cmd
		cmds = append(cmds, m.showToast(auth.MsgSuccess))
		m.login.DismissNotification()
		if msg.nav {
			cmds = append(cmds, m.navigate(msg.to))
		}
		return m, tea.Batch(cmds...)

	case refreshedMsg:
		m.busy = false
		if msg.err != nil && m.roster.Loading() {
			m.status = MsgLoadFailed
			return m, nil
		}
		m.status = ""
		m.clampSelection()
		return m, nil

	case committedMsg:
		m.busy = false
		if errors.Is(msg.err, roster.ErrDraftIncomplete) {
			m.alert = m.alerts.take()
			return m, nil
		}
		return m, m.takeRosterNotification()

	case deletedMsg:
		m.busy = false
		m.clampSelection()
		// Delete failures are logged by the roster and not shown.
		return m, m.takeRosterNotification()

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) takeRosterNotification() tea.Cmd {
	n := m.roster.Notification()
	if n == "" {
		return nil
	}
	m.roster.DismissNotification()
	m.clampSelection()
	return m.showToast(n)
}

func (m *Model) clampSelection() {
	n := len(m.roster.Students())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}
	if m.busy {
		return m, nil
	}

	switch m.route {
	case route.Register:
		return m.registerKey(msg)
	case route.Login:
		return m.loginKey(msg)
	case route.List:
		return m.listKey(msg)
	}
	return m, nil
}

func (m Model) registerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := types.Fields[m.regFocus]

	switch msg.String() {
	case "tab", "down":
		m.regFocus = (m.regFocus + 1) % len(types.Fields)
		return m, nil
	case "shift+tab", "up":
		m.regFocus = (m.regFocus + len(types.Fields) - 1) % len(types.Fields)
		return m, nil
	case "ctrl+p":
		m.register.TogglePasswordVisibility()
		return m, nil
	case "ctrl+l":
		return m, m.navigate(route.Login)
	case "enter":
		m.status = ""
		m.busy = true
		return m, m.submitRegistration()
	case "left", "right":
		if opts := options(field); opts != nil {
			cur, _ := m.register.Values().Get(field)
			m.setRegister(field, cycle(opts, cur, msg.String() == "right"))
		}
		return m, nil
	}

	if options(field) != nil {
		return m, nil
	}
	cur, _ := m.register.Values().Get(field)
	if next, ok := editText(cur, msg); ok {
		m.setRegister(field, next)
	}
	return m, nil
}

func (m *Model) setRegister(field, value string) {
	if err := m.register.SetField(field, value); err != nil {
		m.log.Error("set registration field", slog.String("error", err.Error()))
	}
}

var loginFields = []string{types.FieldEmail, types.FieldPassword}

func (m Model) loginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		return m, nil
	case "ctrl+r":
		return m, m.navigate(route.Register)
	case "enter":
		m.busy = true
		return m, m.submitLogin()
	}

	field := loginFields[m.loginFocus]
	creds := m.login.Credentials()
	cur := creds.Email
	if field == types.FieldPassword {
		cur = creds.Password
	}
	if next, ok := editText(cur, msg); ok {
		if err := m.login.SetField(field, next); err != nil {
			m.log.Error("set login field", slog.String("error", err.Error()))
		}
	}
	return m, nil
}

func (m Model) listKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingDelete != "" {
		id := m.pendingDelete
		m.pendingDelete = ""
		confirmed := msg.String() == "y" || msg.String() == "Y"
		if confirmed {
			m.busy = true
		}
		return m, m.deleteRecord(id, confirmed)
	}

	if _, editing := m.roster.Draft(); editing {
		return m.editKey(msg)
	}

	students := m.roster.Students()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.busy = true
		return m, m.refresh()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(students)-1 {
			m.selected++
		}
	case "e", "enter":
		if len(students) > 0 {
			m.roster.BeginEdit(students[m.selected])
			m.editFocus = 0
		}
	case "d", "delete":
		if len(students) > 0 {
			m.pendingDelete = students[m.selected].ID
		}
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := editFields[m.editFocus]

	switch msg.String() {
	case "esc":
		m.roster.CancelEdit()
		return m, nil
	case "enter":
		m.busy = true
		return m, m.commitEdit()
	case "tab", "down":
		m.editFocus = (m.editFocus + 1) % len(editFields)
		return m, nil
	case "shift+tab", "up":
		m.editFocus = (m.editFocus + len(editFields) - 1) % len(editFields)
		return m, nil
	}

	draft, _ := m.roster.Draft()
	cur, _ := draft.Get(field)
	if next, ok := editText(cur, msg); ok {
		if err := m.roster.EditField(field, next); err != nil {
			m.log.Error("edit field", slog.String("error", err.Error()))
		}
	}
	return m, nil
}

// options returns the choices for an enumerated field, nil otherwise.
func options(field string) []string {
	switch field {
	case types.FieldGender:
		return types.Genders
	case types.FieldCourse:
		return types.Courses
	}
	return nil
}

// cycle moves to the next (or previous) option, starting from nothing
// selected.
func cycle(opts []string, cur string, forward bool) string {
	i := slices.Index(opts, cur)
	switch {
	case i < 0 && forward:
		return opts[0]
	case i < 0:
		return opts[len(opts)-1]
	case forward:
		return opts[(i+1)%len(opts)]
	default:
		return opts[(i+len(opts)-1)%len(opts)]
	}
}

// editText applies a typing key to value.
func editText(value string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return value + string(msg.Runes), true
	case tea.KeySpace:
		return value + " ", true
	case tea.KeyBackspace:
		r := []rune(value)
		if len(r) == 0 {
			return value, false
		}
		return string(r[:len(r)-1]), true
	}
	return value, false
}
