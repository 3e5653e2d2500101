// Package tui renders the registration, login and student list screens
// in the terminal and routes key presses to the state controllers.
//
// Every backend call runs inside a tea.Cmd; the controllers are safe for
// concurrent use, so the screen keeps rendering while a call is in flight.
package tui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/student-registration/internal/auth"
	"github.com/aanand-mishra/student-registration/internal/form"
	"github.com/aanand-mishra/student-registration/internal/roster"
	"github.com/aanand-mishra/student-registration/internal/route"
	"github.com/aanand-mishra/student-registration/internal/types"
)

// Backend is everything the three screens need from the registration
// backend. *client.Client satisfies it.
type Backend interface {
	form.Creator
	roster.Backend
}

// editFields are the fields the edit dialog exposes. The password is not
// editable from the list.
var editFields = []string{
	types.FieldFullName,
	types.FieldEmail,
	types.FieldPhone,
	types.FieldDOB,
	types.FieldGender,
	types.FieldAddress,
	types.FieldCourse,
}

const defaultToastTTL = 4 * time.Second

// Model is the bubbletea model for the whole client.
type Model struct {
	ctx context.Context
	log *slog.Logger

	register *form.Form
	login    *auth.LoginForm
	roster   *roster.Roster
	nav      *pendingNav
	alerts   *alertBox

	route      route.Route
	regFocus   int
	loginFocus int
	editFocus  int
	selected   int

	// pendingDelete holds the id awaiting a y/n answer.
	pendingDelete types.ID
	// alert is a blocking message; any key dismisses it.
	alert string
	// status is a one-line message on the current screen.
	status string
	busy   bool

	toast    string
	toastID  int
	toastTTL time.Duration
}

// Option configures a Model.
type Option func(*Model)

// WithToastDuration sets how long notifications stay on screen.
func WithToastDuration(d time.Duration) Option {
	return func(m *Model) { m.toastTTL = d }
}

// New builds the model and its controllers. The session starts on the
// registration screen.
func New(ctx context.Context, backend Backend, log *slog.Logger, opts ...Option) Model {
	if log == nil {
		log = slog.Default()
	}
	nav := &pendingNav{}
	alerts := &alertBox{}

	m := Model{
		ctx:      ctx,
		log:      log,
		register: form.New(backend, nav, log),
		login:    auth.NewLoginForm(backend, nav, log),
		roster:   roster.New(backend, alerts, log),
		nav:      nav,
		alerts:   alerts,
		route:    route.Default,
		toastTTL: defaultToastTTL,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Route returns the screen currently shown.
func (m Model) Route() route.Route { return m.route }

// pendingNav collects the navigation a controller requested while a
// command ran, so Update can apply it on the main loop.
type pendingNav struct {
	mu sync.Mutex
	to route.Route
	ok bool
}

func (n *pendingNav) Navigate(to route.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.to, n.ok = to, true
}

func (n *pendingNav) take() (route.Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	to, ok := n.to, n.ok
	n.to, n.ok = "", false
	return to, ok
}

// alertBox is the roster's Prompter; Update moves its message into the
// model once the command that raised it returns.
type alertBox struct {
	mu  sync.Mutex
	msg string
}

func (a *alertBox) Alert(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msg = msg
}

func (a *alertBox) take() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	msg := a.msg
	a.msg = ""
	return msg
}

// Messages produced by commands.
type (
	registeredMsg struct {
		err error
		to  route.Route
		nav bool
	}
	loggedInMsg struct {
		err error
		to  route.Route
		nav bool
	}
	refreshedMsg    struct{ err error }
	committedMsg    struct{ err error }
	deletedMsg      struct{ err error }
	toastExpiredMsg struct{ id int }
)

func (m Model) submitRegistration() tea.Cmd {
	ctx, f, nav := m.ctx, m.register, m.nav
	return func() tea.Msg {
		err := f.Submit(ctx)
		to, ok := nav.take()
		return registeredMsg{err: err, to: to, nav: ok}
	}
}

func (m Model) submitLogin() tea.Cmd {
	ctx, f, nav := m.ctx, m.login, m.nav
	return func() tea.Msg {
		_, err := f.Submit(ctx)
		to, ok := nav.take()
		return loggedInMsg{err: err, to: to, nav: ok}
	}
}

func (m Model) refresh() tea.Cmd {
	ctx, r := m.ctx, m.roster
	return func() tea.Msg {
		return refreshedMsg{err: r.Refresh(ctx)}
	}
}

func (m Model) commitEdit() tea.Cmd {
	ctx, r := m.ctx, m.roster
	return func() tea.Msg {
		return committedMsg{err: r.CommitEdit(ctx)}
	}
}

func (m Model) deleteRecord(id types.ID, confirmed bool) tea.Cmd {
	ctx, r := m.ctx, m.roster
	return func() tea.Msg {
		answer := roster.ConfirmFunc(func(string) bool { return confirmed })
		return deletedMsg{err: r.DeleteRecord(ctx, id, answer)}
	}
}

// showToast displays msg and schedules its removal.
func (m *Model) showToast(msg string) tea.Cmd {
	m.toastID++
	m.toast = msg
	id := m.toastID
	return tea.Tick(m.toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// navigate switches screens. Entering the list fetches it, as mounting
// the list does.
func (m *Model) navigate(to route.Route) tea.Cmd {
	m.route = to
	m.status = ""
	m.regFocus, m.loginFocus, m.editFocus, m.selected = 0, 0, 0, 0
	m.pendingDelete = ""
	m.log.Debug("navigate", slog.String("route", string(to)))

	if to == route.List {
		m.busy = true
		return m.refresh()
	}
	return nil
}
