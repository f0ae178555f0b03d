package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/openticket/openticket/internal/client/services"
	"github.com/openticket/openticket/internal/client/session"
	"github.com/openticket/openticket/internal/logging"
)

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	gate    *session.Gate
	auth    services.AuthService
	tickets services.TicketService
	log     logging.Logger
	keys    KeyMap

	// mounted is the gate state the current branch was built for. The gate
	// can move on a command goroutine, so rendering follows mounted rather
	// than the live state.
	mounted session.State

	spinner spinner.Model
	setup   *form
	login   *form
	dash    *dashboard

	online bool
	width  int
}

func NewModel(ctx context.Context, gate *session.Gate, auth services.AuthService, tickets services.TicketService, log logging.Logger) Model {
	return Model{
		ctx:     session.WithGate(ctx, gate),
		gate:    gate,
		auth:    auth,
		tickets: tickets,
		log:     log.With("component", "tui"),
		keys:    DefaultKeyMap,
		mounted: session.StateLoading,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		online:  true,
		width:   100,
	}
}

func (m Model) Init() tea.Cmd {
	gate, ctx := m.gate, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return gateLoadedMsg{state: gate.Load(ctx)}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case OnlineMsg:
		m.online = msg.Online
		return m, nil

	case spinner.TickMsg:
		if m.mounted != session.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.mounted {
	case session.StateSetupRequired:
		cmd = m.updateSetup(msg)
	case session.StateLoginRequired:
		cmd = m.updateLogin(msg)
	case session.StateAuthenticated:
		cmd = m.updateDashboard(msg)
	default:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	}

	mountCmd := m.mount()
	return m, tea.Batch(cmd, mountCmd)
}

// mount swaps the branch when the gate moved since the last update.
func (m *Model) mount() tea.Cmd {
	state := m.gate.State()
	if state == m.mounted {
		return nil
	}
	m.log.Debug(m.ctx, "mounting branch", "from", m.mounted.String(), "to", state.String())
	m.mounted = state
	m.setup, m.login, m.dash = nil, nil, nil

	switch state {
	case session.StateSetupRequired:
		m.setup = newSetupForm()
	case session.StateLoginRequired:
		m.login = newLoginForm()
	case session.StateAuthenticated:
		user, err := session.MustFromContext(m.ctx).User()
		if err != nil {
			m.log.Error(m.ctx, "authenticated branch without user", "error", err)
		}
		m.dash = newDashboard(m.ctx, m.tickets, m.keys, user)
		return m.dash.load()
	case session.StateError:
		m.log.Error(m.ctx, "status fetch failed", "error", m.gate.Err())
	}
	return nil
}

func (m *Model) updateSetup(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(setupDoneMsg); ok {
		if msg.err != nil {
			m.setup.fail(msg.err)
			return nil
		}
		if err := m.gate.CompleteSetup(); err != nil {
			m.log.Warn(m.ctx, "completing setup", "error", err)
		}
		return nil
	}
	submitted, cmd := m.setup.Update(msg)
	if submitted {
		return submitSetup(m.ctx, m.auth, m.setup)
	}
	return cmd
}

func (m *Model) updateLogin(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(loginDoneMsg); ok {
		if msg.err != nil {
			m.login.fail(msg.err)
			return nil
		}
		if err := m.gate.Authenticate(msg.user); err != nil {
			m.log.Warn(m.ctx, "authenticating", "error", err)
		}
		return nil
	}
	submitted, cmd := m.login.Update(msg)
	if submitted {
		return submitLogin(m.ctx, m.auth, m.login)
	}
	return cmd
}

func (m *Model) updateDashboard(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case logoutDoneMsg:
		if msg.err != nil {
			m.log.Warn(m.ctx, "clearing local session", "error", msg.err)
		}
		if err := m.gate.SignOut(); err != nil {
			m.log.Warn(m.ctx, "signing out", "error", err)
		}
		return nil
	case tea.KeyMsg:
		if m.dash.idle() {
			switch {
			case key.Matches(msg, m.keys.Logout):
				return logout(m.ctx, m.auth)
			case key.Matches(msg, m.keys.Quit):
				return tea.Quit
			}
		}
	}

	cmd := m.dash.Update(msg)
	if m.dash.expired {
		m.dash.expired = false
		m.log.Info(m.ctx, "session rejected by server, signing out")
		return tea.Batch(cmd, logout(m.ctx, m.auth))
	}
	return cmd
}

func (m Model) View() string {
	switch m.mounted {
	case session.StateLoading:
		return m.spinner.View() + " Loading…\n"
	case session.StateSetupRequired:
		return m.header("") + "\n\n" + m.setup.View() + "\n"
	case session.StateLoginRequired:
		return m.header("") + "\n\n" + m.login.View() + "\n"
	case session.StateAuthenticated:
		who := m.dash.user.Name
		if m.dash.user.Role != "" {
			who += " (" + m.dash.user.Role + ")"
		}
		return m.header(who) + "\n\n" + m.dash.View(m.width) + "\n"
	default:
		return m.errorView()
	}
}

func (m Model) header(who string) string {
	parts := []string{headerStyle.Render("Openticket")}
	if who != "" {
		parts = append(parts, who)
	}
	if m.online {
		parts = append(parts, onlineStyle.Render("● online"))
	} else {
		parts = append(parts, offlineStyle.Render("○ offline"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) errorView() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Something went wrong"))
	b.WriteString("\n\n")
	if err := m.gate.Err(); err != nil {
		b.WriteString(errorText(err))
		b.WriteString("\n\n")
	}
	b.WriteString(helpLine(m.keys.Quit))
	b.WriteString("\n")
	return b.String()
}
