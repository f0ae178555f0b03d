package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/openticket/openticket/internal/client/services"
)

func newSetupForm() *form {
	f := newForm("Welcome to Openticket", true,
		fieldSpec{label: "Name", placeholder: "Grace Hopper", limit: 50},
		fieldSpec{label: "Username", placeholder: "grace", limit: 15},
		fieldSpec{label: "Email", placeholder: "grace@example.com"},
		fieldSpec{label: "Password", secret: true},
		fieldSpec{label: "Confirm password", secret: true},
	)
	f.notice = "Create the administrator account to finish the setup."
	f.hint = "tab/enter: next field  enter on last field: create  ctrl+c: quit"
	return f
}

func newLoginForm() *form {
	f := newForm("Sign in", true,
		fieldSpec{label: "Email", placeholder: "you@example.com"},
		fieldSpec{label: "Password", secret: true},
	)
	f.hint = "tab/enter: next field  enter on last field: sign in  ctrl+c: quit"
	return f
}

func submitSetup(ctx context.Context, auth services.AuthService, f *form) tea.Cmd {
	req := services.SetupForm{
		Name:            f.value(0),
		Username:        f.value(1),
		Email:           f.value(2),
		Password:        f.value(3),
		ConfirmPassword: f.value(4),
	}
	return func() tea.Msg {
		_, err := auth.Setup(ctx, req)
		return setupDoneMsg{err: err}
	}
}

func submitLogin(ctx context.Context, auth services.AuthService, f *form) tea.Cmd {
	req := services.LoginForm{Email: f.value(0), Password: f.value(1)}
	return func() tea.Msg {
		user, err := auth.Login(ctx, req)
		return loginDoneMsg{user: user, err: err}
	}
}

func logout(ctx context.Context, auth services.AuthService) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: auth.Logout(ctx)}
	}
}
