package tui

import (
	"github.com/openticket/openticket/internal/client/models"
	"github.com/openticket/openticket/internal/client/session"
)

type gateLoadedMsg struct{ state session.State }

type setupDoneMsg struct{ err error }

type loginDoneMsg struct {
	user models.User
	err  error
}

type logoutDoneMsg struct{ err error }

type ticketsLoadedMsg struct {
	tickets []models.Ticket
	err     error
}

type detailLoadedMsg struct {
	ticket   models.Ticket
	comments []models.Comment
	err      error
}

// Panel results carry the form that submitted them, so a result is only
// applied to that form and never to a panel reopened under the same id.

type ticketCreatedMsg struct {
	panelID string
	form    *form
	ticket  models.Ticket
	err     error
}

type commentAddedMsg struct {
	panelID  string
	form     *form
	ticketID int32
	err      error
}

type commentEditedMsg struct {
	panelID  string
	form     *form
	ticketID int32
	comment  models.Comment
	err      error
}

type commentDeletedMsg struct {
	ticketID  int32
	commentID int32
	err       error
}

type labelsAddedMsg struct {
	panelID string
	form    *form
	ticket  models.Ticket
	err     error
}

type assignedMsg struct {
	ticketID   int32
	assignment models.Assignment
	err        error
}

type unassignedMsg struct {
	ticketID int32
	err      error
}

type ticketDeletedMsg struct {
	id  int32
	err error
}

// OnlineMsg reports the result of a background reachability probe.
type OnlineMsg struct {
	Online bool
}
