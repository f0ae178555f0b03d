package tui

import (
	"context"
	"sync"

	"github.com/openticket/openticket/internal/client/models"
	"github.com/openticket/openticket/internal/client/services"
)

type fakeStatus struct {
	mu     sync.Mutex
	calls  int
	status models.Status
	err    error
}

func (f *fakeStatus) Status(ctx context.Context) (models.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.status, f.err
}

type fakeAuth struct {
	setupErr  error
	lastSetup services.SetupForm

	loginUser models.User
	loginErr  error
	lastLogin services.LoginForm

	logoutCalls int
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Status(ctx context.Context) (models.Status, error) { return models.Status{}, nil }

func (f *fakeAuth) Setup(ctx context.Context, form services.SetupForm) (models.Setup, error) {
	f.lastSetup = form
	return models.Setup{ID: 1, Role: "admin"}, f.setupErr
}

func (f *fakeAuth) Login(ctx context.Context, form services.LoginForm) (models.User, error) {
	f.lastLogin = form
	return f.loginUser, f.loginErr
}

func (f *fakeAuth) RestoreSession(ctx context.Context) (bool, error) { return false, nil }

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeAuth) Ping(ctx context.Context) error { return nil }

type fakeTickets struct {
	tickets  []models.Ticket
	listErr  error
	searches []string

	created   services.TicketForm
	createErr error

	comment    services.CommentForm
	commentErr error

	labels  string
	deleted []int32

	edited          services.CommentForm
	deletedComments [][2]int32
	assigned        []int32
	unassigned      [][2]int32
}

var _ services.TicketService = (*fakeTickets)(nil)

func (f *fakeTickets) List(ctx context.Context, search string) ([]models.Ticket, error) {
	f.searches = append(f.searches, search)
	return f.tickets, f.listErr
}

func (f *fakeTickets) Get(ctx context.Context, id int32) (models.Ticket, []models.Comment, error) {
	for _, t := range f.tickets {
		if t.ID == id {
			return t, []models.Comment{{ID: 1, Content: "Looking into it now", CreatedBy: ada}}, nil
		}
	}
	return models.Ticket{}, nil, context.Canceled
}

func (f *fakeTickets) Create(ctx context.Context, form services.TicketForm) (models.Ticket, error) {
	f.created = form
	if f.createErr != nil {
		return models.Ticket{}, f.createErr
	}
	return models.Ticket{ID: 99, Title: form.Title}, nil
}

func (f *fakeTickets) Delete(ctx context.Context, id int32) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTickets) AddLabels(ctx context.Context, ticket models.Ticket, labels string) (models.Ticket, error) {
	f.labels = labels
	ticket.Labels = append(ticket.Labels, services.SplitLabels(labels)...)
	return ticket, nil
}

func (f *fakeTickets) Comment(ctx context.Context, ticketID int32, form services.CommentForm) (models.Comment, error) {
	f.comment = form
	return models.Comment{ID: 2, Content: form.Content}, f.commentErr
}

func (f *fakeTickets) EditComment(ctx context.Context, ticketID, commentID int32, form services.CommentForm) (models.Comment, error) {
	f.edited = form
	return models.Comment{ID: commentID, Content: form.Content, CreatedBy: ada}, nil
}

func (f *fakeTickets) DeleteComment(ctx context.Context, ticketID, commentID int32) error {
	f.deletedComments = append(f.deletedComments, [2]int32{ticketID, commentID})
	return nil
}

func (f *fakeTickets) Assign(ctx context.Context, ticketID, userID int32) (models.Assignment, error) {
	f.assigned = append(f.assigned, userID)
	return models.Assignment{ID: 40 + ticketID, TicketID: ticketID, UserID: userID}, nil
}

func (f *fakeTickets) Unassign(ctx context.Context, ticketID, assignmentID int32) error {
	f.unassigned = append(f.unassigned, [2]int32{ticketID, assignmentID})
	return nil
}
