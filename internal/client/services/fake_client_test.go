package services

import (
	"context"
	"net/url"

	"github.com/openticket/openticket/internal/client/client"
	"github.com/openticket/openticket/internal/client/models"
)

// fakeClient implements client.Client for the service tests. Every method
// records its arguments and returns the configured result.
type fakeClient struct {
	token string

	HealthErr error

	StatusRet models.Status
	StatusErr error

	SetupRet  models.Setup
	SetupErr  error
	LastSetup models.SetupRequest

	LoginRet  models.Login
	LoginErr  error
	LastLogin models.LoginRequest

	TicketsRet  []models.Ticket
	TicketsErr  error
	LastTickets url.Values

	TicketRet      models.Ticket
	TicketErr      error
	CommentsRet    []models.Comment
	CommentsErr    error
	CreateRet      models.Ticket
	LastCreate     models.CreateTicketRequest
	LastPatch      models.PatchTicketRequest
	LastPatchID    int32
	DeletedTickets []int32

	LastComment    models.CreateCommentRequest
	LastEdit       models.PatchCommentRequest
	CommentRet     models.Comment
	DeletedComment [2]int32

	LabelsRet     []models.Label
	CreatedLabels []string

	LastAssignment models.CreateAssignmentRequest
	Unassigned     [2]int32
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) SetSessionToken(token string) { f.token = token }
func (f *fakeClient) SessionToken() string         { return f.token }

func (f *fakeClient) Health(ctx context.Context) error { return f.HealthErr }

func (f *fakeClient) Status(ctx context.Context) (models.Status, error) {
	return f.StatusRet, f.StatusErr
}

func (f *fakeClient) Setup(ctx context.Context, req models.SetupRequest) (models.Setup, error) {
	f.LastSetup = req
	return f.SetupRet, f.SetupErr
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (models.Login, error) {
	f.LastLogin = req
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Tickets(ctx context.Context, query url.Values) ([]models.Ticket, error) {
	f.LastTickets = query
	return f.TicketsRet, f.TicketsErr
}

func (f *fakeClient) Ticket(ctx context.Context, id int32) (models.Ticket, error) {
	return f.TicketRet, f.TicketErr
}

func (f *fakeClient) CreateTicket(ctx context.Context, req models.CreateTicketRequest) (models.Ticket, error) {
	f.LastCreate = req
	return f.CreateRet, nil
}

func (f *fakeClient) PatchTicket(ctx context.Context, id int32, req models.PatchTicketRequest) (models.Ticket, error) {
	f.LastPatchID = id
	f.LastPatch = req
	t := f.TicketRet
	t.ID = id
	t.Labels = req.Labels
	return t, nil
}

func (f *fakeClient) DeleteTicket(ctx context.Context, id int32) error {
	f.DeletedTickets = append(f.DeletedTickets, id)
	return nil
}

func (f *fakeClient) Comments(ctx context.Context, ticketID int32) ([]models.Comment, error) {
	return f.CommentsRet, f.CommentsErr
}

func (f *fakeClient) CreateComment(ctx context.Context, ticketID int32, req models.CreateCommentRequest) (models.Comment, error) {
	f.LastComment = req
	return f.CommentRet, nil
}

func (f *fakeClient) PatchComment(ctx context.Context, ticketID, commentID int32, req models.PatchCommentRequest) (models.Comment, error) {
	f.LastEdit = req
	return models.Comment{ID: commentID, Content: req.Content}, nil
}

func (f *fakeClient) DeleteComment(ctx context.Context, ticketID, commentID int32) error {
	f.DeletedComment = [2]int32{ticketID, commentID}
	return nil
}

func (f *fakeClient) Labels(ctx context.Context, name string) ([]models.Label, error) {
	var out []models.Label
	for _, l := range f.LabelsRet {
		if l.Name == name {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeClient) CreateLabel(ctx context.Context, req models.CreateLabelRequest) (models.Label, error) {
	f.CreatedLabels = append(f.CreatedLabels, req.Name)
	return models.Label{ID: len(f.CreatedLabels), Name: req.Name}, nil
}

func (f *fakeClient) CreateAssignment(ctx context.Context, ticketID int32, req models.CreateAssignmentRequest) (models.Assignment, error) {
	f.LastAssignment = req
	return models.Assignment{ID: 1, TicketID: ticketID, UserID: req.UserID}, nil
}

func (f *fakeClient) DeleteAssignment(ctx context.Context, ticketID, assignmentID int32) error {
	f.Unassigned = [2]int32{ticketID, assignmentID}
	return nil
}
