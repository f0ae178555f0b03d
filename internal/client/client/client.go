package client

import (
	"context"
	"net/url"

	"github.com/openticket/openticket/internal/client/models"
)

// Client is the backend contract used by the client services.
type Client interface {
	SetSessionToken(token string)
	SessionToken() string

	Health(ctx context.Context) error
	Status(ctx context.Context) (models.Status, error)
	Setup(ctx context.Context, req models.SetupRequest) (models.Setup, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Login, error)

	Tickets(ctx context.Context, query url.Values) ([]models.Ticket, error)
	Ticket(ctx context.Context, id int32) (models.Ticket, error)
	CreateTicket(ctx context.Context, req models.CreateTicketRequest) (models.Ticket, error)
	PatchTicket(ctx context.Context, id int32, req models.PatchTicketRequest) (models.Ticket, error)
	DeleteTicket(ctx context.Context, id int32) error

	Comments(ctx context.Context, ticketID int32) ([]models.Comment, error)
	CreateComment(ctx context.Context, ticketID int32, req models.CreateCommentRequest) (models.Comment, error)
	PatchComment(ctx context.Context, ticketID, commentID int32, req models.PatchCommentRequest) (models.Comment, error)
	DeleteComment(ctx context.Context, ticketID, commentID int32) error

	Labels(ctx context.Context, name string) ([]models.Label, error)
	CreateLabel(ctx context.Context, req models.CreateLabelRequest) (models.Label, error)

	CreateAssignment(ctx context.Context, ticketID int32, req models.CreateAssignmentRequest) (models.Assignment, error)
	DeleteAssignment(ctx context.Context, ticketID, assignmentID int32) error
}
