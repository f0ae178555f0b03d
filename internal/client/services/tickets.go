package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/openticket/openticket/internal/client/client"
	"github.com/openticket/openticket/internal/client/models"
)

var ErrInvalidQuery = errors.New("invalid search query")

// TicketService wraps the ticket endpoints for the dashboard.
type TicketService interface {
	List(ctx context.Context, search string) ([]models.Ticket, error)
	Get(ctx context.Context, id int32) (models.Ticket, []models.Comment, error)
	Create(ctx context.Context, form TicketForm) (models.Ticket, error)
	Delete(ctx context.Context, id int32) error
	AddLabels(ctx context.Context, ticket models.Ticket, labels string) (models.Ticket, error)
	Comment(ctx context.Context, ticketID int32, form CommentForm) (models.Comment, error)
	EditComment(ctx context.Context, ticketID, commentID int32, form CommentForm) (models.Comment, error)
	DeleteComment(ctx context.Context, ticketID, commentID int32) error
	Assign(ctx context.Context, ticketID, userID int32) (models.Assignment, error)
	Unassign(ctx context.Context, ticketID, assignmentID int32) error
}

type ticketService struct {
	client client.Client
}

func NewTicketService(client client.Client) TicketService {
	return &ticketService{client: client}
}

// List returns the tickets matching search, see SearchQuery.
func (s *ticketService) List(ctx context.Context, search string) ([]models.Ticket, error) {
	q, err := SearchQuery(search)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	if q != "" {
		query.Set("q", q)
	}
	return s.client.Tickets(ctx, query)
}

// Get loads a ticket together with its comments.
func (s *ticketService) Get(ctx context.Context, id int32) (models.Ticket, []models.Comment, error) {
	ticket, err := s.client.Ticket(ctx, id)
	if err != nil {
		return models.Ticket{}, nil, err
	}
	comments, err := s.client.Comments(ctx, id)
	if err != nil {
		return models.Ticket{}, nil, fmt.Errorf("loading comments: %w", err)
	}
	return ticket, comments, nil
}

func (s *ticketService) Create(ctx context.Context, form TicketForm) (models.Ticket, error) {
	if err := form.Validate(); err != nil {
		return models.Ticket{}, err
	}
	return s.client.CreateTicket(ctx, form.Request())
}

func (s *ticketService) Delete(ctx context.Context, id int32) error {
	return s.client.DeleteTicket(ctx, id)
}

// AddLabels merges the comma separated labels into the ticket's label set.
// Labels unknown to the backend are created first.
func (s *ticketService) AddLabels(ctx context.Context, ticket models.Ticket, labels string) (models.Ticket, error) {
	add := SplitLabels(labels)
	if len(add) == 0 {
		return ticket, nil
	}

	for _, name := range add {
		existing, err := s.client.Labels(ctx, name)
		if err != nil {
			return models.Ticket{}, err
		}
		if !containsLabel(existing, name) {
			if _, err := s.client.CreateLabel(ctx, models.CreateLabelRequest{Name: name}); err != nil {
				return models.Ticket{}, fmt.Errorf("creating label %q: %w", name, err)
			}
		}
	}

	merged := SplitLabels(strings.Join(append(append([]string{}, ticket.Labels...), add...), ","))
	return s.client.PatchTicket(ctx, ticket.ID, models.PatchTicketRequest{Labels: merged})
}

func containsLabel(labels []models.Label, name string) bool {
	for _, l := range labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

func (s *ticketService) Comment(ctx context.Context, ticketID int32, form CommentForm) (models.Comment, error) {
	if err := form.Validate(); err != nil {
		return models.Comment{}, err
	}
	return s.client.CreateComment(ctx, ticketID, form.Request())
}

// EditComment replaces the content of a comment. The reply target cannot
// change.
func (s *ticketService) EditComment(ctx context.Context, ticketID, commentID int32, form CommentForm) (models.Comment, error) {
	if err := form.Validate(); err != nil {
		return models.Comment{}, err
	}
	return s.client.PatchComment(ctx, ticketID, commentID, models.PatchCommentRequest{Content: form.Request().Content})
}

func (s *ticketService) DeleteComment(ctx context.Context, ticketID, commentID int32) error {
	return s.client.DeleteComment(ctx, ticketID, commentID)
}

func (s *ticketService) Assign(ctx context.Context, ticketID, userID int32) (models.Assignment, error) {
	return s.client.CreateAssignment(ctx, ticketID, models.CreateAssignmentRequest{UserID: userID})
}

func (s *ticketService) Unassign(ctx context.Context, ticketID, assignmentID int32) error {
	return s.client.DeleteAssignment(ctx, ticketID, assignmentID)
}

// SearchQuery normalizes the search prompt into the backend's q syntax.
// Plain words match the title, "label:a,b" matches any of the labels and
// "title:x" is accepted explicitly. Whitespace is collapsed; any other key
// or a token with more than one colon is rejected with ErrInvalidQuery.
func SearchQuery(input string) (string, error) {
	fields := strings.Fields(input)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		parts := strings.Split(field, ":")
		switch len(parts) {
		case 1:
			tokens = append(tokens, field)
		case 2:
			key := strings.ToLower(parts[0])
			if key != "label" && key != "title" {
				return "", fmt.Errorf("%w: unknown key %q", ErrInvalidQuery, parts[0])
			}
			values := SplitLabels(parts[1])
			if len(values) == 0 {
				return "", fmt.Errorf("%w: %q has no value", ErrInvalidQuery, field)
			}
			tokens = append(tokens, key+":"+strings.Join(values, ","))
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidQuery, field)
		}
	}
	return strings.Join(tokens, " "), nil
}
