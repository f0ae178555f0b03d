package models

type Ticket struct {
	ID          int32    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Status      string   `json:"status,omitempty"`
	CreatedBy   User     `json:"created_by"`
}

type CreateTicketRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Labels      []string `json:"labels,omitempty"`
}

// PatchTicketRequest only carries the fields to change; empty fields are
// left untouched by the backend.
type PatchTicketRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

type Comment struct {
	ID        int32  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	ReplyTo   int32  `json:"reply_to,omitempty"`
	CreatedBy User   `json:"created_by"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
	ReplyTo int32  `json:"reply_to,omitempty"`
}

type PatchCommentRequest struct {
	Content string `json:"content"`
}

type Label struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CreateLabelRequest struct {
	Name string `json:"name"`
}

type Assignment struct {
	ID       int32 `json:"id"`
	TicketID int32 `json:"ticket_id"`
	UserID   int32 `json:"user_id"`
}

type CreateAssignmentRequest struct {
	UserID int32 `json:"user_id"`
}
