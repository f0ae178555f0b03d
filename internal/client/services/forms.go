package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/openticket/openticket/internal/client/client"
	"github.com/openticket/openticket/internal/client/models"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// formValidator reports field names by their json tag so local errors look
// like the ones the backend returns.
func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// FormError lists the fields that failed validation. It matches
// client.ErrValidation with errors.Is.
type FormError struct {
	Fields []models.ValidationError
}

func (e *FormError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid form"
	}
	return FieldMessage(e.Fields[0])
}

func (e *FormError) Unwrap() error { return client.ErrValidation }

// Has reports whether field failed any rule.
func (e *FormError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// FieldMessage renders a validation failure for display.
func FieldMessage(v models.ValidationError) string {
	switch v.Validator {
	case "required":
		return fmt.Sprintf("%s is required", v.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", v.Field)
	case "min":
		return fmt.Sprintf("%s is too short", v.Field)
	case "max":
		return fmt.Sprintf("%s is too long", v.Field)
	case "eqfield":
		return fmt.Sprintf("%s does not match", v.Field)
	default:
		return fmt.Sprintf("invalid %s", v.Field)
	}
}

func check(form any) error {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]models.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.ValidationError{Field: fe.Field(), Validator: fe.Tag()})
	}
	return &FormError{Fields: fields}
}

type SetupForm struct {
	Name            string `json:"name" validate:"required,min=3,max=50"`
	Username        string `json:"username" validate:"required,min=3,max=15"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (f SetupForm) Validate() error { return check(f) }

func (f SetupForm) Request() models.SetupRequest {
	return models.SetupRequest{
		Name:     strings.TrimSpace(f.Name),
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (f LoginForm) Validate() error { return check(f) }

func (f LoginForm) Request() models.LoginRequest {
	return models.LoginRequest{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

// TicketForm is the new-ticket panel. Labels is the raw comma separated
// input.
type TicketForm struct {
	Title       string `json:"title" validate:"required,min=3,max=70"`
	Description string `json:"description" validate:"required,min=10"`
	Labels      string `json:"labels"`
}

func (f TicketForm) Validate() error { return check(f) }

func (f TicketForm) Request() models.CreateTicketRequest {
	return models.CreateTicketRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Labels:      SplitLabels(f.Labels),
	}
}

type CommentForm struct {
	Content string `json:"content" validate:"required,min=10"`
	ReplyTo int32  `json:"reply_to"`
}

func (f CommentForm) Validate() error { return check(f) }

func (f CommentForm) Request() models.CreateCommentRequest {
	return models.CreateCommentRequest{Content: strings.TrimSpace(f.Content), ReplyTo: f.ReplyTo}
}

// SplitLabels turns "bug, ui,,bug" into ["bug" "ui"].
func SplitLabels(s string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
