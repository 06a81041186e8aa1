package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/xavierca1/leadflow/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateAddLeadInput(input AddLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Budget < 0 {
		errors = append(errors, ValidationError{"budget", "must not be negative"})
	}

	if input.Status != "" && !entity.IsValidStatus(input.Status) {
		errors = append(errors, ValidationError{"status", "is not a pipeline stage"})
	}

	if input.Assignee != "" && !entity.IsTeamMember(input.Assignee) {
		errors = append(errors, ValidationError{"assignee", "is not a team member"})
	}

	return errors
}

func ValidateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errors []ValidationError

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errors = append(errors, ValidationError{"name", "must not be blank"})
	}
	if input.Email != nil {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}
	if input.Budget != nil && *input.Budget < 0 {
		errors = append(errors, ValidationError{"budget", "must not be negative"})
	}
	if input.Status != nil && !entity.IsValidStatus(*input.Status) {
		errors = append(errors, ValidationError{"status", "is not a pipeline stage"})
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		errors = append(errors, ValidationError{"score", "must be between 0 and 100"})
	}
	if input.Assignee != nil && *input.Assignee != "" && !entity.IsTeamMember(*input.Assignee) {
		errors = append(errors, ValidationError{"assignee", "is not a team member"})
	}

	return errors
}

func ValidateAddActivityInput(input AddActivityInput) []ValidationError {
	var errors []ValidationError

	if input.Type != "" && !entity.IsValidActivityType(input.Type) {
		errors = append(errors, ValidationError{"type", "is not an activity type"})
	}
	if strings.TrimSpace(input.Description) == "" {
		errors = append(errors, ValidationError{"description", "is required"})
	}

	return errors
}

// validationFailed folds a non-empty error list into the DomainError the
// public operations return.
func validationFailed(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for i, e := range errs {
		if i > 0 {
			msg += ", "
		}
		msg += e.Field + " (" + e.Message + ")"
	}
	return &DomainError{Code: CodeValidationError, Message: msg}
}
