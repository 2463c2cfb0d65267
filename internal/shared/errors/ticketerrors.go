package errors

import (
	"fmt"
	"net/http"
)

// Ticket-core specific error types
const (
	ErrorTypeInvalidTransition ErrorType = "invalid_transition"
	ErrorTypeInvalidAssignee   ErrorType = "invalid_assignee"
	ErrorTypeInvalidParent     ErrorType = "invalid_parent"
	ErrorTypeInvalidCategory   ErrorType = "invalid_category"
)

// NewInvalidTransitionError creates an error for an illegal ticket status change
func NewInvalidTransitionError(from, to string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTransition,
		Message: fmt.Sprintf("cannot transition ticket from %s to %s", from, to),
		Code:    http.StatusUnprocessableEntity,
		Details: fmt.Sprintf("from=%s to=%s", from, to),
	}
}

// NewInvalidAssigneeError creates an error for assigning a ticket to a
// user who is not an agent or admin
func NewInvalidAssigneeError(assigneeID uint) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidAssignee,
		Message: "assignee must be an agent or admin",
		Code:    http.StatusUnprocessableEntity,
		Details: fmt.Sprintf("assignee_id=%d", assigneeID),
	}
}

// NewInvalidParentError creates an error for a bad comment parent reference
func NewInvalidParentError(parentID uint, details ...string) *AppError {
	detail := fmt.Sprintf("parent_id=%d", parentID)
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    ErrorTypeInvalidParent,
		Message: "parent comment does not exist on this ticket",
		Code:    http.StatusUnprocessableEntity,
		Details: detail,
	}
}

// NewInvalidCategoryError creates an error for an inactive or unknown category
func NewInvalidCategoryError(categoryID uint) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidCategory,
		Message: "category is inactive or does not exist",
		Code:    http.StatusUnprocessableEntity,
		Details: fmt.Sprintf("category_id=%d", categoryID),
	}
}

// IsInvalidTransitionError checks if the error is an invalid transition error
func IsInvalidTransitionError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeInvalidTransition
}
