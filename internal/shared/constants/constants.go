// Package constants defines shared application constants.
package constants

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Gin context keys set by the auth middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

// Field length limits for ticket content
const (
	MaxSubjectLength     = 200
	MaxDescriptionLength = 5000
	MaxCommentLength     = 5000
)

// CommentTombstone replaces the body of a soft-deleted comment. The row is
// kept so descendant replies stay attached to the thread.
const CommentTombstone = "[deleted]"
