package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
)

func newDeleteCommentUseCase(comments *mockCommentRepo, tickets *mockTicketRepo, publisher *mockPublisher) *DeleteCommentUseCase {
	if tickets == nil {
		tickets = &mockTicketRepo{}
	}
	return NewDeleteCommentUseCase(comments, tickets, publisher, newTestLogger())
}

func TestDeleteComment_AuthorTombstonesOwnComment(t *testing.T) {
	c := persistedComment(t, 1, 1, ownerActor.ID, false)
	comments := commentRepoWith(c)
	var updated *ticket.Comment
	comments.updateFn = func(ctx context.Context, c *ticket.Comment) error {
		updated = c
		return nil
	}
	publisher := &mockPublisher{}
	uc := newDeleteCommentUseCase(comments, nil, publisher)

	result, err := uc.Execute(context.Background(), DeleteCommentCommand{Actor: ownerActor, CommentID: 1})
	require.NoError(t, err)

	assert.Equal(t, uint(1), result.CommentID)
	require.NotNil(t, updated)
	assert.True(t, updated.IsDeleted())
	assert.Equal(t, constants.CommentTombstone, updated.Body())

	evts := publisher.changeEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, ticket.EventCommentDeleted, evts[0].Type)
	assert.Equal(t, "true", evts[0].NewValue)
}

func TestDeleteComment_AdminDeletesAnyComment(t *testing.T) {
	c := persistedComment(t, 1, 1, ownerActor.ID, false)
	uc := newDeleteCommentUseCase(commentRepoWith(c), nil, &mockPublisher{})

	_, err := uc.Execute(context.Background(), DeleteCommentCommand{Actor: adminActor, CommentID: 1})
	require.NoError(t, err)
}

func TestDeleteComment_AgentCannotDeleteOthersComment(t *testing.T) {
	c := persistedComment(t, 1, 1, ownerActor.ID, false)
	uc := newDeleteCommentUseCase(commentRepoWith(c), nil, &mockPublisher{})

	_, err := uc.Execute(context.Background(), DeleteCommentCommand{Actor: agentActor, CommentID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestDeleteComment_AlreadyDeletedReadsAsMissing(t *testing.T) {
	c := persistedComment(t, 1, 1, ownerActor.ID, false)
	require.NoError(t, c.SoftDelete())
	uc := newDeleteCommentUseCase(commentRepoWith(c), nil, &mockPublisher{})

	_, err := uc.Execute(context.Background(), DeleteCommentCommand{Actor: ownerActor, CommentID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
