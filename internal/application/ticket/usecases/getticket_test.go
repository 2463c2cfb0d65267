package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/services/markdown"
)

func newGetTicketUseCase(tickets *mockTicketRepo, votes *mockVoteRepo, attachments *mockAttachmentRepo) *GetTicketUseCase {
	if votes == nil {
		votes = &mockVoteRepo{}
	}
	if attachments == nil {
		attachments = &mockAttachmentRepo{}
	}
	return NewGetTicketUseCase(tickets, votes, attachments, markdown.NewMarkdownService(), newTestLogger())
}

func TestGetTicket_OwnerSeesRenderedTicket(t *testing.T) {
	tk := persistedTicket(t, 1, ownerActor.ID)
	votes := &mockVoteRepo{
		tallyFn: func(ctx context.Context, ticketID uint) (ticket.VoteTally, error) {
			return ticket.VoteTally{Upvotes: 3, Downvotes: 1}, nil
		},
		getFn: func(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error) {
			return existingVote(t, ticketID, userID, true), nil
		},
	}
	attachments := &mockAttachmentRepo{
		listFn: func(ctx context.Context, ticketID uint) ([]ticket.AttachmentRef, error) {
			return []ticket.AttachmentRef{{ID: 7, Filename: "trace.log", SizeBytes: 512, ContentType: "text/plain"}}, nil
		},
	}
	uc := newGetTicketUseCase(ticketRepoWith(tk), votes, attachments)

	result, err := uc.Execute(context.Background(), GetTicketQuery{Actor: ownerActor, TicketID: 1})
	require.NoError(t, err)

	assert.Equal(t, uint(1), result.ID)
	assert.Equal(t, "Printer offline", result.Subject)
	assert.Equal(t, "open", result.Status)
	assert.NotEmpty(t, result.DescriptionHTML)
	assert.Equal(t, int64(3), result.Votes.Upvotes)
	assert.Equal(t, int64(2), result.Votes.Score)
	assert.Equal(t, "upvote", result.Votes.MyVote)
	require.Len(t, result.Attachments, 1)
	assert.Equal(t, "trace.log", result.Attachments[0].Filename)
}

func TestGetTicket_NoVoteReadsAsNone(t *testing.T) {
	tk := persistedTicket(t, 1, ownerActor.ID)
	uc := newGetTicketUseCase(ticketRepoWith(tk), nil, nil)

	result, err := uc.Execute(context.Background(), GetTicketQuery{Actor: ownerActor, TicketID: 1})
	require.NoError(t, err)
	assert.Equal(t, string(ticket.VoteStateNone), result.Votes.MyVote)
}

func TestGetTicket_StaffSeesAnyTicket(t *testing.T) {
	tk := persistedTicket(t, 1, ownerActor.ID)
	uc := newGetTicketUseCase(ticketRepoWith(tk), nil, nil)

	_, err := uc.Execute(context.Background(), GetTicketQuery{Actor: agentActor, TicketID: 1})
	require.NoError(t, err)
}

func TestGetTicket_UnviewableTicketReadsAsMissing(t *testing.T) {
	tk := persistedTicket(t, 1, ownerActor.ID)
	uc := newGetTicketUseCase(ticketRepoWith(tk), nil, nil)

	_, err := uc.Execute(context.Background(), GetTicketQuery{Actor: otherUser, TicketID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
