package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
)

func newCreateTicketUseCase(t *testing.T, tickets *mockTicketRepo, attachments *mockAttachmentRepo, categories *mockCategoryResolver, publisher *mockPublisher) *CreateTicketUseCase {
	t.Helper()
	if attachments == nil {
		attachments = &mockAttachmentRepo{}
	}
	if categories == nil {
		categories = &mockCategoryResolver{}
	}
	return NewCreateTicketUseCase(tickets, attachments, categories, newTestTxMgr(t), publisher, newTestLogger())
}

func savingTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{
		saveFn: func(ctx context.Context, tk *ticket.Ticket) error {
			return tk.SetID(1)
		},
	}
}

func TestCreateTicket_Defaults(t *testing.T) {
	publisher := &mockPublisher{}
	uc := newCreateTicketUseCase(t, savingTicketRepo(), nil, nil, publisher)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       ownerActor,
		Subject:     "VPN drops every hour",
		Description: "The tunnel renegotiates and kicks me out.",
		CategoryID:  1,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), result.TicketID)
	assert.Equal(t, "open", result.Status)
	assert.Equal(t, "medium", result.Priority)
	assert.False(t, result.CreatedAt.IsZero())

	evts := publisher.changeEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, ticket.EventTicketCreated, evts[0].Type)
	assert.Equal(t, uint(1), evts[0].TicketID)
	assert.Equal(t, ownerActor.ID, evts[0].TicketOwnerID)
	assert.Equal(t, "open", evts[0].NewValue)
}

func TestCreateTicket_ExplicitPriority(t *testing.T) {
	uc := newCreateTicketUseCase(t, savingTicketRepo(), nil, nil, &mockPublisher{})

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       ownerActor,
		Subject:     "Production database down",
		Description: "All queries time out.",
		CategoryID:  1,
		Priority:    "urgent",
	})
	require.NoError(t, err)
	assert.Equal(t, "urgent", result.Priority)
}

func TestCreateTicket_UnknownPriorityRejected(t *testing.T) {
	uc := newCreateTicketUseCase(t, savingTicketRepo(), nil, nil, &mockPublisher{})

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       ownerActor,
		Subject:     "subject",
		Description: "description",
		CategoryID:  1,
		Priority:    "critical",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateTicket_InactiveCategoryRejected(t *testing.T) {
	categories := &mockCategoryResolver{
		resolveFn: func(ctx context.Context, categoryID uint) (*ticket.CategoryRef, error) {
			return &ticket.CategoryRef{ID: categoryID, Active: false}, nil
		},
	}
	uc := newCreateTicketUseCase(t, savingTicketRepo(), nil, categories, &mockPublisher{})

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       ownerActor,
		Subject:     "subject",
		Description: "description",
		CategoryID:  2,
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInvalidCategory, appErr.Type)
}

func TestCreateTicket_AttachmentsAreSaved(t *testing.T) {
	attachments := &mockAttachmentRepo{}
	uc := newCreateTicketUseCase(t, savingTicketRepo(), attachments, nil, &mockPublisher{})

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       ownerActor,
		Subject:     "subject",
		Description: "description",
		CategoryID:  1,
		Attachments: []ticket.AttachmentRef{
			{Filename: "trace.log", SizeBytes: 512, ContentType: "text/plain"},
			{Filename: "screen.png", SizeBytes: 4096, ContentType: "image/png"},
		},
	})
	require.NoError(t, err)
	require.Len(t, attachments.forTicket, 2)
	assert.Equal(t, "trace.log", attachments.forTicket[0].Filename)
}

func TestCreateTicket_NoEventWhenSaveFails(t *testing.T) {
	tickets := &mockTicketRepo{
		saveFn: func(ctx context.Context, tk *ticket.Ticket) error {
			return assert.AnError
		},
	}
	publisher := &mockPublisher{}
	uc := newCreateTicketUseCase(t, tickets, nil, nil, publisher)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       ownerActor,
		Subject:     "subject",
		Description: "description",
		CategoryID:  1,
	})
	require.Error(t, err)
	assert.Empty(t, publisher.changeEvents())
}
