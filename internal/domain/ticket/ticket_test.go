package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func newTestTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Printer offline", "The office printer does not respond.", 1, vo.PriorityMedium, 10)
	require.NoError(t, err)
	return tk
}

func newTicketWithStatus(t *testing.T, status vo.TicketStatus) *Ticket {
	t.Helper()
	tk := newTestTicket(t)
	require.NoError(t, tk.SetID(1))

	// Walk the graph into the requested status.
	switch status {
	case vo.StatusOpen:
	case vo.StatusInProgress:
		require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	case vo.StatusResolved:
		require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
		require.NoError(t, tk.ChangeStatus(vo.StatusResolved))
	case vo.StatusClosed:
		require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	}
	return tk
}

func TestNewTicket(t *testing.T) {
	tk := newTestTicket(t)

	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, vo.PriorityMedium, tk.Priority())
	assert.Equal(t, uint(10), tk.CreatorID())
	assert.Equal(t, 1, tk.Version())
	assert.Nil(t, tk.AssigneeID())
	assert.Nil(t, tk.ResolvedAt())
	assert.Nil(t, tk.ClosedAt())
	assert.False(t, tk.CreatedAt().IsZero())
}

func TestNewTicket_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		subject     string
		description string
		categoryID  uint
		priority    vo.Priority
		creatorID   uint
	}{
		{"empty subject", "", "desc", 1, vo.PriorityLow, 1},
		{"subject too long", strings.Repeat("a", 201), "desc", 1, vo.PriorityLow, 1},
		{"empty description", "subject", "", 1, vo.PriorityLow, 1},
		{"description too long", "subject", strings.Repeat("a", 5001), 1, vo.PriorityLow, 1},
		{"zero category", "subject", "desc", 0, vo.PriorityLow, 1},
		{"invalid priority", "subject", "desc", 1, vo.Priority("bogus"), 1},
		{"zero creator", "subject", "desc", 1, vo.PriorityLow, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTicket(tc.subject, tc.description, tc.categoryID, tc.priority, tc.creatorID)
			assert.Error(t, err)
		})
	}
}

func TestTicket_ChangeStatus_StampsResolvedAt(t *testing.T) {
	tk := newTicketWithStatus(t, vo.StatusInProgress)

	require.NoError(t, tk.ChangeStatus(vo.StatusResolved))
	require.NotNil(t, tk.ResolvedAt())
	assert.Nil(t, tk.ClosedAt())
}

func TestTicket_ChangeStatus_StampsClosedAtAndKeepsResolvedAt(t *testing.T) {
	tk := newTicketWithStatus(t, vo.StatusResolved)

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	assert.NotNil(t, tk.ClosedAt())
	assert.NotNil(t, tk.ResolvedAt(), "closing a resolved ticket keeps resolvedAt")
	assert.NoError(t, tk.Validate())
}

func TestTicket_ChangeStatus_ReopenClearsTimestamps(t *testing.T) {
	tk := newTicketWithStatus(t, vo.StatusResolved)
	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))

	require.NoError(t, tk.ChangeStatus(vo.StatusOpen))
	assert.Nil(t, tk.ClosedAt())
	assert.Nil(t, tk.ResolvedAt())
	assert.NoError(t, tk.Validate())
}

func TestTicket_ChangeStatus_BackToInProgressClearsResolvedAt(t *testing.T) {
	tk := newTicketWithStatus(t, vo.StatusResolved)

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Nil(t, tk.ResolvedAt())
}

func TestTicket_ChangeStatus_RejectsInvalidTransitions(t *testing.T) {
	testCases := []struct {
		from vo.TicketStatus
		to   vo.TicketStatus
	}{
		{vo.StatusOpen, vo.StatusResolved},
		{vo.StatusInProgress, vo.StatusOpen},
		{vo.StatusInProgress, vo.StatusClosed},
		{vo.StatusResolved, vo.StatusOpen},
		{vo.StatusClosed, vo.StatusInProgress},
		{vo.StatusClosed, vo.StatusResolved},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+" to "+string(tc.to), func(t *testing.T) {
			tk := newTicketWithStatus(t, tc.from)
			assert.Error(t, tk.ChangeStatus(tc.to))
			assert.Equal(t, tc.from, tk.Status(), "failed transition must not change status")
		})
	}
}

func TestTicket_ChangeStatus_RejectsNoOp(t *testing.T) {
	tk := newTestTicket(t)
	assert.Error(t, tk.ChangeStatus(vo.StatusOpen))
}

func TestTicket_ChangeStatus_BumpsVersion(t *testing.T) {
	tk := newTestTicket(t)
	before := tk.Version()

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Equal(t, before+1, tk.Version())
}

func TestTicket_Touch_BumpsVersion(t *testing.T) {
	tk := newTestTicket(t)
	before := tk.Version()

	tk.Touch()
	assert.Equal(t, before+1, tk.Version())
}

func TestTicket_AssignTo(t *testing.T) {
	tk := newTestTicket(t)

	assignee := uint(7)
	require.NoError(t, tk.AssignTo(&assignee))
	require.NotNil(t, tk.AssigneeID())
	assert.Equal(t, uint(7), *tk.AssigneeID())

	require.NoError(t, tk.AssignTo(nil))
	assert.Nil(t, tk.AssigneeID())

	zero := uint(0)
	assert.Error(t, tk.AssignTo(&zero))
}

func TestTicket_ChangePriority(t *testing.T) {
	tk := newTestTicket(t)

	require.NoError(t, tk.ChangePriority(vo.PriorityUrgent))
	assert.Equal(t, vo.PriorityUrgent, tk.Priority())

	assert.Error(t, tk.ChangePriority(vo.PriorityUrgent), "same priority is rejected")
	assert.Error(t, tk.ChangePriority(vo.Priority("bogus")))
}

func TestTicket_UpdateSubjectAndDescription(t *testing.T) {
	tk := newTestTicket(t)

	require.NoError(t, tk.UpdateSubject("New subject"))
	assert.Equal(t, "New subject", tk.Subject())

	require.NoError(t, tk.UpdateDescription("New description"))
	assert.Equal(t, "New description", tk.Description())

	assert.Error(t, tk.UpdateSubject(""))
	assert.Error(t, tk.UpdateDescription(""))
}

func TestTicket_IsOwnedBy(t *testing.T) {
	tk := newTestTicket(t)
	assert.True(t, tk.IsOwnedBy(10))
	assert.False(t, tk.IsOwnedBy(11))
}

func TestTicket_SetID(t *testing.T) {
	tk := newTestTicket(t)

	require.NoError(t, tk.SetID(5))
	assert.Equal(t, uint(5), tk.ID())
	assert.Error(t, tk.SetID(6), "ID can only be set once")
}

func TestReconstructTicket(t *testing.T) {
	src := newTicketWithStatus(t, vo.StatusClosed)

	tk, err := ReconstructTicket(
		src.ID(), src.Subject(), src.Description(), src.Status(), src.Priority(),
		src.CategoryID(), src.CreatorID(), src.AssigneeID(), src.Version(),
		src.CreatedAt(), src.UpdatedAt(), src.ResolvedAt(), src.ClosedAt(),
	)
	require.NoError(t, err)
	assert.Equal(t, src.Status(), tk.Status())
	assert.NoError(t, tk.Validate())

	_, err = ReconstructTicket(0, "s", "d", vo.StatusOpen, vo.PriorityLow, 1, 1, nil, 1,
		src.CreatedAt(), src.UpdatedAt(), nil, nil)
	assert.Error(t, err)
}
