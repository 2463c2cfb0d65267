package ticket

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/interfaces/http/handlers/testutil"
	"helpdesk/internal/shared/errors"
)

type mockToggleVoteUC struct {
	result *usecases.ToggleVoteResult
	err    error
	cmd    usecases.ToggleVoteCommand
}

func (m *mockToggleVoteUC) Execute(_ context.Context, cmd usecases.ToggleVoteCommand) (*usecases.ToggleVoteResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetTicketVotesUC struct {
	result *ticketdto.VoteTallyDTO
	err    error
}

func (m *mockGetTicketVotesUC) Execute(_ context.Context, _ usecases.GetTicketVotesQuery) (*ticketdto.VoteTallyDTO, error) {
	return m.result, m.err
}

func newTestVoteHandler(toggleUC usecases.ToggleVoteExecutor, getUC usecases.GetTicketVotesExecutor) *VoteHandler {
	return NewVoteHandler(toggleUC, getUC)
}

// =====================================================================
// TestVoteHandler_ToggleVote
// =====================================================================

func TestVoteHandler_ToggleVote_Success(t *testing.T) {
	mockUC := &mockToggleVoteUC{
		result: &usecases.ToggleVoteResult{
			TicketID: 1,
			State:    ticket.VoteStateUpvote,
			Tally:    ticketdto.VoteTallyDTO{Upvotes: 1, Score: 1, MyVote: "upvote"},
		},
	}
	handler := newTestVoteHandler(mockUC, nil)

	reqBody := ToggleVoteRequest{Direction: "up"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/votes/toggle", reqBody)
	testutil.SetAuthContext(c, 10, "end_user")
	testutil.SetURLParam(c, "id", "1")

	handler.ToggleVote(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), mockUC.cmd.TicketID)
	assert.True(t, mockUC.cmd.IsUpvote)
}

func TestVoteHandler_ToggleVote_DownDirection(t *testing.T) {
	mockUC := &mockToggleVoteUC{
		result: &usecases.ToggleVoteResult{TicketID: 1, State: ticket.VoteStateDownvote},
	}
	handler := newTestVoteHandler(mockUC, nil)

	reqBody := ToggleVoteRequest{Direction: "down"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/votes/toggle", reqBody)
	testutil.SetAuthContext(c, 10, "end_user")
	testutil.SetURLParam(c, "id", "1")

	handler.ToggleVote(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, mockUC.cmd.IsUpvote)
}

func TestVoteHandler_ToggleVote_InvalidDirection(t *testing.T) {
	handler := newTestVoteHandler(&mockToggleVoteUC{}, nil)

	reqBody := map[string]string{"direction": "sideways"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/votes/toggle", reqBody)
	testutil.SetAuthContext(c, 10, "end_user")
	testutil.SetURLParam(c, "id", "1")

	handler.ToggleVote(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteHandler_ToggleVote_Conflict(t *testing.T) {
	mockUC := &mockToggleVoteUC{
		err: errors.NewConflictError("vote already recorded, retry the toggle"),
	}
	handler := newTestVoteHandler(mockUC, nil)

	reqBody := ToggleVoteRequest{Direction: "up"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/votes/toggle", reqBody)
	testutil.SetAuthContext(c, 10, "end_user")
	testutil.SetURLParam(c, "id", "1")

	handler.ToggleVote(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// =====================================================================
// TestVoteHandler_GetVotes
// =====================================================================

func TestVoteHandler_GetVotes_Success(t *testing.T) {
	mockUC := &mockGetTicketVotesUC{
		result: &ticketdto.VoteTallyDTO{Upvotes: 5, Downvotes: 2, Score: 3, MyVote: "none"},
	}
	handler := newTestVoteHandler(nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/1/votes", nil)
	testutil.SetAuthContext(c, 10, "end_user")
	testutil.SetURLParam(c, "id", "1")

	handler.GetVotes(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestVoteHandler_GetVotes_NotFound(t *testing.T) {
	mockUC := &mockGetTicketVotesUC{
		err: errors.NewNotFoundError("ticket 1 not found"),
	}
	handler := newTestVoteHandler(nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/1/votes", nil)
	testutil.SetAuthContext(c, 11, "end_user")
	testutil.SetURLParam(c, "id", "1")

	handler.GetVotes(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
