package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type VoteHandler struct {
	toggleVoteUC usecases.ToggleVoteExecutor
	getVotesUC   usecases.GetTicketVotesExecutor
	logger       logger.Interface
}

func NewVoteHandler(
	toggleVoteUC usecases.ToggleVoteExecutor,
	getVotesUC usecases.GetTicketVotesExecutor,
) *VoteHandler {
	return &VoteHandler{
		toggleVoteUC: toggleVoteUC,
		getVotesUC:   getVotesUC,
		logger:       logger.NewLogger(),
	}
}

// ToggleVote handles POST /tickets/:id/votes/toggle
func (h *VoteHandler) ToggleVote(c *gin.Context) {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ToggleVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for toggle vote", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ToggleVoteCommand{
		Actor:    authorization.ActorFromContext(c),
		TicketID: ticketID,
		IsUpvote: req.Direction == "up",
	}

	result, err := h.toggleVoteUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetVotes handles GET /tickets/:id/votes
func (h *VoteHandler) GetVotes(c *gin.Context) {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetTicketVotesQuery{
		Actor:    authorization.ActorFromContext(c),
		TicketID: ticketID,
	}

	result, err := h.getVotesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
