package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type CommentHandler struct {
	addCommentUC    usecases.AddCommentExecutor
	editCommentUC   usecases.EditCommentExecutor
	deleteCommentUC usecases.DeleteCommentExecutor
	listCommentsUC  usecases.ListCommentsExecutor
	logger          logger.Interface
}

func NewCommentHandler(
	addCommentUC usecases.AddCommentExecutor,
	editCommentUC usecases.EditCommentExecutor,
	deleteCommentUC usecases.DeleteCommentExecutor,
	listCommentsUC usecases.ListCommentsExecutor,
) *CommentHandler {
	return &CommentHandler{
		addCommentUC:    addCommentUC,
		editCommentUC:   editCommentUC,
		deleteCommentUC: deleteCommentUC,
		listCommentsUC:  listCommentsUC,
		logger:          logger.NewLogger(),
	}
}

// AddComment handles POST /tickets/:id/comments
func (h *CommentHandler) AddComment(c *gin.Context) {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	actor := authorization.ActorFromContext(c)

	result, err := h.addCommentUC.Execute(c.Request.Context(), req.ToCommand(actor, ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// ListComments handles GET /tickets/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.ListCommentsQuery{
		Actor:    authorization.ActorFromContext(c),
		TicketID: ticketID,
	}

	result, err := h.listCommentsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// EditComment handles PATCH /comments/:id
func (h *CommentHandler) EditComment(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for edit comment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.EditCommentCommand{
		Actor:     authorization.ActorFromContext(c),
		CommentID: commentID,
		Body:      req.Body,
	}

	result, err := h.editCommentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated successfully", result)
}

// DeleteComment handles DELETE /comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteCommentCommand{
		Actor:     authorization.ActorFromContext(c),
		CommentID: commentID,
	}

	if _, err := h.deleteCommentUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
