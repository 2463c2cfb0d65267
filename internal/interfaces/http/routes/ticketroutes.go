package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "helpdesk/internal/interfaces/http/handlers/ticket"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	CommentHandler *tickethandlers.CommentHandler
	VoteHandler    *tickethandlers.VoteHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)

		// Specific sub-resources (must come BEFORE /:id to avoid conflicts)
		tickets.POST("/:id/comments",
			config.CommentHandler.AddComment)
		tickets.GET("/:id/comments",
			config.CommentHandler.ListComments)
		tickets.POST("/:id/votes/toggle",
			config.VoteHandler.ToggleVote)
		tickets.GET("/:id/votes",
			config.VoteHandler.GetVotes)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.PATCH("/:id",
			config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			authorization.RequireAdmin(),
			config.TicketHandler.DeleteTicket)
	}

	comments := engine.Group("/comments")
	comments.Use(config.AuthMiddleware.RequireAuth())
	{
		comments.PATCH("/:id",
			config.CommentHandler.EditComment)
		comments.DELETE("/:id",
			config.CommentHandler.DeleteComment)
	}
}
