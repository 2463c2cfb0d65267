package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/repository"
	tickethandlers "helpdesk/internal/interfaces/http/handlers/ticket"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/interfaces/http/routes"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

// Router wires repositories, use cases and handlers onto a gin engine.
type Router struct {
	engine         *gin.Engine
	ticketHandler  *tickethandlers.TicketHandler
	commentHandler *tickethandlers.CommentHandler
	voteHandler    *tickethandlers.VoteHandler
	authMiddleware *middleware.AuthMiddleware
	cfg            *config.Config
	logger         logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(gormDB *gorm.DB, dispatcher events.EventDispatcher, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	ticketRepo := repository.NewTicketRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	voteRepo := repository.NewVoteRepository(gormDB)
	attachmentRepo := repository.NewAttachmentRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	userDirectory := repository.NewUserDirectory(gormDB)

	txMgr := db.NewTransactionManager(gormDB)
	renderer := markdown.NewMarkdownService()
	editWindow := time.Duration(cfg.Ticket.Comment.EditWindowMinutes) * time.Minute

	createTicketUC := usecases.NewCreateTicketUseCase(ticketRepo, attachmentRepo, categoryRepo, txMgr, dispatcher, log)
	updateTicketUC := usecases.NewUpdateTicketUseCase(ticketRepo, categoryRepo, userDirectory, txMgr, dispatcher, log)
	deleteTicketUC := usecases.NewDeleteTicketUseCase(ticketRepo, log)
	getTicketUC := usecases.NewGetTicketUseCase(ticketRepo, voteRepo, attachmentRepo, renderer, log)
	listTicketsUC := usecases.NewListTicketsUseCase(ticketRepo, renderer, log)
	addCommentUC := usecases.NewAddCommentUseCase(ticketRepo, commentRepo, attachmentRepo, txMgr, dispatcher, log)
	editCommentUC := usecases.NewEditCommentUseCase(commentRepo, ticketRepo, dispatcher, editWindow, log)
	deleteCommentUC := usecases.NewDeleteCommentUseCase(commentRepo, ticketRepo, dispatcher, log)
	listCommentsUC := usecases.NewListCommentsUseCase(ticketRepo, commentRepo, renderer, log)
	toggleVoteUC := usecases.NewToggleVoteUseCase(ticketRepo, voteRepo, txMgr, dispatcher, log)
	getVotesUC := usecases.NewGetTicketVotesUseCase(ticketRepo, voteRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT.Secret)

	return &Router{
		engine:         engine,
		ticketHandler:  tickethandlers.NewTicketHandler(createTicketUC, updateTicketUC, deleteTicketUC, getTicketUC, listTicketsUC),
		commentHandler: tickethandlers.NewCommentHandler(addCommentUC, editCommentUC, deleteCommentUC, listCommentsUC),
		voteHandler:    tickethandlers.NewVoteHandler(toggleVoteUC, getVotesUC),
		authMiddleware: middleware.NewAuthMiddleware(jwtService, log),
		cfg:            cfg,
		logger:         log,
	}
}

// SetupRoutes installs middleware and registers all route groups.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.ErrorHandler())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:  r.ticketHandler,
		CommentHandler: r.commentHandler,
		VoteHandler:    r.voteHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
