package usecases

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
)

// newTestTxMgr returns a transaction manager over an in-memory database.
// The repositories under test are mocks, so the database only hosts the
// transaction scope and is never queried.
func newTestTxMgr(t *testing.T) *db.TransactionManager {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db.NewTransactionManager(gormDB)
}

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- function-field mocks ---

type mockTicketRepo struct {
	saveFn         func(ctx context.Context, t *ticket.Ticket) error
	updateFn       func(ctx context.Context, t *ticket.Ticket, expectedVersion int) error
	deleteFn       func(ctx context.Context, ticketID uint) error
	getByIDFn      func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	getForUpdateFn func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	listFn         func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
}

func (m *mockTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.saveFn == nil {
		return nil
	}
	return m.saveFn(ctx, t)
}

func (m *mockTicketRepo) Update(ctx context.Context, t *ticket.Ticket, expectedVersion int) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, t, expectedVersion)
}

func (m *mockTicketRepo) Delete(ctx context.Context, ticketID uint) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, ticketID)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.getByIDFn == nil {
		return nil, nil
	}
	return m.getByIDFn(ctx, ticketID)
}

func (m *mockTicketRepo) GetByIDForUpdate(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.getForUpdateFn == nil {
		return nil, nil
	}
	return m.getForUpdateFn(ctx, ticketID)
}

func (m *mockTicketRepo) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.listFn == nil {
		return nil, 0, nil
	}
	return m.listFn(ctx, filter)
}

type mockCommentRepo struct {
	saveFn           func(ctx context.Context, c *ticket.Comment) error
	updateFn         func(ctx context.Context, c *ticket.Comment) error
	getByIDFn        func(ctx context.Context, commentID uint) (*ticket.Comment, error)
	listByTicketIDFn func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
}

func (m *mockCommentRepo) Save(ctx context.Context, c *ticket.Comment) error {
	if m.saveFn == nil {
		return c.SetID(1)
	}
	return m.saveFn(ctx, c)
}

func (m *mockCommentRepo) Update(ctx context.Context, c *ticket.Comment) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, c)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, commentID uint) (*ticket.Comment, error) {
	if m.getByIDFn == nil {
		return nil, nil
	}
	return m.getByIDFn(ctx, commentID)
}

func (m *mockCommentRepo) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.listByTicketIDFn == nil {
		return nil, nil
	}
	return m.listByTicketIDFn(ctx, ticketID)
}

type mockVoteRepo struct {
	saveFn         func(ctx context.Context, v *ticket.Vote) error
	updateFn       func(ctx context.Context, v *ticket.Vote) error
	deleteFn       func(ctx context.Context, voteID uint) error
	getForUpdateFn func(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error)
	getFn          func(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error)
	tallyFn        func(ctx context.Context, ticketID uint) (ticket.VoteTally, error)
}

func (m *mockVoteRepo) Save(ctx context.Context, v *ticket.Vote) error {
	if m.saveFn == nil {
		return v.SetID(1)
	}
	return m.saveFn(ctx, v)
}

func (m *mockVoteRepo) Update(ctx context.Context, v *ticket.Vote) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, v)
}

func (m *mockVoteRepo) Delete(ctx context.Context, voteID uint) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, voteID)
}

func (m *mockVoteRepo) GetByTicketAndUserForUpdate(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error) {
	if m.getForUpdateFn == nil {
		return nil, nil
	}
	return m.getForUpdateFn(ctx, ticketID, userID)
}

func (m *mockVoteRepo) GetByTicketAndUser(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error) {
	if m.getFn == nil {
		return nil, nil
	}
	return m.getFn(ctx, ticketID, userID)
}

func (m *mockVoteRepo) TallyByTicketID(ctx context.Context, ticketID uint) (ticket.VoteTally, error) {
	if m.tallyFn == nil {
		return ticket.VoteTally{}, nil
	}
	return m.tallyFn(ctx, ticketID)
}

type mockCategoryResolver struct {
	resolveFn func(ctx context.Context, categoryID uint) (*ticket.CategoryRef, error)
}

func (m *mockCategoryResolver) Resolve(ctx context.Context, categoryID uint) (*ticket.CategoryRef, error) {
	if m.resolveFn == nil {
		return &ticket.CategoryRef{ID: categoryID, Active: true}, nil
	}
	return m.resolveFn(ctx, categoryID)
}

type mockUserDirectory struct {
	roleOfFn func(ctx context.Context, userID uint) (authorization.UserRole, error)
}

func (m *mockUserDirectory) RoleOf(ctx context.Context, userID uint) (authorization.UserRole, error) {
	if m.roleOfFn == nil {
		return authorization.RoleAgent, nil
	}
	return m.roleOfFn(ctx, userID)
}

type mockAttachmentRepo struct {
	forTicket  []ticket.AttachmentRef
	forComment []ticket.AttachmentRef
	listFn     func(ctx context.Context, ticketID uint) ([]ticket.AttachmentRef, error)
}

func (m *mockAttachmentRepo) SaveForTicket(ctx context.Context, ticketID uint, ref ticket.AttachmentRef) error {
	m.forTicket = append(m.forTicket, ref)
	return nil
}

func (m *mockAttachmentRepo) SaveForComment(ctx context.Context, commentID uint, ref ticket.AttachmentRef) error {
	m.forComment = append(m.forComment, ref)
	return nil
}

func (m *mockAttachmentRepo) ListByTicketID(ctx context.Context, ticketID uint) ([]ticket.AttachmentRef, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, ticketID)
}

// mockPublisher records published events so tests can assert on
// emit-after-commit ordering and payloads.
type mockPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evts...)
	return nil
}

func (m *mockPublisher) changeEvents() []ticket.ChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ticket.ChangeEvent, 0, len(m.events))
	for _, e := range m.events {
		if ce, ok := e.(ticket.ChangeEvent); ok {
			out = append(out, ce)
		}
	}
	return out
}

// --- shared fixtures ---

var (
	ownerActor = authorization.Actor{ID: 10, Role: authorization.RoleEndUser}
	otherUser  = authorization.Actor{ID: 11, Role: authorization.RoleEndUser}
	agentActor = authorization.Actor{ID: 20, Role: authorization.RoleAgent}
	adminActor = authorization.Actor{ID: 30, Role: authorization.RoleAdmin}
)

func persistedTicket(t *testing.T, id uint, creatorID uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket("Printer offline", "The printer does not respond.", 1, "medium", creatorID)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(id))
	return tk
}

func persistedComment(t *testing.T, id uint, ticketID, authorID uint, isInternal bool) *ticket.Comment {
	t.Helper()
	c, err := ticket.NewComment(ticketID, authorID, "a comment", nil, isInternal)
	require.NoError(t, err)
	require.NoError(t, c.SetID(id))
	return c
}

func strPtr(s string) *string {
	return &s
}

func uintPtr(v uint) *uint {
	return &v
}
