package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/query"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.TicketModel{},
		&models.CommentModel{},
		&models.VoteModel{},
		&models.AttachmentModel{},
	)
	require.NoError(t, err)

	return gdb
}

func createTestTicket(t *testing.T, subject string, priority vo.Priority, creatorID uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(subject, "Test description", 1, priority, creatorID)
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_SaveAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("save assigns an id", func(t *testing.T) {
		tk := createTestTicket(t, "Save test", vo.PriorityHigh, 1)

		err := repo.Save(ctx, tk)
		assert.NoError(t, err)
		assert.NotZero(t, tk.ID())
	})

	t.Run("round trip preserves fields", func(t *testing.T) {
		tk := createTestTicket(t, "Round trip", vo.PriorityUrgent, 2)
		require.NoError(t, repo.Save(ctx, tk))

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tk.Subject(), found.Subject())
		assert.Equal(t, tk.Status(), found.Status())
		assert.Equal(t, tk.Priority(), found.Priority())
		assert.Equal(t, tk.CreatorID(), found.CreatorID())
		assert.Equal(t, tk.Version(), found.Version())
	})

	t.Run("missing ticket returns nil without error", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 9999)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTicketRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("updates row when version matches", func(t *testing.T) {
		tk := createTestTicket(t, "Version test", vo.PriorityMedium, 1)
		require.NoError(t, repo.Save(ctx, tk))

		lockedVersion := tk.Version()
		require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))

		err := repo.Update(ctx, tk, lockedVersion)
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusInProgress, found.Status())
		assert.Equal(t, lockedVersion+1, found.Version())
	})

	t.Run("stale version surfaces as conflict", func(t *testing.T) {
		tk := createTestTicket(t, "Stale version", vo.PriorityMedium, 1)
		require.NoError(t, repo.Save(ctx, tk))
		require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))

		err := repo.Update(ctx, tk, 42)
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestTicketRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	votes := NewVoteRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	t.Run("delete removes ticket with comments and votes", func(t *testing.T) {
		tk := createTestTicket(t, "Doomed ticket", vo.PriorityLow, 3)
		require.NoError(t, repo.Save(ctx, tk))

		c, err := ticket.NewComment(tk.ID(), 3, "a comment", nil, false)
		require.NoError(t, err)
		require.NoError(t, comments.Save(ctx, c))

		v, err := ticket.NewVote(tk.ID(), 3, true)
		require.NoError(t, err)
		require.NoError(t, votes.Save(ctx, v))

		require.NoError(t, repo.Delete(ctx, tk.ID()))

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Nil(t, found)

		remaining, err := comments.ListByTicketID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Empty(t, remaining)

		tally, err := votes.TallyByTicketID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Zero(t, tally.Score())
	})

	t.Run("deleting a missing ticket returns not found", func(t *testing.T) {
		err := repo.Delete(ctx, 9999)
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestTicketRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	votes := NewVoteRepository(db)
	ctx := context.Background()

	seed := []struct {
		subject   string
		priority  vo.Priority
		creatorID uint
		status    vo.TicketStatus
	}{
		{"Printer offline in accounting", vo.PriorityHigh, 1, vo.StatusOpen},
		{"VPN drops hourly", vo.PriorityMedium, 1, vo.StatusInProgress},
		{"Password reset request", vo.PriorityLow, 2, vo.StatusOpen},
	}
	var ids []uint
	for _, s := range seed {
		tk := createTestTicket(t, s.subject, s.priority, s.creatorID)
		require.NoError(t, repo.Save(ctx, tk))
		if s.status != vo.StatusOpen {
			locked := tk.Version()
			require.NoError(t, tk.ChangeStatus(s.status))
			require.NoError(t, repo.Update(ctx, tk, locked))
		}
		ids = append(ids, tk.ID())
	}

	t.Run("filter by creator", func(t *testing.T) {
		creatorID := uint(1)
		result, total, err := repo.List(ctx, ticket.TicketFilter{
			BaseFilter: query.NewBaseFilter(),
			CreatorID:  &creatorID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, result, 2)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := vo.StatusInProgress
		result, total, err := repo.List(ctx, ticket.TicketFilter{
			BaseFilter: query.NewBaseFilter(),
			Status:     &status,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, result, 1)
		assert.Equal(t, "VPN drops hourly", result[0].Subject())
	})

	t.Run("search matches subject", func(t *testing.T) {
		result, total, err := repo.List(ctx, ticket.TicketFilter{
			BaseFilter: query.NewBaseFilter(),
			Search:     "printer",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, result, 1)
		assert.Equal(t, ids[0], result[0].ID())
	})

	t.Run("min score filters on live tally", func(t *testing.T) {
		v, err := ticket.NewVote(ids[2], 5, true)
		require.NoError(t, err)
		require.NoError(t, votes.Save(ctx, v))

		minScore := int64(1)
		result, total, err := repo.List(ctx, ticket.TicketFilter{
			BaseFilter: query.NewBaseFilter(),
			MinScore:   &minScore,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, result, 1)
		assert.Equal(t, ids[2], result[0].ID())
	})

	t.Run("pagination slices the result", func(t *testing.T) {
		filter := ticket.TicketFilter{
			BaseFilter: query.NewBaseFilter(query.WithPage(1, 2), query.WithSort("created_at", "asc")),
		}
		page1, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, page1, 2)

		filter.BaseFilter = query.NewBaseFilter(query.WithPage(2, 2), query.WithSort("created_at", "asc"))
		page2, _, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, page2, 1)
		assert.NotEqual(t, page1[0].ID(), page2[0].ID())
	})
}

func TestVoteRepository_UniqueIndex(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	votes := NewVoteRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "Vote target", vo.PriorityMedium, 1)
	require.NoError(t, repo.Save(ctx, tk))

	v1, err := ticket.NewVote(tk.ID(), 7, true)
	require.NoError(t, err)
	require.NoError(t, votes.Save(ctx, v1))

	v2, err := ticket.NewVote(tk.ID(), 7, false)
	require.NoError(t, err)
	err = votes.Save(ctx, v2)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	tally, err := votes.TallyByTicketID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), tally.Upvotes)
	assert.Equal(t, int64(0), tally.Downvotes)
}

func TestCommentRepository_SaveAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "Comment target", vo.PriorityMedium, 1)
	require.NoError(t, repo.Save(ctx, tk))

	root, err := ticket.NewComment(tk.ID(), 1, "root comment", nil, false)
	require.NoError(t, err)
	require.NoError(t, comments.Save(ctx, root))

	rootID := root.ID()
	reply, err := ticket.NewComment(tk.ID(), 2, "a reply", &rootID, true)
	require.NoError(t, err)
	require.NoError(t, comments.Save(ctx, reply))

	listed, err := comments.ListByTicketID(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, listed, 2)

	t.Run("soft delete persists tombstone", func(t *testing.T) {
		require.NoError(t, root.SoftDelete())
		require.NoError(t, comments.Update(ctx, root))

		found, err := comments.GetByID(ctx, root.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.IsDeleted())
	})

	t.Run("edit persists new body and edited time", func(t *testing.T) {
		require.NoError(t, reply.Edit("an updated reply"))
		require.NoError(t, comments.Update(ctx, reply))

		found, err := comments.GetByID(ctx, reply.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "an updated reply", found.Body())
		assert.NotNil(t, found.EditedAt())
	})
}
