package mappers

import (
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
)

type CommentMapper interface {
	ToModel(c *ticket.Comment) *models.CommentModel
	ToDomain(model *models.CommentModel) (*ticket.Comment, error)
}

type CommentMapperImpl struct{}

func NewCommentMapper() CommentMapper {
	return &CommentMapperImpl{}
}

func (m *CommentMapperImpl) ToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		Body:       c.Body(),
		ParentID:   c.ParentID(),
		IsInternal: c.IsInternal(),
		Deleted:    c.IsDeleted(),
		CreatedAt:  c.CreatedAt().UnixMilli(),
		EditedAt:   biztime.ToMillisPtr(c.EditedAt()),
	}
}

func (m *CommentMapperImpl) ToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.Body,
		model.ParentID,
		model.IsInternal,
		model.Deleted,
		biztime.FromMillis(model.CreatedAt),
		biztime.FromMillisPtr(model.EditedAt),
	)
}
