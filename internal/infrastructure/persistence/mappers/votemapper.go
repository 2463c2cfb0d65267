package mappers

import (
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
)

type VoteMapper interface {
	ToModel(v *ticket.Vote) *models.VoteModel
	ToDomain(model *models.VoteModel) (*ticket.Vote, error)
}

type VoteMapperImpl struct{}

func NewVoteMapper() VoteMapper {
	return &VoteMapperImpl{}
}

func (m *VoteMapperImpl) ToModel(v *ticket.Vote) *models.VoteModel {
	return &models.VoteModel{
		ID:        v.ID(),
		TicketID:  v.TicketID(),
		UserID:    v.UserID(),
		IsUpvote:  v.IsUpvote(),
		CreatedAt: v.CreatedAt().UnixMilli(),
		UpdatedAt: v.UpdatedAt().UnixMilli(),
	}
}

func (m *VoteMapperImpl) ToDomain(model *models.VoteModel) (*ticket.Vote, error) {
	return ticket.ReconstructVote(
		model.ID,
		model.TicketID,
		model.UserID,
		model.IsUpvote,
		biztime.FromMillis(model.CreatedAt),
		biztime.FromMillis(model.UpdatedAt),
	)
}
