package mappers

import (
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		Subject:     t.Subject(),
		Description: t.Description(),
		Status:      t.Status().String(),
		Priority:    t.Priority().String(),
		CategoryID:  t.CategoryID(),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		Version:     t.Version(),
		CreatedAt:   t.CreatedAt().UnixMilli(),
		UpdatedAt:   t.UpdatedAt().UnixMilli(),
		ResolvedAt:  biztime.ToMillisPtr(t.ResolvedAt()),
		ClosedAt:    biztime.ToMillisPtr(t.ClosedAt()),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, err
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, err
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Subject,
		model.Description,
		status,
		priority,
		model.CategoryID,
		model.CreatorID,
		model.AssigneeID,
		model.Version,
		biztime.FromMillis(model.CreatedAt),
		biztime.FromMillis(model.UpdatedAt),
		biztime.FromMillisPtr(model.ResolvedAt),
		biztime.FromMillisPtr(model.ClosedAt),
	)
}
