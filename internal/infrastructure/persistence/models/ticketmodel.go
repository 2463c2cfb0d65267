package models

type TicketModel struct {
	ID          uint   `gorm:"primaryKey"`
	Subject     string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	Status      string `gorm:"size:20;not null;index"`
	Priority    string `gorm:"size:20;not null;index"`
	CategoryID  uint   `gorm:"not null;index"`
	CreatorID   uint   `gorm:"not null;index"`
	AssigneeID  *uint  `gorm:"index"`
	Version     int    `gorm:"not null;default:1"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null;index"`
	ResolvedAt  *int64
	ClosedAt    *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type CommentModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	AuthorID   uint   `gorm:"not null;index"`
	Body       string `gorm:"type:text;not null"`
	ParentID   *uint  `gorm:"index"`
	IsInternal bool   `gorm:"not null;default:false"`
	Deleted    bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
	EditedAt   *int64
}

func (CommentModel) TableName() string {
	return "ticket_comments"
}

// VoteModel carries the composite unique index that makes one vote per
// user per ticket a storage-level guarantee.
type VoteModel struct {
	ID        uint  `gorm:"primaryKey"`
	TicketID  uint  `gorm:"not null;uniqueIndex:idx_ticket_user_vote"`
	UserID    uint  `gorm:"not null;uniqueIndex:idx_ticket_user_vote"`
	IsUpvote  bool  `gorm:"not null"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (VoteModel) TableName() string {
	return "ticket_votes"
}
