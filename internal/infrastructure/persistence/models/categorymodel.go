package models

type CategoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (CategoryModel) TableName() string {
	return "ticket_categories"
}

// UserModel is the minimal slice of the user account this service needs:
// identity and role for authorization and assignee validation. Account
// management itself lives in another service.
type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Role      string `gorm:"size:20;not null;default:'end_user'"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// AttachmentModel stores file metadata only; bytes live in external
// storage owned by the attachment service.
type AttachmentModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    *uint  `gorm:"index"`
	CommentID   *uint  `gorm:"index"`
	Filename    string `gorm:"size:255;not null"`
	SizeBytes   int64  `gorm:"not null"`
	ContentType string `gorm:"size:100;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}
