package models

import "gorm.io/datatypes"

// AuditLogModel stores change events verbatim. Details carries the old and
// new values as JSON so heterogeneous field types share one column.
type AuditLogModel struct {
	ID        uint           `gorm:"primaryKey"`
	TicketID  uint           `gorm:"not null;index"`
	ActorID   uint           `gorm:"not null;index"`
	Field     string         `gorm:"size:50;not null"`
	Details   datatypes.JSON `gorm:"not null"`
	CreatedAt int64          `gorm:"autoCreateTime:milli;not null;index"`
}

func (AuditLogModel) TableName() string {
	return "ticket_audit_logs"
}
