package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Locked is a GORM scope that takes a pessimistic row lock for the
// duration of the surrounding transaction (SELECT ... FOR UPDATE).
func Locked() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}
