package database

import (
	"gorm.io/gorm"
)

// LimitTo applies a row cap to a GORM query; non-positive values leave the
// query unbounded.
func LimitTo(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	}
}
