package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds an exclusive row lock to the query. Sqlite has no
// FOR UPDATE syntax and serializes writers at the connection level anyway,
// so the clause is only emitted for mysql.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "mysql" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return db
}
