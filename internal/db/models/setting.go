// Package models contains database model definitions.
package models

// Setting represents a named configuration blob stored in the database.
// The invoice settings blob and the active addon set are both stored here.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value []byte `gorm:"type:blob"`
}
