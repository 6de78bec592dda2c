package models

import "time"

// Document is one row of the remote document store. Collection is the
// partition name; Fields holds the JSON body of the document.
type Document struct {
	Seq        uint      `gorm:"primaryKey"`
	ID         string    `gorm:"size:36;uniqueIndex;not null"`
	Collection string    `gorm:"size:64;index;not null"`
	Fields     string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
