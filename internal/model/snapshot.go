package model

import "time"

// Snapshot is a serialized copy of the whole entity store, stored under a fixed name.
type Snapshot struct {
	Name      string    `gorm:"primaryKey;size:128"`
	Payload   []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
