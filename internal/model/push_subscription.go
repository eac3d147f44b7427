package model

import (
	"slices"
	"time"
)

// PushSubscription is a browser that wants to hear about collection refreshes.
// An empty Collections list means every collection.
type PushSubscription struct {
	Endpoint    string    `gorm:"primaryKey"`
	P256DH      string    `gorm:"column:p256dh;not null"`
	Auth        string    `gorm:"not null"`
	Collections []string  `gorm:"serializer:json"`
	CreatedAt   time.Time `gorm:"not null"`
}

// Wants reports whether the subscription covers the named collection.
func (p PushSubscription) Wants(collection string) bool {
	return len(p.Collections) == 0 || slices.Contains(p.Collections, collection)
}
