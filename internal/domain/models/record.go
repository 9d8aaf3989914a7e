package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by every persisted entity. K is the entity's key type.
//
// AssignKey replaces whatever key the record carries with a store-assigned one:
// integer keyed records take seq (zero lets the database pick), string keyed
// records always draw a fresh UUID.
type Record[K comparable] interface {
	Key() K
	AssignKey(seq int64)
	Stamp(now time.Time)
	TableName() string
}

// Timestamps is embedded by every entity.
type Timestamps struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at" bson:"updated_at"`
}

// Stamp sets the creation time once and the update time on every call.
func (t *Timestamps) Stamp(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

func newKey() string {
	return uuid.NewString()
}

// LastUpdated reports the time of the latest write.
func (t Timestamps) LastUpdated() time.Time {
	return t.UpdatedAt
}
