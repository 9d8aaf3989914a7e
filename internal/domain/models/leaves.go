package models

import "time"

// WetLeavesCollection is a batch of wet leaves weighed in at a centra.
type WetLeavesCollection struct {
	ID             string `gorm:"column:wet_leaves_batch_id;primaryKey;type:varchar(36)" json:"wet_leaves_batch_id" bson:"_id"`
	UserID         int64  `gorm:"column:user_id;index" json:"user_id" bson:"user_id"`
	CentralID      int64  `gorm:"column:central_id;index" json:"central_id" bson:"central_id"`
	Date           string `gorm:"column:date;type:varchar(10)" json:"date" bson:"date"`
	Time           string `gorm:"column:time;type:varchar(16)" json:"time" bson:"time"`
	Weight         int    `gorm:"column:weight" json:"weight" bson:"weight"`
	Expired        bool   `gorm:"column:expired;default:false" json:"expired" bson:"expired"`
	ExpirationTime string `gorm:"column:expiration_time;type:varchar(32)" json:"expiration_time" bson:"expiration_time"`
	Timestamps     `bson:",inline"`
}

func (WetLeavesCollection) TableName() string  { return "wet_leaves_collections" }
func (w *WetLeavesCollection) Key() string     { return w.ID }
func (w *WetLeavesCollection) AssignKey(int64) { w.ID = newKey() }

// WetLeavesCollectionCreate is the payload accepted when a collection is logged.
type WetLeavesCollectionCreate struct {
	UserID         int64  `json:"user_id" binding:"required,min=1"`
	CentralID      int64  `json:"central_id" binding:"required,min=1"`
	Date           string `json:"date" binding:"required,datetime=2006-01-02"`
	Time           string `json:"time" binding:"required"`
	Weight         int    `json:"weight" binding:"required,min=1"`
	Expired        bool   `json:"expired"`
	ExpirationTime string `json:"expiration_time" binding:"required"`
}

func (p WetLeavesCollectionCreate) Entity() WetLeavesCollection {
	return WetLeavesCollection{
		UserID:         p.UserID,
		CentralID:      p.CentralID,
		Date:           p.Date,
		Time:           p.Time,
		Weight:         p.Weight,
		Expired:        p.Expired,
		ExpirationTime: p.ExpirationTime,
	}
}

// WetLeavesCollectionUpdate is a partial patch; nil fields are left untouched.
type WetLeavesCollectionUpdate struct {
	UserID         *int64  `json:"user_id" binding:"omitempty,min=1"`
	CentralID      *int64  `json:"central_id" binding:"omitempty,min=1"`
	Date           *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time           *string `json:"time"`
	Weight         *int    `json:"weight" binding:"omitempty,min=1"`
	Expired        *bool   `json:"expired"`
	ExpirationTime *string `json:"expiration_time"`
}

func (p WetLeavesCollectionUpdate) Apply(w *WetLeavesCollection) {
	setIfPresent(&w.UserID, p.UserID)
	setIfPresent(&w.CentralID, p.CentralID)
	setIfPresent(&w.Date, p.Date)
	setIfPresent(&w.Time, p.Time)
	setIfPresent(&w.Weight, p.Weight)
	setIfPresent(&w.Expired, p.Expired)
	setIfPresent(&w.ExpirationTime, p.ExpirationTime)
}

// ProcessedLeaves is a product batch moving through drying and flouring.
type ProcessedLeaves struct {
	ProductID   int64      `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id" bson:"_id"`
	Description string     `gorm:"column:description;type:text" json:"description" bson:"description"`
	DryingID    *string    `gorm:"column:drying_id;type:varchar(36)" json:"drying_id" bson:"drying_id"`
	FlouringID  *string    `gorm:"column:flouring_id;type:varchar(36)" json:"flouring_id" bson:"flouring_id"`
	DriedDate   *time.Time `gorm:"column:dried_date" json:"dried_date" bson:"dried_date"`
	FlouredDate *time.Time `gorm:"column:floured_date" json:"floured_date" bson:"floured_date"`
	Timestamps  `bson:",inline"`
}

func (ProcessedLeaves) TableName() string      { return "processed_leaves" }
func (b *ProcessedLeaves) Key() int64          { return b.ProductID }
func (b *ProcessedLeaves) AssignKey(seq int64) { b.ProductID = seq }

// ProcessedLeavesCreate is the payload accepted when a batch is registered.
type ProcessedLeavesCreate struct {
	Description string     `json:"description" binding:"required"`
	DryingID    *string    `json:"drying_id"`
	FlouringID  *string    `json:"flouring_id"`
	DriedDate   *time.Time `json:"dried_date"`
	FlouredDate *time.Time `json:"floured_date"`
}

func (p ProcessedLeavesCreate) Entity() ProcessedLeaves {
	return ProcessedLeaves{
		Description: p.Description,
		DryingID:    p.DryingID,
		FlouringID:  p.FlouringID,
		DriedDate:   p.DriedDate,
		FlouredDate: p.FlouredDate,
	}
}

// ProcessedLeavesUpdate is a partial patch; absent fields are left untouched
// and an explicit null clears the optional ones.
type ProcessedLeavesUpdate struct {
	Description *string             `json:"description"`
	DryingID    Nullable[string]    `json:"drying_id" binding:"omitempty"`
	FlouringID  Nullable[string]    `json:"flouring_id" binding:"omitempty"`
	DriedDate   Nullable[time.Time] `json:"dried_date" binding:"omitempty"`
	FlouredDate Nullable[time.Time] `json:"floured_date" binding:"omitempty"`
}

func (p ProcessedLeavesUpdate) Apply(b *ProcessedLeaves) {
	setIfPresent(&b.Description, p.Description)
	applyNullable(&b.DryingID, p.DryingID)
	applyNullable(&b.FlouringID, p.FlouringID)
	applyNullable(&b.DriedDate, p.DriedDate)
	applyNullable(&b.FlouredDate, p.FlouredDate)
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
