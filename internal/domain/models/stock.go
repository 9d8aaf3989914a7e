package models

// Stock is a per-location inventory snapshot of one product.
type Stock struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id" bson:"_id"`
	ProductID  int64  `gorm:"column:product_id;index" json:"product_id" bson:"product_id"`
	Weight     int    `gorm:"column:weight" json:"weight" bson:"weight"`
	LocationID *int64 `gorm:"column:location_id;index" json:"location_id" bson:"location_id"`
	Timestamps `bson:",inline"`
}

func (Stock) TableName() string      { return "stocks" }
func (s *Stock) Key() int64          { return s.ID }
func (s *Stock) AssignKey(seq int64) { s.ID = seq }

type StockCreate struct {
	ProductID  int64  `json:"product_id" binding:"required,min=1"`
	Weight     int    `json:"weight" binding:"min=0"`
	LocationID *int64 `json:"location_id" binding:"omitempty,min=1"`
}

func (p StockCreate) Entity() Stock {
	return Stock{ProductID: p.ProductID, Weight: p.Weight, LocationID: p.LocationID}
}

type StockUpdate struct {
	ProductID  *int64          `json:"product_id" binding:"omitempty,min=1"`
	Weight     *int            `json:"weight" binding:"omitempty,min=0"`
	LocationID Nullable[int64] `json:"location_id" binding:"omitempty,min=1"`
}

func (p StockUpdate) Apply(s *Stock) {
	setIfPresent(&s.ProductID, p.ProductID)
	setIfPresent(&s.Weight, p.Weight)
	applyNullable(&s.LocationID, p.LocationID)
}
