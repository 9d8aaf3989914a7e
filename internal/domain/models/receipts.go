package models

// PackageReceipt acknowledges a received package and its accepted weight.
type PackageReceipt struct {
	ReceiptID    int64  `gorm:"column:receipt_id;primaryKey;autoIncrement" json:"receipt_id" bson:"_id"`
	UserID       int64  `gorm:"column:user_id;index" json:"user_id" bson:"user_id"`
	PackageID    int64  `gorm:"column:package_id;index" json:"package_id" bson:"package_id"`
	TotalWeight  int    `gorm:"column:total_weight" json:"total_weight" bson:"total_weight"`
	TimeAccepted string `gorm:"column:time_accepted;type:varchar(32)" json:"time_accepted" bson:"time_accepted"`
	Note         string `gorm:"column:note;type:text" json:"note" bson:"note"`
	Date         string `gorm:"column:date;type:varchar(10)" json:"date" bson:"date"`
	Timestamps   `bson:",inline"`
}

func (PackageReceipt) TableName() string      { return "package_receipts" }
func (r *PackageReceipt) Key() int64          { return r.ReceiptID }
func (r *PackageReceipt) AssignKey(seq int64) { r.ReceiptID = seq }

type PackageReceiptCreate struct {
	UserID       int64  `json:"user_id" binding:"required,min=1"`
	PackageID    int64  `json:"package_id" binding:"required,min=1"`
	TotalWeight  int    `json:"total_weight" binding:"required,min=1"`
	TimeAccepted string `json:"time_accepted" binding:"required"`
	Note         string `json:"note"`
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
}

func (p PackageReceiptCreate) Entity() PackageReceipt {
	return PackageReceipt{
		UserID:       p.UserID,
		PackageID:    p.PackageID,
		TotalWeight:  p.TotalWeight,
		TimeAccepted: p.TimeAccepted,
		Note:         p.Note,
		Date:         p.Date,
	}
}

type PackageReceiptUpdate struct {
	UserID       *int64  `json:"user_id" binding:"omitempty,min=1"`
	PackageID    *int64  `json:"package_id" binding:"omitempty,min=1"`
	TotalWeight  *int    `json:"total_weight" binding:"omitempty,min=1"`
	TimeAccepted *string `json:"time_accepted"`
	Note         *string `json:"note"`
	Date         *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

func (p PackageReceiptUpdate) Apply(r *PackageReceipt) {
	setIfPresent(&r.UserID, p.UserID)
	setIfPresent(&r.PackageID, p.PackageID)
	setIfPresent(&r.TotalWeight, p.TotalWeight)
	setIfPresent(&r.TimeAccepted, p.TimeAccepted)
	setIfPresent(&r.Note, p.Note)
	setIfPresent(&r.Date, p.Date)
}

// ProductReceipt records the rescaled weight of one product inside a package receipt.
type ProductReceipt struct {
	ProductReceiptID int64 `gorm:"column:product_receipt_id;primaryKey;autoIncrement" json:"product_receipt_id" bson:"_id"`
	ProductID        int64 `gorm:"column:product_id;index" json:"product_id" bson:"product_id"`
	ReceiptID        int64 `gorm:"column:receipt_id;index" json:"receipt_id" bson:"receipt_id"`
	RescaledWeight   int   `gorm:"column:rescaled_weight" json:"rescaled_weight" bson:"rescaled_weight"`
	Timestamps       `bson:",inline"`
}

func (ProductReceipt) TableName() string      { return "product_receipts" }
func (r *ProductReceipt) Key() int64          { return r.ProductReceiptID }
func (r *ProductReceipt) AssignKey(seq int64) { r.ProductReceiptID = seq }

type ProductReceiptCreate struct {
	ProductID      int64 `json:"product_id" binding:"required,min=1"`
	ReceiptID      int64 `json:"receipt_id" binding:"required,min=1"`
	RescaledWeight int   `json:"rescaled_weight" binding:"required,min=1"`
}

func (p ProductReceiptCreate) Entity() ProductReceipt {
	return ProductReceipt{
		ProductID:      p.ProductID,
		ReceiptID:      p.ReceiptID,
		RescaledWeight: p.RescaledWeight,
	}
}

type ProductReceiptUpdate struct {
	ProductID      *int64 `json:"product_id" binding:"omitempty,min=1"`
	ReceiptID      *int64 `json:"receipt_id" binding:"omitempty,min=1"`
	RescaledWeight *int   `json:"rescaled_weight" binding:"omitempty,min=1"`
}

func (p ProductReceiptUpdate) Apply(r *ProductReceipt) {
	setIfPresent(&r.ProductID, p.ProductID)
	setIfPresent(&r.ReceiptID, p.ReceiptID)
	setIfPresent(&r.RescaledWeight, p.RescaledWeight)
}
