package models

// Expedition is an outbound batch of packages tracked to a destination.
type Expedition struct {
	ExpeditionID             int64  `gorm:"column:expedition_id;primaryKey;autoIncrement" json:"expedition_id" bson:"_id"`
	EstimatedArrival         string `gorm:"column:estimated_arrival;type:varchar(32)" json:"estimated_arrival" bson:"estimated_arrival"`
	TotalPackages            int    `gorm:"column:total_packages" json:"total_packages" bson:"total_packages"`
	ExpeditionDate           string `gorm:"column:expedition_date;type:varchar(32)" json:"expedition_date" bson:"expedition_date"`
	ExpeditionServiceDetails string `gorm:"column:expedition_service_details;type:text" json:"expedition_service_details" bson:"expedition_service_details"`
	Destination              string `gorm:"column:destination;type:varchar(255)" json:"destination" bson:"destination"`
	CentralID                int64  `gorm:"column:central_id;index" json:"central_id" bson:"central_id"`
	Timestamps               `bson:",inline"`
}

func (Expedition) TableName() string      { return "expeditions" }
func (e *Expedition) Key() int64          { return e.ExpeditionID }
func (e *Expedition) AssignKey(seq int64) { e.ExpeditionID = seq }

type ExpeditionCreate struct {
	EstimatedArrival         string `json:"estimated_arrival" binding:"required"`
	TotalPackages            int    `json:"total_packages" binding:"required,min=1"`
	ExpeditionDate           string `json:"expedition_date" binding:"required,datetime=2006-01-02"`
	ExpeditionServiceDetails string `json:"expedition_service_details" binding:"required"`
	Destination              string `json:"destination" binding:"required"`
	CentralID                int64  `json:"central_id" binding:"required,min=1"`
}

func (p ExpeditionCreate) Entity() Expedition {
	return Expedition{
		EstimatedArrival:         p.EstimatedArrival,
		TotalPackages:            p.TotalPackages,
		ExpeditionDate:           p.ExpeditionDate,
		ExpeditionServiceDetails: p.ExpeditionServiceDetails,
		Destination:              p.Destination,
		CentralID:                p.CentralID,
	}
}

type ExpeditionUpdate struct {
	EstimatedArrival         *string `json:"estimated_arrival"`
	TotalPackages            *int    `json:"total_packages" binding:"omitempty,min=1"`
	ExpeditionDate           *string `json:"expedition_date" binding:"omitempty,datetime=2006-01-02"`
	ExpeditionServiceDetails *string `json:"expedition_service_details"`
	Destination              *string `json:"destination"`
	CentralID                *int64  `json:"central_id" binding:"omitempty,min=1"`
}

func (p ExpeditionUpdate) Apply(e *Expedition) {
	setIfPresent(&e.EstimatedArrival, p.EstimatedArrival)
	setIfPresent(&e.TotalPackages, p.TotalPackages)
	setIfPresent(&e.ExpeditionDate, p.ExpeditionDate)
	setIfPresent(&e.ExpeditionServiceDetails, p.ExpeditionServiceDetails)
	setIfPresent(&e.Destination, p.Destination)
	setIfPresent(&e.CentralID, p.CentralID)
}

// ReceivedPackage is a package of an expedition checked in at a warehouse.
type ReceivedPackage struct {
	PackageID            int64  `gorm:"column:package_id;primaryKey;autoIncrement" json:"package_id" bson:"_id"`
	ExpeditionID         int64  `gorm:"column:expedition_id;index" json:"expedition_id" bson:"expedition_id"`
	UserID               int64  `gorm:"column:user_id;index" json:"user_id" bson:"user_id"`
	PackageType          string `gorm:"column:package_type;type:varchar(64)" json:"package_type" bson:"package_type"`
	ReceivedDate         string `gorm:"column:received_date;type:varchar(32)" json:"received_date" bson:"received_date"`
	WarehouseDestination string `gorm:"column:warehouse_destination;type:varchar(255)" json:"warehouse_destination" bson:"warehouse_destination"`
	Timestamps           `bson:",inline"`
}

func (ReceivedPackage) TableName() string      { return "received_packages" }
func (r *ReceivedPackage) Key() int64          { return r.PackageID }
func (r *ReceivedPackage) AssignKey(seq int64) { r.PackageID = seq }

type ReceivedPackageCreate struct {
	ExpeditionID         int64  `json:"expedition_id" binding:"required,min=1"`
	UserID               int64  `json:"user_id" binding:"required,min=1"`
	PackageType          string `json:"package_type" binding:"required"`
	ReceivedDate         string `json:"received_date" binding:"required,datetime=2006-01-02"`
	WarehouseDestination string `json:"warehouse_destination" binding:"required"`
}

func (p ReceivedPackageCreate) Entity() ReceivedPackage {
	return ReceivedPackage{
		ExpeditionID:         p.ExpeditionID,
		UserID:               p.UserID,
		PackageType:          p.PackageType,
		ReceivedDate:         p.ReceivedDate,
		WarehouseDestination: p.WarehouseDestination,
	}
}

type ReceivedPackageUpdate struct {
	ExpeditionID         *int64  `json:"expedition_id" binding:"omitempty,min=1"`
	UserID               *int64  `json:"user_id" binding:"omitempty,min=1"`
	PackageType          *string `json:"package_type"`
	ReceivedDate         *string `json:"received_date" binding:"omitempty,datetime=2006-01-02"`
	WarehouseDestination *string `json:"warehouse_destination"`
}

func (p ReceivedPackageUpdate) Apply(r *ReceivedPackage) {
	setIfPresent(&r.ExpeditionID, p.ExpeditionID)
	setIfPresent(&r.UserID, p.UserID)
	setIfPresent(&r.PackageType, p.PackageType)
	setIfPresent(&r.ReceivedDate, p.ReceivedDate)
	setIfPresent(&r.WarehouseDestination, p.WarehouseDestination)
}

// PackageType is a catalogue entry for the kinds of packages an expedition carries.
type PackageType struct {
	PackageTypeID int64  `gorm:"column:package_type_id;primaryKey;autoIncrement" json:"package_type_id" bson:"_id"`
	Description   string `gorm:"column:description;type:varchar(255)" json:"description" bson:"description"`
	Timestamps    `bson:",inline"`
}

func (PackageType) TableName() string      { return "package_types" }
func (t *PackageType) Key() int64          { return t.PackageTypeID }
func (t *PackageType) AssignKey(seq int64) { t.PackageTypeID = seq }

type PackageTypeCreate struct {
	Description string `json:"description" binding:"required"`
}

func (p PackageTypeCreate) Entity() PackageType { return PackageType{Description: p.Description} }

type PackageTypeUpdate struct {
	Description *string `json:"description"`
}

func (p PackageTypeUpdate) Apply(t *PackageType) { setIfPresent(&t.Description, p.Description) }
