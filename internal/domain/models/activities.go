package models

// DryingActivity is one logged run of a drying machine.
type DryingActivity struct {
	DryingID        string `gorm:"column:drying_id;primaryKey;type:varchar(36)" json:"drying_id" bson:"_id"`
	UserID          int64  `gorm:"column:user_id;index" json:"user_id" bson:"user_id"`
	CentralID       int64  `gorm:"column:central_id;index" json:"central_id" bson:"central_id"`
	Date            string `gorm:"column:date;type:varchar(10)" json:"date" bson:"date"`
	Time            string `gorm:"column:time;type:varchar(16)" json:"time" bson:"time"`
	Weight          int    `gorm:"column:weight" json:"weight" bson:"weight"`
	DryingMachineID string `gorm:"column:drying_machine_id;type:varchar(36);index" json:"drying_machine_id" bson:"drying_machine_id"`
	Timestamps      `bson:",inline"`
}

func (DryingActivity) TableName() string  { return "drying_activities" }
func (a *DryingActivity) Key() string     { return a.DryingID }
func (a *DryingActivity) AssignKey(int64) { a.DryingID = newKey() }

type DryingActivityCreate struct {
	UserID          int64  `json:"user_id" binding:"required,min=1"`
	CentralID       int64  `json:"central_id" binding:"required,min=1"`
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string `json:"time" binding:"required"`
	Weight          int    `json:"weight" binding:"required,min=1"`
	DryingMachineID string `json:"drying_machine_id" binding:"required"`
}

func (p DryingActivityCreate) Entity() DryingActivity {
	return DryingActivity{
		UserID:          p.UserID,
		CentralID:       p.CentralID,
		Date:            p.Date,
		Time:            p.Time,
		Weight:          p.Weight,
		DryingMachineID: p.DryingMachineID,
	}
}

type DryingActivityUpdate struct {
	UserID          *int64  `json:"user_id" binding:"omitempty,min=1"`
	CentralID       *int64  `json:"central_id" binding:"omitempty,min=1"`
	Date            *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time            *string `json:"time"`
	Weight          *int    `json:"weight" binding:"omitempty,min=1"`
	DryingMachineID *string `json:"drying_machine_id"`
}

func (p DryingActivityUpdate) Apply(a *DryingActivity) {
	setIfPresent(&a.UserID, p.UserID)
	setIfPresent(&a.CentralID, p.CentralID)
	setIfPresent(&a.Date, p.Date)
	setIfPresent(&a.Time, p.Time)
	setIfPresent(&a.Weight, p.Weight)
	setIfPresent(&a.DryingMachineID, p.DryingMachineID)
}

// FlouringActivity is one logged run of a flouring machine over a drying output.
type FlouringActivity struct {
	FlouringID        string `gorm:"column:flouring_id;primaryKey;type:varchar(36)" json:"flouring_id" bson:"_id"`
	UserID            int64  `gorm:"column:user_id;index" json:"user_id" bson:"user_id"`
	CentralID         int64  `gorm:"column:central_id;index" json:"central_id" bson:"central_id"`
	Date              string `gorm:"column:date;type:varchar(10)" json:"date" bson:"date"`
	Time              string `gorm:"column:time;type:varchar(16)" json:"time" bson:"time"`
	Weight            int    `gorm:"column:weight" json:"weight" bson:"weight"`
	FlouringMachineID string `gorm:"column:flouring_machine_id;type:varchar(36);index" json:"flouring_machine_id" bson:"flouring_machine_id"`
	DryingID          string `gorm:"column:drying_id;type:varchar(36);index" json:"drying_id" bson:"drying_id"`
	Timestamps        `bson:",inline"`
}

func (FlouringActivity) TableName() string  { return "flouring_activities" }
func (a *FlouringActivity) Key() string     { return a.FlouringID }
func (a *FlouringActivity) AssignKey(int64) { a.FlouringID = newKey() }

type FlouringActivityCreate struct {
	UserID            int64  `json:"user_id" binding:"required,min=1"`
	CentralID         int64  `json:"central_id" binding:"required,min=1"`
	Date              string `json:"date" binding:"required,datetime=2006-01-02"`
	Time              string `json:"time" binding:"required"`
	Weight            int    `json:"weight" binding:"required,min=1"`
	FlouringMachineID string `json:"flouring_machine_id" binding:"required"`
	DryingID          string `json:"drying_id" binding:"required"`
}

func (p FlouringActivityCreate) Entity() FlouringActivity {
	return FlouringActivity{
		UserID:            p.UserID,
		CentralID:         p.CentralID,
		Date:              p.Date,
		Time:              p.Time,
		Weight:            p.Weight,
		FlouringMachineID: p.FlouringMachineID,
		DryingID:          p.DryingID,
	}
}

type FlouringActivityUpdate struct {
	UserID            *int64  `json:"user_id" binding:"omitempty,min=1"`
	CentralID         *int64  `json:"central_id" binding:"omitempty,min=1"`
	Date              *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time              *string `json:"time"`
	Weight            *int    `json:"weight" binding:"omitempty,min=1"`
	FlouringMachineID *string `json:"flouring_machine_id"`
	DryingID          *string `json:"drying_id"`
}

func (p FlouringActivityUpdate) Apply(a *FlouringActivity) {
	setIfPresent(&a.UserID, p.UserID)
	setIfPresent(&a.CentralID, p.CentralID)
	setIfPresent(&a.Date, p.Date)
	setIfPresent(&a.Time, p.Time)
	setIfPresent(&a.Weight, p.Weight)
	setIfPresent(&a.FlouringMachineID, p.FlouringMachineID)
	setIfPresent(&a.DryingID, p.DryingID)
}
