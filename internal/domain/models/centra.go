package models

// Centra is a regional processing site. It owns machines and receives collections.
type Centra struct {
	CentralID             int64  `gorm:"column:central_id;primaryKey;autoIncrement" json:"central_id" bson:"_id"`
	Address               string `gorm:"column:address;type:text" json:"address" bson:"address"`
	PICName               string `gorm:"column:pic_name;type:varchar(100)" json:"pic_name" bson:"pic_name"`
	Email                 string `gorm:"column:email;type:varchar(254)" json:"email" bson:"email"`
	Phone                 string `gorm:"column:phone;type:varchar(20)" json:"phone" bson:"phone"`
	DryingMachineStatus   string `gorm:"column:drying_machine_status;type:varchar(32)" json:"drying_machine_status" bson:"drying_machine_status"`
	FlouringMachineStatus string `gorm:"column:flouring_machine_status;type:varchar(32)" json:"flouring_machine_status" bson:"flouring_machine_status"`
	Timestamps            `bson:",inline"`
}

func (Centra) TableName() string      { return "centras" }
func (c *Centra) Key() int64          { return c.CentralID }
func (c *Centra) AssignKey(seq int64) { c.CentralID = seq }

type CentraCreate struct {
	Address               string `json:"address" binding:"required"`
	PICName               string `json:"pic_name" binding:"required"`
	Email                 string `json:"email" binding:"required,email"`
	Phone                 string `json:"phone" binding:"required,max=20"`
	DryingMachineStatus   string `json:"drying_machine_status"`
	FlouringMachineStatus string `json:"flouring_machine_status"`
}

func (p CentraCreate) Entity() Centra {
	return Centra{
		Address:               p.Address,
		PICName:               p.PICName,
		Email:                 p.Email,
		Phone:                 p.Phone,
		DryingMachineStatus:   p.DryingMachineStatus,
		FlouringMachineStatus: p.FlouringMachineStatus,
	}
}

type CentraUpdate struct {
	Address               *string `json:"address"`
	PICName               *string `json:"pic_name"`
	Email                 *string `json:"email" binding:"omitempty,email"`
	Phone                 *string `json:"phone" binding:"omitempty,max=20"`
	DryingMachineStatus   *string `json:"drying_machine_status"`
	FlouringMachineStatus *string `json:"flouring_machine_status"`
}

func (p CentraUpdate) Apply(c *Centra) {
	setIfPresent(&c.Address, p.Address)
	setIfPresent(&c.PICName, p.PICName)
	setIfPresent(&c.Email, p.Email)
	setIfPresent(&c.Phone, p.Phone)
	setIfPresent(&c.DryingMachineStatus, p.DryingMachineStatus)
	setIfPresent(&c.FlouringMachineStatus, p.FlouringMachineStatus)
}
