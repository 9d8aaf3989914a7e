package models

// Contact is the person-in-charge block shared by harbor guards, warehouses and users.
type Contact struct {
	PICName string  `gorm:"column:pic_name;type:varchar(100);not null" json:"pic_name" bson:"pic_name"`
	Email   string  `gorm:"column:email;type:varchar(254);not null" json:"email" bson:"email"`
	Phone   *string `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty" bson:"phone,omitempty"`
}

// ContactCreate validates a new contact block.
type ContactCreate struct {
	PICName string  `json:"pic_name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
}

func (p ContactCreate) contact() Contact {
	return Contact{PICName: p.PICName, Email: p.Email, Phone: p.Phone}
}

// ContactUpdate is a partial patch of a contact block. A null phone clears it.
type ContactUpdate struct {
	PICName *string          `json:"pic_name"`
	Email   *string          `json:"email" binding:"omitempty,email"`
	Phone   Nullable[string] `json:"phone" binding:"omitempty,max=20"`
}

func (p ContactUpdate) apply(c *Contact) {
	setIfPresent(&c.PICName, p.PICName)
	setIfPresent(&c.Email, p.Email)
	applyNullable(&c.Phone, p.Phone)
}

// HarborGuard performs custody checks at the harbor.
type HarborGuard struct {
	ID         int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id" bson:"_id"`
	Contact    `bson:",inline"`
	Timestamps `bson:",inline"`
}

func (HarborGuard) TableName() string      { return "harbor_guards" }
func (h *HarborGuard) Key() int64          { return h.ID }
func (h *HarborGuard) AssignKey(seq int64) { h.ID = seq }

type HarborGuardCreate struct{ ContactCreate }

func (p HarborGuardCreate) Entity() HarborGuard { return HarborGuard{Contact: p.contact()} }

type HarborGuardUpdate struct{ ContactUpdate }

func (p HarborGuardUpdate) Apply(h *HarborGuard) { p.apply(&h.Contact) }

// Warehouse is a storage location receiving packages.
type Warehouse struct {
	ID         int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id" bson:"_id"`
	Contact    `bson:",inline"`
	Timestamps `bson:",inline"`
}

func (Warehouse) TableName() string      { return "warehouses" }
func (w *Warehouse) Key() int64          { return w.ID }
func (w *Warehouse) AssignKey(seq int64) { w.ID = seq }

type WarehouseCreate struct{ ContactCreate }

func (p WarehouseCreate) Entity() Warehouse { return Warehouse{Contact: p.contact()} }

type WarehouseUpdate struct{ ContactUpdate }

func (p WarehouseUpdate) Apply(w *Warehouse) { p.apply(&w.Contact) }

// User is an admin or field operator referenced by activities.
type User struct {
	ID         int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id" bson:"_id"`
	Contact    `bson:",inline"`
	Timestamps `bson:",inline"`
}

func (User) TableName() string      { return "users" }
func (u *User) Key() int64          { return u.ID }
func (u *User) AssignKey(seq int64) { u.ID = seq }

type UserCreate struct{ ContactCreate }

func (p UserCreate) Entity() User { return User{Contact: p.contact()} }

type UserUpdate struct{ ContactUpdate }

func (p UserUpdate) Apply(u *User) { p.apply(&u.Contact) }
