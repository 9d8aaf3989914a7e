package models

import "time"

// Known shipment statuses. The set is open: PUT may store any string.
const (
	ShipmentPending         = "pending"
	ShipmentConfirmed       = "confirmed"
	ShipmentIssue           = "issue"
	ShipmentRescaled        = "rescaled"
	ShipmentPickupScheduled = "pickup_scheduled"
)

// ShipmentEvent is one entry of a shipment's history.
type ShipmentEvent struct {
	Action string    `json:"action" bson:"action"`
	Status string    `json:"status" bson:"status"`
	Note   string    `json:"note,omitempty" bson:"note,omitempty"`
	At     time.Time `json:"at" bson:"at"`
}

// Shipment moves a processed batch between sites.
type Shipment struct {
	ID               string          `gorm:"column:id;primaryKey;type:varchar(36)" json:"id" bson:"_id"`
	BatchID          string          `gorm:"column:batch_id;type:varchar(64);index" json:"batch_id" bson:"batch_id"`
	Description      *string         `gorm:"column:description;type:text" json:"description" bson:"description"`
	Status           string          `gorm:"column:status;type:varchar(32);index" json:"status" bson:"status"`
	Weight           *float64        `gorm:"column:weight" json:"weight" bson:"weight"`
	IssueDescription *string         `gorm:"column:issue_description;type:text" json:"issue_description" bson:"issue_description"`
	PickupTime       *time.Time      `gorm:"column:pickup_time" json:"pickup_time" bson:"pickup_time"`
	PickupLocation   *string         `gorm:"column:pickup_location;type:varchar(255)" json:"pickup_location" bson:"pickup_location"`
	History          []ShipmentEvent `gorm:"column:history;serializer:json;type:text" json:"history" bson:"history"`
	Timestamps       `bson:",inline"`
}

func (Shipment) TableName() string  { return "shipments" }
func (s *Shipment) Key() string     { return s.ID }
func (s *Shipment) AssignKey(int64) { s.ID = newKey() }

// Confirm records the arrival weight.
func (s *Shipment) Confirm(weight float64, at time.Time) {
	s.Weight = &weight
	s.transition("confirm", ShipmentConfirmed, "", at)
}

// ReportIssue records a problem found with the shipment.
func (s *Shipment) ReportIssue(description string, at time.Time) {
	s.IssueDescription = &description
	s.transition("report_issue", ShipmentIssue, description, at)
}

// Rescale replaces the weight after a re-weigh.
func (s *Shipment) Rescale(weight float64, at time.Time) {
	s.Weight = &weight
	s.transition("rescale", ShipmentRescaled, "", at)
}

// SchedulePickup sets when and where the shipment is collected.
func (s *Shipment) SchedulePickup(pickupTime time.Time, location string, at time.Time) {
	s.PickupTime = &pickupTime
	s.PickupLocation = &location
	s.transition("schedule_pickup", ShipmentPickupScheduled, location, at)
}

func (s *Shipment) transition(action, status, note string, at time.Time) {
	s.Status = status
	s.History = append(s.History, ShipmentEvent{
		Action: action,
		Status: status,
		Note:   note,
		At:     at.UTC(),
	})
}

type ShipmentCreate struct {
	BatchID          string   `json:"batch_id" binding:"required"`
	Description      *string  `json:"description"`
	Status           *string  `json:"status"`
	Weight           *float64 `json:"weight" binding:"omitempty,gt=0"`
	IssueDescription *string  `json:"issue_description"`
}

func (p ShipmentCreate) Entity() Shipment {
	status := ShipmentPending
	if p.Status != nil && *p.Status != "" {
		status = *p.Status
	}
	return Shipment{
		BatchID:          p.BatchID,
		Description:      p.Description,
		Status:           status,
		Weight:           p.Weight,
		IssueDescription: p.IssueDescription,
		History:          []ShipmentEvent{},
	}
}

// ShipmentUpdate patches a shipment. A null clears the optional text and weight.
type ShipmentUpdate struct {
	BatchID          *string           `json:"batch_id"`
	Description      Nullable[string]  `json:"description" binding:"omitempty"`
	Status           *string           `json:"status"`
	Weight           Nullable[float64] `json:"weight" binding:"omitempty,gt=0"`
	IssueDescription Nullable[string]  `json:"issue_description" binding:"omitempty"`
}

func (p ShipmentUpdate) Apply(s *Shipment) {
	setIfPresent(&s.BatchID, p.BatchID)
	setIfPresent(&s.Status, p.Status)
	applyNullable(&s.Description, p.Description)
	applyNullable(&s.Weight, p.Weight)
	applyNullable(&s.IssueDescription, p.IssueDescription)
}

// ShipmentConfirmation is the body of POST /shipments/{id}/confirm.
type ShipmentConfirmation struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
}

// ShipmentIssueReport is the body of POST /shipments/{id}/report.
type ShipmentIssueReport struct {
	Description string `json:"description" binding:"required"`
}

// ShipmentRescale is the body of PUT /shipments/{id}/rescale.
type ShipmentRescale struct {
	NewWeight float64 `json:"new_weight" binding:"required,gt=0"`
}

// ShipmentPickupSchedule is the body of POST /shipments/schedule-pickup.
type ShipmentPickupSchedule struct {
	ShipmentID string    `json:"shipment_id" binding:"required"`
	PickupTime time.Time `json:"pickup_time" binding:"required"`
	Location   string    `json:"location" binding:"required"`
}
