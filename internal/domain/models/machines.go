package models

import "fmt"

// MachineStatus is the run state of a drying or flouring machine.
type MachineStatus string

const (
	MachineIdle    MachineStatus = "idle"
	MachineRunning MachineStatus = "running"
)

var (
	// ErrMachineRunning is returned when starting a machine that already runs.
	ErrMachineRunning = fmt.Errorf("%w: machine could not be started", ErrInvalidTransition)
	// ErrMachineIdle is returned when stopping a machine that is not running.
	ErrMachineIdle = fmt.Errorf("%w: machine could not be stopped", ErrInvalidTransition)
)

// MachineState holds the idle/running toggle shared by both machine kinds.
type MachineState struct {
	Status MachineStatus `gorm:"column:status;type:varchar(16);not null;default:idle" json:"status" bson:"status"`
}

// Start moves an idle machine to running.
func (m *MachineState) Start() error {
	if m.Status == MachineRunning {
		return ErrMachineRunning
	}
	m.Status = MachineRunning
	return nil
}

// Stop moves a running machine back to idle.
func (m *MachineState) Stop() error {
	if m.Status != MachineRunning {
		return ErrMachineIdle
	}
	m.Status = MachineIdle
	return nil
}

// CurrentStatus reports the status, treating an unset value as idle.
func (m *MachineState) CurrentStatus() MachineStatus {
	if m.Status == "" {
		return MachineIdle
	}
	return m.Status
}

// DryingMachine dries wet leaves at a centra.
type DryingMachine struct {
	MachineID    string `gorm:"column:machine_id;primaryKey;type:varchar(36)" json:"machine_id" bson:"_id"`
	CentralID    int64  `gorm:"column:central_id;index" json:"central_id" bson:"central_id"`
	Capacity     string `gorm:"column:capacity;type:varchar(64)" json:"capacity" bson:"capacity"`
	MachineState `bson:",inline"`
	Timestamps   `bson:",inline"`
}

func (DryingMachine) TableName() string  { return "drying_machines" }
func (m *DryingMachine) Key() string     { return m.MachineID }
func (m *DryingMachine) AssignKey(int64) { m.MachineID = newKey() }

// FlouringMachine grinds dried leaves into flour at a centra.
type FlouringMachine struct {
	MachineID    string `gorm:"column:machine_id;primaryKey;type:varchar(36)" json:"machine_id" bson:"_id"`
	CentralID    int64  `gorm:"column:central_id;index" json:"central_id" bson:"central_id"`
	Capacity     string `gorm:"column:capacity;type:varchar(64)" json:"capacity" bson:"capacity"`
	MachineState `bson:",inline"`
	Timestamps   `bson:",inline"`
}

func (FlouringMachine) TableName() string  { return "flouring_machines" }
func (m *FlouringMachine) Key() string     { return m.MachineID }
func (m *FlouringMachine) AssignKey(int64) { m.MachineID = newKey() }

// MachineCreate is shared by both machine kinds; new machines always start idle.
type MachineCreate struct {
	CentralID int64  `json:"central_id" binding:"required,min=1"`
	Capacity  string `json:"capacity" binding:"required"`
}

// MachineUpdate is a partial patch. Status is not patchable; use start/stop.
type MachineUpdate struct {
	CentralID *int64  `json:"central_id" binding:"omitempty,min=1"`
	Capacity  *string `json:"capacity"`
}

// DryingMachineCreate builds a DryingMachine.
type DryingMachineCreate struct{ MachineCreate }

func (p DryingMachineCreate) Entity() DryingMachine {
	return DryingMachine{
		CentralID:    p.CentralID,
		Capacity:     p.Capacity,
		MachineState: MachineState{Status: MachineIdle},
	}
}

// DryingMachineUpdate patches a DryingMachine.
type DryingMachineUpdate struct{ MachineUpdate }

func (p DryingMachineUpdate) Apply(m *DryingMachine) {
	setIfPresent(&m.CentralID, p.CentralID)
	setIfPresent(&m.Capacity, p.Capacity)
}

// FlouringMachineCreate builds a FlouringMachine.
type FlouringMachineCreate struct{ MachineCreate }

func (p FlouringMachineCreate) Entity() FlouringMachine {
	return FlouringMachine{
		CentralID:    p.CentralID,
		Capacity:     p.Capacity,
		MachineState: MachineState{Status: MachineIdle},
	}
}

// FlouringMachineUpdate patches a FlouringMachine.
type FlouringMachineUpdate struct{ MachineUpdate }

func (p FlouringMachineUpdate) Apply(m *FlouringMachine) {
	setIfPresent(&m.CentralID, p.CentralID)
	setIfPresent(&m.Capacity, p.Capacity)
}
