package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("project not found")
	ErrUnitNotFound = errors.New("unit not found")
)

// Project is a construction development grouping sellable units.
type Project struct {
	ID        uuid.UUID
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// UnitStatus tracks the sales state of a unit.
type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitReserved  UnitStatus = "reserved"
	UnitSold      UnitStatus = "sold"
)

// Unit is a sellable apartment, office or plot inside a project.
type Unit struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Block     string
	Floor     int
	Number    string
	AreaM2    float64
	Price     int64 // cents
	Status    UnitStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
}
