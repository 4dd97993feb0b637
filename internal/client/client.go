package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

// Client is a buyer on record: a person or company that signs unit contracts.
type Client struct {
	ID        uuid.UUID
	Name      string
	TaxID     string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
