package model

import (
	"time"

	"github.com/google/uuid"
)

// TransferID uniquely identifies a transfer record across the system
type TransferID string

// ParseTransferID validates the shape of a transfer id.
// Ids are UUIDs assigned by the store; anything else is not a valid id.
func ParseTransferID(s string) (TransferID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", ErrTransferNotFound
	}
	return TransferID(s), nil
}

// TransferStatus is the lifecycle tag of a transfer
type TransferStatus string

const (
	StatusScheduled TransferStatus = "scheduled"
	StatusCompleted TransferStatus = "completed"
	StatusCanceled  TransferStatus = "canceled"
)

// ParseTransferStatus validates a status value against the closed set
func ParseTransferStatus(s string) (TransferStatus, error) {
	switch TransferStatus(s) {
	case StatusScheduled, StatusCompleted, StatusCanceled:
		return TransferStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Transfer represents a single hotel-guest transportation booking
type Transfer struct {
	ID             TransferID
	GuestName      string
	RoomNumber     string
	PhoneNumber    string
	TransferDate   time.Time
	Passengers     int
	PickupLocation string
	Destination    string
	FlightNumber   string
	Comments       string
	Status         TransferStatus
	CreatedAt      time.Time
}

// TransferPatch is a partial update to a transfer.
// Nil fields are left untouched when applied; a set field overwrites,
// including setting an optional field to the empty string.
type TransferPatch struct {
	GuestName      *string
	RoomNumber     *string
	PhoneNumber    *string
	TransferDate   *time.Time
	Passengers     *int
	PickupLocation *string
	Destination    *string
	FlightNumber   *string
	Comments       *string
	Status         *TransferStatus
}

// IsEmpty reports whether the patch names no fields at all
func (p TransferPatch) IsEmpty() bool {
	return p.GuestName == nil &&
		p.RoomNumber == nil &&
		p.PhoneNumber == nil &&
		p.TransferDate == nil &&
		p.Passengers == nil &&
		p.PickupLocation == nil &&
		p.Destination == nil &&
		p.FlightNumber == nil &&
		p.Comments == nil &&
		p.Status == nil
}

// Apply merges the patch into a transfer, changing only the named fields
func (p TransferPatch) Apply(t *Transfer) {
	if p.GuestName != nil {
		t.GuestName = *p.GuestName
	}
	if p.RoomNumber != nil {
		t.RoomNumber = *p.RoomNumber
	}
	if p.PhoneNumber != nil {
		t.PhoneNumber = *p.PhoneNumber
	}
	if p.TransferDate != nil {
		t.TransferDate = *p.TransferDate
	}
	if p.Passengers != nil {
		t.Passengers = *p.Passengers
	}
	if p.PickupLocation != nil {
		t.PickupLocation = *p.PickupLocation
	}
	if p.Destination != nil {
		t.Destination = *p.Destination
	}
	if p.FlightNumber != nil {
		t.FlightNumber = *p.FlightNumber
	}
	if p.Comments != nil {
		t.Comments = *p.Comments
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
