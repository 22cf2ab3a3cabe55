package request

import (
	"time"

	"github.com/transferhub/transferhub-go/internal/model"
)

// RegisterRequest is the request body for registering a staff account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTransferRequest is the request body for creating a transfer.
// A status field in the body is ignored; new transfers start scheduled.
type CreateTransferRequest struct {
	GuestName      string    `json:"guest_name"`
	RoomNumber     string    `json:"room_number"`
	PhoneNumber    string    `json:"phone_number"`
	TransferDate   time.Time `json:"transfer_date"`
	Passengers     int       `json:"passengers"`
	PickupLocation string    `json:"pickup_location"`
	Destination    string    `json:"destination"`
	FlightNumber   string    `json:"flight_number,omitempty"`
	Comments       string    `json:"comments,omitempty"`
}

// UpdateTransferRequest is the request body for a partial update.
// All fields are optional; omitted fields are left untouched.
type UpdateTransferRequest struct {
	GuestName      *string    `json:"guest_name"`
	RoomNumber     *string    `json:"room_number"`
	PhoneNumber    *string    `json:"phone_number"`
	TransferDate   *time.Time `json:"transfer_date"`
	Passengers     *int       `json:"passengers"`
	PickupLocation *string    `json:"pickup_location"`
	Destination    *string    `json:"destination"`
	FlightNumber   *string    `json:"flight_number"`
	Comments       *string    `json:"comments"`
	Status         *string    `json:"status"`
}

// Patch converts the request into a model patch.
// The status value is carried as-is; the service validates it.
func (r UpdateTransferRequest) Patch() model.TransferPatch {
	patch := model.TransferPatch{
		GuestName:      r.GuestName,
		RoomNumber:     r.RoomNumber,
		PhoneNumber:    r.PhoneNumber,
		TransferDate:   r.TransferDate,
		Passengers:     r.Passengers,
		PickupLocation: r.PickupLocation,
		Destination:    r.Destination,
		FlightNumber:   r.FlightNumber,
		Comments:       r.Comments,
	}
	if r.Status != nil {
		status := model.TransferStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}
