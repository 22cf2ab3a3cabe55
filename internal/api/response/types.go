package response

import (
	"time"

	"github.com/transferhub/transferhub-go/internal/model"
)

// Token is the response for the token endpoint
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewToken wraps an access token in the standard bearer envelope
func NewToken(accessToken string) Token {
	return Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}
}

// User represents a staff account in API responses.
// The password hash is never exposed.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
	}
}

// Transfer represents a transfer record in API responses
type Transfer struct {
	ID             string    `json:"id"`
	GuestName      string    `json:"guest_name"`
	RoomNumber     string    `json:"room_number"`
	PhoneNumber    string    `json:"phone_number"`
	TransferDate   time.Time `json:"transfer_date"`
	Passengers     int       `json:"passengers"`
	PickupLocation string    `json:"pickup_location"`
	Destination    string    `json:"destination"`
	FlightNumber   string    `json:"flight_number,omitempty"`
	Comments       string    `json:"comments,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransferFromModel converts a model.Transfer to a response Transfer
func TransferFromModel(t *model.Transfer) Transfer {
	return Transfer{
		ID:             string(t.ID),
		GuestName:      t.GuestName,
		RoomNumber:     t.RoomNumber,
		PhoneNumber:    t.PhoneNumber,
		TransferDate:   t.TransferDate,
		Passengers:     t.Passengers,
		PickupLocation: t.PickupLocation,
		Destination:    t.Destination,
		FlightNumber:   t.FlightNumber,
		Comments:       t.Comments,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
	}
}

// TransfersFromModel converts a slice of transfers
func TransfersFromModel(ts []*model.Transfer) []Transfer {
	result := make([]Transfer, len(ts))
	for i, t := range ts {
		result[i] = TransferFromModel(t)
	}
	return result
}
