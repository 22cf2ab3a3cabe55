package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case Transfer:
		o.printTransfer(v)
	case TransferList:
		o.printTransferList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Token response type
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Transfer response type
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
}

// TransferList is a printable list of transfers
type TransferList []Transfer

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("ID:       %s\n", u.ID)
	fmt.Printf("Username: %s\n", u.Username)
}

func (o *Output) printTransfer(t Transfer) {
	fmt.Printf("ID:          %s\n", t.ID)
	fmt.Printf("Guest:       %s (room %s)\n", t.GuestName, t.RoomNumber)
	fmt.Printf("Phone:       %s\n", t.PhoneNumber)
	fmt.Printf("Date:        %s\n", t.TransferDate.Format(time.RFC3339))
	fmt.Printf("Passengers:  %d\n", t.Passengers)
	fmt.Printf("Route:       %s -> %s\n", t.PickupLocation, t.Destination)
	if t.FlightNumber != "" {
		fmt.Printf("Flight:      %s\n", t.FlightNumber)
	}
	if t.Comments != "" {
		fmt.Printf("Comments:    %s\n", t.Comments)
	}
	fmt.Printf("Status:      %s\n", t.Status)
}

func (o *Output) printTransferList(ts TransferList) {
	if len(ts) == 0 {
		fmt.Println("no transfers")
		return
	}
	for _, t := range ts {
		fmt.Printf("%s  %-10s %-20s %s -> %s (%s)\n",
			t.ID, t.Status, t.GuestName, t.PickupLocation, t.Destination,
			t.TransferDate.Format("2006-01-02 15:04"))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
