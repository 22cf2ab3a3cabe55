package transfer

import (
	"context"
	"time"

	"github.com/transferhub/transferhub-go/internal/model"
	"github.com/transferhub/transferhub-go/internal/storage"
)

// MaxListResults bounds every listing; excess records are silently dropped
const MaxListResults = 100

// CreateInput holds the fields for a new transfer booking.
// Status is not accepted here: new transfers always start out scheduled.
type CreateInput struct {
	GuestName      string
	RoomNumber     string
	PhoneNumber    string
	TransferDate   time.Time
	Passengers     int
	PickupLocation string
	Destination    string
	FlightNumber   string
	Comments       string
}

// Service provides transfer record operations
type Service struct {
	storage storage.Storage
}

// New creates a new transfer Service
func New(store storage.Storage) *Service {
	return &Service{
		storage: store,
	}
}

// Create validates the input and persists a new transfer with status
// forced to scheduled
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Transfer, error) {
	var bad []string
	if input.GuestName == "" {
		bad = append(bad, "guest_name")
	}
	if input.RoomNumber == "" {
		bad = append(bad, "room_number")
	}
	if input.PhoneNumber == "" {
		bad = append(bad, "phone_number")
	}
	if input.TransferDate.IsZero() {
		bad = append(bad, "transfer_date")
	}
	if input.Passengers <= 0 {
		bad = append(bad, "passengers")
	}
	if input.PickupLocation == "" {
		bad = append(bad, "pickup_location")
	}
	if input.Destination == "" {
		bad = append(bad, "destination")
	}
	if len(bad) > 0 {
		return nil, model.NewValidationError(bad...)
	}

	t := &model.Transfer{
		GuestName:      input.GuestName,
		RoomNumber:     input.RoomNumber,
		PhoneNumber:    input.PhoneNumber,
		TransferDate:   input.TransferDate,
		Passengers:     input.Passengers,
		PickupLocation: input.PickupLocation,
		Destination:    input.Destination,
		FlightNumber:   input.FlightNumber,
		Comments:       input.Comments,
		Status:         model.StatusScheduled,
	}
	if err := s.storage.InsertTransfer(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns transfers in insertion order, optionally filtered by status,
// capped at MaxListResults
func (s *Service) List(ctx context.Context, status string) ([]*model.Transfer, error) {
	filter := storage.TransferFilter{Limit: MaxListResults}

	if status != "" {
		parsed, err := model.ParseTransferStatus(status)
		if err != nil {
			return nil, model.NewValidationError("status")
		}
		filter.Status = &parsed
	}

	return s.storage.ListTransfers(ctx, filter)
}

// Get fetches a transfer by id. A malformed id and an unknown id are
// indistinguishable to the caller: both are ErrTransferNotFound.
func (s *Service) Get(ctx context.Context, id string) (*model.Transfer, error) {
	tid, err := model.ParseTransferID(id)
	if err != nil {
		return nil, model.ErrTransferNotFound
	}
	return s.storage.GetTransfer(ctx, tid)
}

// Update applies a partial update to a transfer. Fields absent from the
// patch are left untouched; an empty patch is rejected, not a no-op.
func (s *Service) Update(ctx context.Context, id string, patch model.TransferPatch) (*model.Transfer, error) {
	tid, err := model.ParseTransferID(id)
	if err != nil {
		return nil, model.ErrTransferNotFound
	}

	if patch.IsEmpty() {
		return nil, model.ErrEmptyUpdate
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	return s.storage.UpdateTransfer(ctx, tid, patch)
}

// Delete permanently removes a transfer. A second delete of the same id
// reports ErrTransferNotFound rather than success.
func (s *Service) Delete(ctx context.Context, id string) error {
	tid, err := model.ParseTransferID(id)
	if err != nil {
		return model.ErrTransferNotFound
	}
	return s.storage.DeleteTransfer(ctx, tid)
}

// validatePatch checks the constraints of fields the patch names.
// Optional fields (flight_number, comments) may be set to empty.
func validatePatch(patch model.TransferPatch) error {
	var bad []string
	if patch.GuestName != nil && *patch.GuestName == "" {
		bad = append(bad, "guest_name")
	}
	if patch.RoomNumber != nil && *patch.RoomNumber == "" {
		bad = append(bad, "room_number")
	}
	if patch.PhoneNumber != nil && *patch.PhoneNumber == "" {
		bad = append(bad, "phone_number")
	}
	if patch.TransferDate != nil && patch.TransferDate.IsZero() {
		bad = append(bad, "transfer_date")
	}
	if patch.Passengers != nil && *patch.Passengers <= 0 {
		bad = append(bad, "passengers")
	}
	if patch.PickupLocation != nil && *patch.PickupLocation == "" {
		bad = append(bad, "pickup_location")
	}
	if patch.Destination != nil && *patch.Destination == "" {
		bad = append(bad, "destination")
	}
	if patch.Status != nil {
		if _, err := model.ParseTransferStatus(string(*patch.Status)); err != nil {
			bad = append(bad, "status")
		}
	}
	if len(bad) > 0 {
		return model.NewValidationError(bad...)
	}
	return nil
}
