package storage

import (
	"context"

	"github.com/transferhub/transferhub-go/internal/model"
)

// TransferFilter narrows and bounds a transfer listing
type TransferFilter struct {
	// Status, when non-nil, restricts results to transfers with that status
	Status *model.TransferStatus
	// Limit caps the number of returned records; 0 means no cap
	Limit int
}

// Storage defines the interface for data persistence.
// All operations are atomic at single-document granularity; concurrent
// updates to the same record are last-write-wins.
type Storage interface {
	// Transfer operations
	//
	// InsertTransfer assigns the record's id and persists it.
	InsertTransfer(ctx context.Context, t *model.Transfer) error
	// ListTransfers returns transfers in insertion order, filtered and capped.
	ListTransfers(ctx context.Context, filter TransferFilter) ([]*model.Transfer, error)
	GetTransfer(ctx context.Context, id model.TransferID) (*model.Transfer, error)
	// UpdateTransfer merges the patch into the stored record and returns the
	// result. Returns model.ErrTransferNotFound if the id does not resolve.
	UpdateTransfer(ctx context.Context, id model.TransferID, patch model.TransferPatch) (*model.Transfer, error)
	// DeleteTransfer removes the record permanently. Returns
	// model.ErrTransferNotFound if the id does not resolve.
	DeleteTransfer(ctx context.Context, id model.TransferID) error

	// User operations
	//
	// InsertUser assigns the account's id and persists it. Returns
	// model.ErrUsernameTaken if the username is already registered; the
	// check and insert are atomic within the store.
	InsertUser(ctx context.Context, u *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}
