package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/transferhub/transferhub-go/internal/model"
	"github.com/transferhub/transferhub-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	transfers     map[model.TransferID]*model.Transfer
	transferOrder []model.TransferID
	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		transfers:     make(map[model.TransferID]*model.Transfer),
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Transfer operations

func (s *Storage) InsertTransfer(ctx context.Context, t *model.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = model.TransferID(uuid.NewString())
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	stored := *t
	s.transfers[t.ID] = &stored
	s.transferOrder = append(s.transferOrder, t.ID)
	return nil
}

func (s *Storage) ListTransfers(ctx context.Context, filter storage.TransferFilter) ([]*model.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Transfer, 0)
	for _, id := range s.transferOrder {
		t, ok := s.transfers[id]
		if !ok {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		copied := *t
		result = append(result, &copied)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func (s *Storage) GetTransfer(ctx context.Context, id model.TransferID) (*model.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transfers[id]
	if !ok {
		return nil, model.ErrTransferNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *Storage) UpdateTransfer(ctx context.Context, id model.TransferID, patch model.TransferPatch) (*model.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transfers[id]
	if !ok {
		return nil, model.ErrTransferNotFound
	}
	patch.Apply(t)
	copied := *t
	return &copied, nil
}

func (s *Storage) DeleteTransfer(ctx context.Context, id model.TransferID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transfers[id]; !ok {
		return model.ErrTransferNotFound
	}
	delete(s.transfers, id)
	for i, existing := range s.transferOrder {
		if existing == id {
			s.transferOrder = append(s.transferOrder[:i], s.transferOrder[i+1:]...)
			break
		}
	}
	return nil
}

// User operations

func (s *Storage) InsertUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernameIndex[u.Username]; exists {
		return model.ErrUsernameTaken
	}

	u.ID = model.UserID(uuid.NewString())
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	stored := *u
	s.users[u.ID] = &stored
	s.usernameIndex[u.Username] = u.ID
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}
