package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/transferhub/transferhub-go/internal/model"
	"github.com/transferhub/transferhub-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are stored as JSON documents, one key per record, with an
// insertion-order id list for transfers and a username index for users.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Transfer operations

func (s *Storage) InsertTransfer(ctx context.Context, t *model.Transfer) error {
	t.ID = model.TransferID(uuid.NewString())
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	// Pipeline the document write and the insertion-order index append
	pipe := s.client.Pipeline()
	pipe.Set(ctx, transferKey(t.ID), data, 0)
	pipe.RPush(ctx, transferIndexKey(), string(t.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListTransfers(ctx context.Context, filter storage.TransferFilter) ([]*model.Transfer, error) {
	ids, err := s.client.LRange(ctx, transferIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Transfer{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = transferKey(model.TransferID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([]*model.Transfer, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record deleted since the index was read
		}
		var t model.Transfer
		if err := json.Unmarshal([]byte(val.(string)), &t); err != nil {
			continue // Skip invalid data
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		result = append(result, &t)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func (s *Storage) GetTransfer(ctx context.Context, id model.TransferID) (*model.Transfer, error) {
	data, err := s.client.Get(ctx, transferKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTransferNotFound
		}
		return nil, err
	}

	var t model.Transfer
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) UpdateTransfer(ctx context.Context, id model.TransferID, patch model.TransferPatch) (*model.Transfer, error) {
	t, err := s.GetTransfer(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(t)

	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	// Read-modify-write; concurrent updates to the same id are
	// last-write-wins at this granularity
	if err := s.client.Set(ctx, transferKey(id), data, 0).Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Storage) DeleteTransfer(ctx context.Context, id model.TransferID) error {
	deleted, err := s.client.Del(ctx, transferKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrTransferNotFound
	}
	return s.client.LRem(ctx, transferIndexKey(), 1, string(id)).Err()
}

// User operations

func (s *Storage) InsertUser(ctx context.Context, u *model.User) error {
	u.ID = model.UserID(uuid.NewString())
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	// SETNX on the username index makes the uniqueness check atomic
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(u.Username), string(u.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrUsernameTaken
	}

	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(u.ID), data, 0).Err()
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	data, err := s.client.Get(ctx, userKey(model.UserID(idStr))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
