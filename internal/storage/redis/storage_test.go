package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/transferhub/transferhub-go/internal/model"
	"github.com/transferhub/transferhub-go/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	client  *redis.Client
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.storage = NewWithClient(s.client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
}

func (s *StorageSuite) newTransfer(guest string) *model.Transfer {
	return &model.Transfer{
		GuestName:      guest,
		RoomNumber:     "204",
		PhoneNumber:    "+15550100",
		TransferDate:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Passengers:     2,
		PickupLocation: "Hotel",
		Destination:    "Airport",
		Status:         model.StatusScheduled,
	}
}

func (s *StorageSuite) TestInsertAndGet() {
	t := s.newTransfer("Alice")
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, t))
	s.NotEmpty(t.ID)

	got, err := s.storage.GetTransfer(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(t.ID, got.ID)
	s.Equal("Alice", got.GuestName)
	s.Equal(model.StatusScheduled, got.Status)
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.GetTransfer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrTransferNotFound)
}

func (s *StorageSuite) TestListInsertionOrder() {
	a := s.newTransfer("Alice")
	b := s.newTransfer("Bob")
	c := s.newTransfer("Carol")
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, a))
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, b))
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, c))

	listed, err := s.storage.ListTransfers(s.ctx, storage.TransferFilter{})
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	s.Equal(a.ID, listed[0].ID)
	s.Equal(b.ID, listed[1].ID)
	s.Equal(c.ID, listed[2].ID)
}

func (s *StorageSuite) TestListStatusFilter() {
	a := s.newTransfer("Alice")
	b := s.newTransfer("Bob")
	b.Status = model.StatusCompleted
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, a))
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, b))

	status := model.StatusCompleted
	listed, err := s.storage.ListTransfers(s.ctx, storage.TransferFilter{Status: &status})
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(b.ID, listed[0].ID)
}

func (s *StorageSuite) TestListLimit() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.storage.InsertTransfer(s.ctx, s.newTransfer("Guest")))
	}

	listed, err := s.storage.ListTransfers(s.ctx, storage.TransferFilter{Limit: 3})
	s.Require().NoError(err)
	s.Len(listed, 3)
}

func (s *StorageSuite) TestListEmpty() {
	listed, err := s.storage.ListTransfers(s.ctx, storage.TransferFilter{})
	s.Require().NoError(err)
	s.Empty(listed)
}

func (s *StorageSuite) TestUpdateMergesPatch() {
	t := s.newTransfer("Alice")
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, t))

	status := model.StatusCanceled
	updated, err := s.storage.UpdateTransfer(s.ctx, t.ID, model.TransferPatch{Status: &status})
	s.Require().NoError(err)
	s.Equal(model.StatusCanceled, updated.Status)
	s.Equal("Alice", updated.GuestName)

	got, err := s.storage.GetTransfer(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusCanceled, got.Status)
}

func (s *StorageSuite) TestUpdateNotFound() {
	status := model.StatusCompleted
	_, err := s.storage.UpdateTransfer(s.ctx, "nonexistent", model.TransferPatch{Status: &status})
	s.ErrorIs(err, model.ErrTransferNotFound)
}

func (s *StorageSuite) TestDeleteRemovesFromIndex() {
	a := s.newTransfer("Alice")
	b := s.newTransfer("Bob")
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, a))
	s.Require().NoError(s.storage.InsertTransfer(s.ctx, b))

	s.Require().NoError(s.storage.DeleteTransfer(s.ctx, a.ID))

	_, err := s.storage.GetTransfer(s.ctx, a.ID)
	s.ErrorIs(err, model.ErrTransferNotFound)

	listed, err := s.storage.ListTransfers(s.ctx, storage.TransferFilter{})
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(b.ID, listed[0].ID)
}

func (s *StorageSuite) TestDeleteNotFound() {
	s.ErrorIs(s.storage.DeleteTransfer(s.ctx, "nonexistent"), model.ErrTransferNotFound)
}

func (s *StorageSuite) TestInsertUserAndLookup() {
	u := &model.User{Username: "alice", PasswordHash: "hash123"}
	s.Require().NoError(s.storage.InsertUser(s.ctx, u))
	s.NotEmpty(u.ID)

	got, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.Equal("hash123", got.PasswordHash)
}

func (s *StorageSuite) TestInsertUserDuplicateUsername() {
	s.Require().NoError(s.storage.InsertUser(s.ctx, &model.User{Username: "alice", PasswordHash: "h1"}))

	err := s.storage.InsertUser(s.ctx, &model.User{Username: "alice", PasswordHash: "h2"})
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}
