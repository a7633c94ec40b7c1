// Package mocks provides testify mocks for the repository contracts.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
)

// RoomRepository is a mock of repository.RoomRepository.
type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) GetOrCreate(ctx context.Context, room *domain.Room) (bool, error) {
	args := m.Called(ctx, room)
	return args.Bool(0), args.Error(1)
}

func (m *RoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if room, ok := args.Get(0).(*domain.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RoomRepository) ListForUser(ctx context.Context, userID uint) ([]domain.Room, error) {
	args := m.Called(ctx, userID)
	if rooms, ok := args.Get(0).([]domain.Room); ok {
		return rooms, args.Error(1)
	}
	return nil, args.Error(1)
}

// MessageRepository is a mock of repository.MessageRepository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Save(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) MarkRead(ctx context.Context, roomID uint, messageIDs []uint, excludeSenderID uint) ([]uint, error) {
	args := m.Called(ctx, roomID, messageIDs, excludeSenderID)
	if ids, ok := args.Get(0).([]uint); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) MarkAllRead(ctx context.Context, roomID uint, excludeSenderID uint) (int64, error) {
	args := m.Called(ctx, roomID, excludeSenderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) CountUnreadTotal(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) CountUnreadInRoom(ctx context.Context, roomID uint, userID uint) (int64, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) ListByRoom(ctx context.Context, roomID uint) ([]domain.Message, error) {
	args := m.Called(ctx, roomID)
	if msgs, ok := args.Get(0).([]domain.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) LastInRoom(ctx context.Context, roomID uint) (*domain.Message, error) {
	args := m.Called(ctx, roomID)
	if msg, ok := args.Get(0).(*domain.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

// ItemCatalog is a mock of repository.ItemCatalog.
type ItemCatalog struct {
	mock.Mock
}

func (m *ItemCatalog) GetOwner(ctx context.Context, itemID uint) (uint, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *ItemCatalog) FindByID(ctx context.Context, itemID uint) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if item, ok := args.Get(0).(*domain.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) DisplayName(ctx context.Context, id uint) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
