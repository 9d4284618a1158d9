// Package store provides an in-memory SessionStore used by tests and
// by single-node deployments that run without Redis. All operations
// are atomic under one mutex, matching the guarantees the coordinator
// expects from the Redis-backed store.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	models "Chessio/models/redis"
	"Chessio/services/game"
)

type MemoryStore struct {
	mu       sync.Mutex
	rooms    map[string]*models.RoomSession
	bindings map[string]models.ConnectionBinding
}

var _ game.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:    make(map[string]*models.RoomSession),
		bindings: make(map[string]models.ConnectionBinding),
	}
}

// clone keeps callers from sharing memory with the store's copy.
func clone(room *models.RoomSession) *models.RoomSession {
	cp := *room
	cp.Players = make([]models.SessionPlayer, len(room.Players))
	copy(cp.Players, room.Players)
	return &cp
}

func (s *MemoryStore) GetRoom(ctx context.Context, name string) (*models.RoomSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrRoomNotFound, name)
	}
	return clone(room), nil
}

func (s *MemoryStore) PutRoom(ctx context.Context, room *models.RoomSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Name] = clone(room)
	return nil
}

func (s *MemoryStore) DeleteRoom(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, name)
	return nil
}

func (s *MemoryStore) AddPlayer(ctx context.Context, name string, player models.SessionPlayer) (*models.RoomSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrRoomNotFound, name)
	}
	if room.Size >= room.Capacity {
		return nil, fmt.Errorf("%w: %s", game.ErrRoomFull, name)
	}
	room.Players = append(room.Players, player)
	room.Size = len(room.Players)
	if room.Size == room.Capacity {
		room.OpponentName = player.Username
	}
	room.UpdatedAt = time.Now()
	return clone(room), nil
}

func (s *MemoryStore) UpdateBoard(ctx context.Context, name, board string, turn models.Color) (*models.RoomSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrRoomNotFound, name)
	}
	room.BoardState = board
	room.Turn = turn
	room.UpdatedAt = time.Now()
	return clone(room), nil
}

func (s *MemoryStore) RemovePlayer(ctx context.Context, name, playerID string) (*models.RoomSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrRoomNotFound, name)
	}
	kept := make([]models.SessionPlayer, 0, len(room.Players))
	found := false
	for _, p := range room.Players {
		if p.ID == playerID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return nil, fmt.Errorf("%w: player %s", game.ErrUserNotFound, playerID)
	}
	room.Players = kept
	room.Size = len(kept)
	room.UpdatedAt = time.Now()
	return clone(room), nil
}

func (s *MemoryStore) BindConnection(ctx context.Context, address string, binding models.ConnectionBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[address] = binding
	return nil
}

func (s *MemoryStore) GetConnectionBinding(ctx context.Context, address string) (*models.ConnectionBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	binding, ok := s.bindings[address]
	if !ok {
		return nil, nil
	}
	return &binding, nil
}

func (s *MemoryStore) UnbindConnection(ctx context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bindings, address)
	return nil
}
