package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	redis_models "Chessio/models/redis"
	"Chessio/services/game"
	redis_utils "Chessio/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long an abandoned room or connection binding
// can linger. Live rooms refresh it on every write.
const sessionTTL = 24 * time.Hour

// maxCASRetries bounds the optimistic-concurrency retry loop on the
// conditional room mutations.
const maxCASRetries = 5

// RedisClient handles Redis operations and implements the
// coordinator's SessionStore. The capacity-guarded mutations use
// WATCH-based compare-and-swap so two racing joins for the last seat
// cannot both land, even across coordinator processes.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

var _ game.SessionStore = (*RedisClient)(nil)

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// GetRoom retrieves a room session.
// Key format: "room:{name}"
func (rc *RedisClient) GetRoom(ctx context.Context, name string) (*redis_models.RoomSession, error) {
	key := redis_utils.FormatRoomKey(name)
	data, err := rc.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", game.ErrRoomNotFound, name)
		}
		return nil, fmt.Errorf("error getting room data: %v", err)
	}

	var room redis_models.RoomSession
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("error unmarshaling room data: %v", err)
	}
	return &room, nil
}

// PutRoom stores a full room session snapshot.
// Key format: "room:{name}"
// TTL: 24 hours
func (rc *RedisClient) PutRoom(ctx context.Context, room *redis_models.RoomSession) error {
	key := redis_utils.FormatRoomKey(room.Name)
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %v", err)
	}
	return rc.client.Set(ctx, key, data, sessionTTL).Err()
}

// DeleteRoom removes a room session. Missing keys are not an error.
func (rc *RedisClient) DeleteRoom(ctx context.Context, name string) error {
	key := redis_utils.FormatRoomKey(name)
	if err := rc.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting room data: %v", err)
	}
	return nil
}

// mutateRoom applies fn to the current session under WATCH and writes
// the result back, retrying on concurrent modification.
func (rc *RedisClient) mutateRoom(ctx context.Context, name string, fn func(*redis_models.RoomSession) error) (*redis_models.RoomSession, error) {
	key := redis_utils.FormatRoomKey(name)
	var result *redis_models.RoomSession

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: %s", game.ErrRoomNotFound, name)
			}
			return fmt.Errorf("error getting room data: %v", err)
		}

		var room redis_models.RoomSession
		if err := json.Unmarshal(data, &room); err != nil {
			return fmt.Errorf("error unmarshaling room data: %v", err)
		}
		if err := fn(&room); err != nil {
			return err
		}
		room.UpdatedAt = time.Now()

		updated, err := json.Marshal(&room)
		if err != nil {
			return fmt.Errorf("error marshaling room data: %v", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, sessionTTL)
			return nil
		})
		if err == nil {
			result = &room
		}
		return err
	}

	for i := 0; i < maxCASRetries; i++ {
		err := rc.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue // key changed under us, retry
		}
		return nil, err
	}
	return nil, fmt.Errorf("room %s: too many concurrent modifications", name)
}

// AddPlayer appends a player iff the room still has a free seat. The
// guard runs inside the CAS cycle, so capacity enforcement is
// linearizable per room.
func (rc *RedisClient) AddPlayer(ctx context.Context, name string, player redis_models.SessionPlayer) (*redis_models.RoomSession, error) {
	return rc.mutateRoom(ctx, name, func(room *redis_models.RoomSession) error {
		if room.Size >= room.Capacity {
			return fmt.Errorf("%w: %s", game.ErrRoomFull, name)
		}
		room.Players = append(room.Players, player)
		room.Size = len(room.Players)
		if room.Size == room.Capacity {
			room.OpponentName = player.Username
		}
		return nil
	})
}

// UpdateBoard overwrites the board token and turn owner.
func (rc *RedisClient) UpdateBoard(ctx context.Context, name, board string, turn redis_models.Color) (*redis_models.RoomSession, error) {
	return rc.mutateRoom(ctx, name, func(room *redis_models.RoomSession) error {
		room.BoardState = board
		room.Turn = turn
		return nil
	})
}

// RemovePlayer drops the player with the given id, decrementing size.
func (rc *RedisClient) RemovePlayer(ctx context.Context, name, playerID string) (*redis_models.RoomSession, error) {
	return rc.mutateRoom(ctx, name, func(room *redis_models.RoomSession) error {
		kept := make([]redis_models.SessionPlayer, 0, len(room.Players))
		found := false
		for _, p := range room.Players {
			if p.ID == playerID {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		if !found {
			return fmt.Errorf("%w: player %s", game.ErrUserNotFound, playerID)
		}
		room.Players = kept
		room.Size = len(kept)
		return nil
	})
}

// BindConnection records address -> (room, player).
// Key format: "conn:{address}"
// TTL: 24 hours
func (rc *RedisClient) BindConnection(ctx context.Context, address string, binding redis_models.ConnectionBinding) error {
	key := redis_utils.FormatConnectionKey(address)
	data, err := json.Marshal(binding)
	if err != nil {
		return fmt.Errorf("error marshaling connection binding: %v", err)
	}
	return rc.client.Set(ctx, key, data, sessionTTL).Err()
}

// GetConnectionBinding returns the binding for an address, or
// (nil, nil) when the address is unknown.
func (rc *RedisClient) GetConnectionBinding(ctx context.Context, address string) (*redis_models.ConnectionBinding, error) {
	key := redis_utils.FormatConnectionKey(address)
	data, err := rc.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting connection binding: %v", err)
	}

	var binding redis_models.ConnectionBinding
	if err := json.Unmarshal(data, &binding); err != nil {
		return nil, fmt.Errorf("error unmarshaling connection binding: %v", err)
	}
	return &binding, nil
}

// UnbindConnection removes a binding.
func (rc *RedisClient) UnbindConnection(ctx context.Context, address string) error {
	key := redis_utils.FormatConnectionKey(address)
	if err := rc.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting connection binding: %v", err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
