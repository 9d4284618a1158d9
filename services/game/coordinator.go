package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	game_constants "Chessio/constants/game"
	models "Chessio/models/redis"

	"github.com/google/uuid"
)

// Coordinator owns the room lifecycle, turn bookkeeping and the
// signaling relay. It never interprets board tokens or signaling
// payloads; it stores and forwards them verbatim.
//
// Every lifecycle operation runs under a per-room mutex, so capacity
// checks and size updates are linearizable per room even though the
// store round-trips in between are suspension points. Rooms are
// independent; there is no cross-room locking.
type Coordinator struct {
	store   SessionStore
	bc      Broadcaster
	archive Archiver // optional, may be nil

	mu        sync.Mutex
	roomLocks map[string]*roomLock
}

// roomLock is a mutex with a count of the holders and waiters keeping
// it alive in the map.
type roomLock struct {
	mu   sync.Mutex
	refs int
}

func NewCoordinator(store SessionStore, bc Broadcaster, archive Archiver) *Coordinator {
	return &Coordinator{
		store:     store,
		bc:        bc,
		archive:   archive,
		roomLocks: make(map[string]*roomLock),
	}
}

// lockRoom acquires the mutex guarding a normalized room name and
// returns its release function. Entries are reference counted: the
// count is raised before blocking on the mutex and dropped on release,
// and the entry is removed only when it reaches zero. A lock with
// waiters is therefore never discarded, so two operations on the same
// name can never run under different mutexes, while a deleted room
// still leaves no entry behind once the last caller is out.
func (c *Coordinator) lockRoom(name string) func() {
	c.mu.Lock()
	l, ok := c.roomLocks[name]
	if !ok {
		l = &roomLock{}
		c.roomLocks[name] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.roomLocks, name)
		}
		c.mu.Unlock()
	}
}

// archiveRoom flushes the session to durable storage. Failures are
// logged, never propagated: the live session stays authoritative.
func (c *Coordinator) archiveRoom(ctx context.Context, room *models.RoomSession) {
	if c.archive == nil {
		return
	}
	if err := c.archive.ArchiveRoom(ctx, room); err != nil {
		log.Printf("[ARCHIVE-ERROR] Error archiving room %s: %v", room.Name, err)
	}
}

func (c *Coordinator) discardRoom(ctx context.Context, name string) {
	if c.archive == nil {
		return
	}
	if err := c.archive.DiscardRoom(ctx, name); err != nil {
		log.Printf("[ARCHIVE-ERROR] Error discarding room %s: %v", name, err)
	}
}

// CreateRoom opens a new room with the caller seated as white. A name
// already held by a populated room is refused; a stale zero-size room
// is overwritten. Room and creator are written as one snapshot, so a
// half-created room can never be observed.
func (c *Coordinator) CreateRoom(ctx context.Context, address, username, roomName string) (*models.RoomSession, *models.SessionPlayer, error) {
	username = NormalizeName(username)
	roomName = NormalizeName(roomName)
	if username == "" || roomName == "" {
		return nil, nil, ErrInvalidInput
	}

	unlock := c.lockRoom(roomName)
	defer unlock()

	existing, err := c.store.GetRoom(ctx, roomName)
	if err == nil && existing.Size > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrRoomExists, roomName)
	}

	now := time.Now()
	player := models.SessionPlayer{
		ID:                uuid.NewString(),
		Username:          username,
		ConnectionAddress: address,
		RoomName:          roomName,
		AssignedColor:     models.ColorWhite,
		JoinedAt:          now,
	}
	room := &models.RoomSession{
		Name:        roomName,
		CreatorName: username,
		Capacity:    game_constants.RoomCapacity,
		Size:        1,
		BoardState:  game_constants.StartingBoard,
		Turn:        models.ColorWhite,
		Players:     []models.SessionPlayer{player},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.store.PutRoom(ctx, room); err != nil {
		return nil, nil, err
	}
	if err := c.store.BindConnection(ctx, address, models.ConnectionBinding{
		RoomName: roomName,
		PlayerID: player.ID,
		Username: username,
	}); err != nil {
		return nil, nil, err
	}
	c.archiveRoom(ctx, room)

	log.Printf("[CREATE] Room %s created by %s", roomName, username)
	return room, &player, nil
}

// JoinRoom seats the caller as black, or, when the username already
// holds a seat, treats the call as a reconnection and only refreshes
// that seat's connection address. The returned bool reports the
// reconnect case.
func (c *Coordinator) JoinRoom(ctx context.Context, address, username, roomName string) (*models.RoomSession, *models.SessionPlayer, bool, error) {
	username = NormalizeName(username)
	roomName = NormalizeName(roomName)
	if username == "" || roomName == "" {
		return nil, nil, false, ErrInvalidInput
	}

	unlock := c.lockRoom(roomName)
	defer unlock()

	room, err := c.store.GetRoom(ctx, roomName)
	if err != nil {
		return nil, nil, false, err
	}

	if existing := room.FindPlayerByName(username); existing != nil {
		// Reconnection: overwrite the stale address, never append a
		// duplicate seat.
		existing.ConnectionAddress = address
		room.UpdatedAt = time.Now()
		if err := c.store.PutRoom(ctx, room); err != nil {
			return nil, nil, false, err
		}
		if err := c.store.BindConnection(ctx, address, models.ConnectionBinding{
			RoomName: roomName,
			PlayerID: existing.ID,
			Username: username,
		}); err != nil {
			return nil, nil, false, err
		}
		c.bc.SendToRoomExcept(roomName, address, "rejoined", payloadRoomPlayer(room, existing))
		log.Printf("[JOIN] %s reconnected to room %s", username, roomName)
		return room, existing, true, nil
	}

	if room.Size > 1 {
		return nil, nil, false, fmt.Errorf("%w: %s", ErrRoomFull, roomName)
	}

	player := models.SessionPlayer{
		ID:                uuid.NewString(),
		Username:          username,
		ConnectionAddress: address,
		RoomName:          roomName,
		AssignedColor:     models.ColorBlack,
		JoinedAt:          time.Now(),
	}
	// The capacity guard is evaluated again inside the store, so even
	// without the room lock two racing joins could not both land.
	room, err = c.store.AddPlayer(ctx, roomName, player)
	if err != nil {
		return nil, nil, false, err
	}
	if err := c.store.BindConnection(ctx, address, models.ConnectionBinding{
		RoomName: roomName,
		PlayerID: player.ID,
		Username: username,
	}); err != nil {
		return nil, nil, false, err
	}
	c.archiveRoom(ctx, room)

	c.bc.SendToRoomExcept(roomName, address, "joined", payloadRoomPlayer(room, &player))
	log.Printf("[JOIN] %s joined room %s as black", username, roomName)
	return room, &player, false, nil
}

// RejoinRoom re-subscribes a known player after a dropped connection.
// Board and turn state are left untouched.
func (c *Coordinator) RejoinRoom(ctx context.Context, address, username, roomName string) (*models.RoomSession, *models.SessionPlayer, error) {
	username = NormalizeName(username)
	roomName = NormalizeName(roomName)
	if username == "" || roomName == "" {
		return nil, nil, ErrInvalidInput
	}

	unlock := c.lockRoom(roomName)
	defer unlock()

	room, err := c.store.GetRoom(ctx, roomName)
	if err != nil {
		return nil, nil, err
	}
	player := room.FindPlayerByName(username)
	if player == nil {
		return nil, nil, fmt.Errorf("%w: user %s, room %s", ErrUserNotFound, username, roomName)
	}

	player.ConnectionAddress = address
	room.UpdatedAt = time.Now()
	if err := c.store.PutRoom(ctx, room); err != nil {
		return nil, nil, err
	}
	if err := c.store.BindConnection(ctx, address, models.ConnectionBinding{
		RoomName: roomName,
		PlayerID: player.ID,
		Username: username,
	}); err != nil {
		return nil, nil, err
	}

	c.bc.SendToRoomExcept(roomName, address, "rejoined", payloadRoomPlayer(room, player))
	log.Printf("[REJOIN] %s rejoined room %s", username, roomName)
	return room, player, nil
}

// LeaveRoom removes a seat by player id. The last player out deletes
// the room entirely: a zero-size room must not persist. No broadcast;
// the remaining peer learns of a departure through the disconnect hook
// or a failed turn update.
func (c *Coordinator) LeaveRoom(ctx context.Context, roomName, playerID string) error {
	roomName = NormalizeName(roomName)
	if roomName == "" || playerID == "" {
		return ErrInvalidInput
	}

	unlock := c.lockRoom(roomName)
	defer unlock()

	room, err := c.store.GetRoom(ctx, roomName)
	if err != nil {
		return err
	}
	player := room.FindPlayerByID(playerID)
	if player == nil {
		return fmt.Errorf("%w: player %s, room %s", ErrUserNotFound, playerID, roomName)
	}

	if err := c.store.UnbindConnection(ctx, player.ConnectionAddress); err != nil {
		log.Printf("[LEAVE-ERROR] Error unbinding connection %s: %v", player.ConnectionAddress, err)
	}

	room, err = c.store.RemovePlayer(ctx, roomName, playerID)
	if err != nil {
		return err
	}
	if room.Size == 0 {
		if err := c.store.DeleteRoom(ctx, roomName); err != nil {
			return err
		}
		c.discardRoom(ctx, roomName)
		log.Printf("[LEAVE] Room %s emptied and deleted", roomName)
		return nil
	}

	c.archiveRoom(ctx, room)
	log.Printf("[LEAVE] Player %s left room %s, %d remaining", playerID, roomName, room.Size)
	return nil
}

// UpdateBoard accepts a new board token from the side whose turn it
// is, flips the turn and broadcasts the updated room snapshot to the
// whole room, sender included, so both peers converge on the
// server-held state. A claimed color that does not match the stored
// turn is refused with ErrTurnConflict.
func (c *Coordinator) UpdateBoard(ctx context.Context, roomName, boardToken string, senderColor models.Color) (*models.RoomSession, error) {
	roomName = NormalizeName(roomName)
	if roomName == "" || boardToken == "" || !senderColor.Valid() {
		return nil, ErrInvalidInput
	}

	unlock := c.lockRoom(roomName)
	defer unlock()

	room, err := c.store.GetRoom(ctx, roomName)
	if err != nil {
		return nil, err
	}
	if room.Turn != senderColor {
		return nil, fmt.Errorf("%w: claimed %s, turn is %s", ErrTurnConflict, senderColor, room.Turn)
	}

	room, err = c.store.UpdateBoard(ctx, roomName, boardToken, senderColor.Opposite())
	if err != nil {
		return nil, err
	}
	c.archiveRoom(ctx, room)

	c.bc.SendToRoom(roomName, "newBoard", map[string]interface{}{"room": room})
	return room, nil
}

// Alert relays an out-of-band notification. A draw proposal goes to
// the room excluding the proposer, so they are not asked to answer
// their own offer; every other title goes to the full room so both
// peers observe the same terminal notice. Resignation and game-over
// also latch the room's is_over flag.
func (c *Coordinator) Alert(ctx context.Context, address, roomName, title, content string) error {
	roomName = NormalizeName(roomName)
	if roomName == "" || title == "" {
		return ErrInvalidInput
	}

	unlock := c.lockRoom(roomName)
	defer unlock()

	room, err := c.store.GetRoom(ctx, roomName)
	if err != nil {
		return err
	}

	if (title == game_constants.AlertGameOver || title == game_constants.AlertResignation) && !room.IsOver {
		room.IsOver = true
		room.UpdatedAt = time.Now()
		if err := c.store.PutRoom(ctx, room); err != nil {
			return err
		}
		c.archiveRoom(ctx, room)
		log.Printf("[ALERT] Room %s marked over (%s)", roomName, title)
	}

	payload := map[string]interface{}{"title": title, "content": content}
	if title == game_constants.AlertDrawProposal {
		c.bc.SendToRoomExcept(roomName, address, "newAlert", payload)
	} else {
		c.bc.SendToRoom(roomName, "newAlert", payload)
	}
	return nil
}

// AskToJoin relays an initial offer+candidate to the room's occupant
// so they can answer the requester directly. The payloads are opaque;
// the last pair is kept on the session so a rejoining peer can resume
// negotiation.
func (c *Coordinator) AskToJoin(ctx context.Context, address, username, roomName, sdpOffer, iceCandidate string) error {
	username = NormalizeName(username)
	roomName = NormalizeName(roomName)
	if username == "" || roomName == "" || sdpOffer == "" || iceCandidate == "" {
		return ErrInvalidInput
	}

	unlock := c.lockRoom(roomName)
	defer unlock()

	room, err := c.store.GetRoom(ctx, roomName)
	if err != nil {
		return err
	}
	if room.Size > 1 && room.FindPlayerByName(username) == nil {
		return fmt.Errorf("%w: %s", ErrRoomFull, roomName)
	}

	room.LastOffer = sdpOffer
	room.LastCandidate = iceCandidate
	room.UpdatedAt = time.Now()
	if err := c.store.PutRoom(ctx, room); err != nil {
		return err
	}
	c.archiveRoom(ctx, room)

	c.bc.SendToRoomExcept(roomName, address, "asking-to-join", map[string]interface{}{
		"from":         address,
		"userName":     username,
		"sdpOffer":     sdpOffer,
		"iceCandidate": iceCandidate,
	})
	return nil
}

// SendAnswer forwards an answer+candidate straight to the requester's
// connection address. This is the one relay addressed by connection id
// rather than room, because the answer must reach the specific
// requester, not every room member.
func (c *Coordinator) SendAnswer(ctx context.Context, address, roomName, username, targetAddress, sdpAnswer, iceCandidate string) error {
	if roomName == "" || username == "" || targetAddress == "" || sdpAnswer == "" || iceCandidate == "" {
		return ErrInvalidInput
	}
	c.bc.SendTo(targetAddress, "answer", map[string]interface{}{
		"from":         address,
		"roomName":     NormalizeName(roomName),
		"userName":     NormalizeName(username),
		"sdpAnswer":    sdpAnswer,
		"iceCandidate": iceCandidate,
	})
	return nil
}

// SendOffer is the generic point-to-point relay for negotiation rounds
// after the initial handshake. The message is stamped with the
// sender's own address so the recipient can reply.
func (c *Coordinator) SendOffer(ctx context.Context, address, targetAddress, offer, candidate string) error {
	if targetAddress == "" || offer == "" {
		return ErrInvalidInput
	}
	c.bc.SendTo(targetAddress, "newOffer", map[string]interface{}{
		"from":      address,
		"offer":     offer,
		"candidate": candidate,
	})
	return nil
}

// SendICEUpdate forwards a lone candidate point-to-point.
func (c *Coordinator) SendICEUpdate(ctx context.Context, address, targetAddress, candidate string) error {
	if targetAddress == "" || candidate == "" {
		return ErrInvalidInput
	}
	c.bc.SendTo(targetAddress, "newCandidate", map[string]interface{}{
		"from":      address,
		"candidate": candidate,
	})
	return nil
}

// HandleDisconnect resolves an abrupt socket closure to an implicit
// leave through the connection index, then tells the surviving peer.
// A stale socket that closes after its player already reconnected on a
// fresh address must not evict the fresh seat.
func (c *Coordinator) HandleDisconnect(ctx context.Context, address string) error {
	binding, err := c.store.GetConnectionBinding(ctx, address)
	if err != nil {
		return err
	}
	if binding == nil {
		return nil // connection never joined a room
	}
	if err := c.store.UnbindConnection(ctx, address); err != nil {
		log.Printf("[DISCONNECT-ERROR] Error unbinding connection %s: %v", address, err)
	}

	unlock := c.lockRoom(binding.RoomName)
	defer unlock()

	room, err := c.store.GetRoom(ctx, binding.RoomName)
	if err != nil {
		return nil // room already gone, nothing to clean
	}
	player := room.FindPlayerByID(binding.PlayerID)
	if player == nil || player.ConnectionAddress != address {
		return nil // seat already released or rebound to a new socket
	}

	room, err = c.store.RemovePlayer(ctx, binding.RoomName, binding.PlayerID)
	if err != nil {
		return err
	}
	if room.Size == 0 {
		if err := c.store.DeleteRoom(ctx, binding.RoomName); err != nil {
			return err
		}
		c.discardRoom(ctx, binding.RoomName)
		log.Printf("[DISCONNECT] Room %s emptied and deleted", binding.RoomName)
		return nil
	}

	c.archiveRoom(ctx, room)
	c.bc.SendToRoom(binding.RoomName, "player-left", map[string]interface{}{
		"room":     room,
		"username": binding.Username,
		"reason":   "disconnected",
	})
	log.Printf("[DISCONNECT] %s dropped from room %s", binding.Username, binding.RoomName)
	return nil
}

func payloadRoomPlayer(room *models.RoomSession, player *models.SessionPlayer) map[string]interface{} {
	return map[string]interface{}{"room": room, "player": player}
}
