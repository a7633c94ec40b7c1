// Package hub implements the in-process room broker: the registry of live
// connections per room and the fan-out of events to them.
package hub

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Handle is the broker's delivery target: one live connection. Deliver must
// not block; it reports an error when the connection can no longer accept
// events, which the broker treats as an implicit leave.
type Handle interface {
	ID() string
	UserID() uint
	Deliver(event []byte) error
	Close()
}

// Hub maps room ids to the set of currently joined handles. It is injected
// into every component that needs fan-out; there is no ambient global
// registry. All mutation goes through Join/Leave, all reads through
// Broadcast/IsOnline, and the set is guarded so concurrent join, leave, and
// broadcast on the same room never corrupt it. Rooms are independent: no
// operation locks across rooms.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[Handle]bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[Handle]bool)}
}

// Join adds handle to the room's membership set.
func (h *Hub) Join(roomID uint, handle Handle) {
	if handle == nil {
		return
	}
	h.mu.Lock()
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[Handle]bool)
		h.rooms[roomID] = members
	}
	members[handle] = true
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"room_id":   roomID,
		"user_id":   handle.UserID(),
		"handle_id": handle.ID(),
	}).Debug("Handle joined room")
}

// Leave removes handle from the room's membership set. Removing a handle that
// is not present is a no-op, so every disconnect path may call it
// unconditionally.
func (h *Hub) Leave(roomID uint, handle Handle) {
	if handle == nil {
		return
	}
	h.mu.Lock()
	members, ok := h.rooms[roomID]
	if ok {
		delete(members, handle)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	h.mu.Unlock()

	if ok {
		logrus.WithFields(logrus.Fields{
			"room_id":   roomID,
			"user_id":   handle.UserID(),
			"handle_id": handle.ID(),
		}).Debug("Handle left room")
	}
}

// Broadcast delivers event to every handle joined to the room at invocation
// time, except exclude. The membership snapshot is taken under the read lock
// and delivery happens outside it, so a slow recipient never stalls joins or
// leaves. A handle that fails delivery is evicted and closed; the remaining
// recipients still get the event.
func (h *Hub) Broadcast(roomID uint, event []byte, exclude Handle) {
	h.mu.RLock()
	members := h.rooms[roomID]
	recipients := make([]Handle, 0, len(members))
	for handle := range members {
		if handle != exclude {
			recipients = append(recipients, handle)
		}
	}
	h.mu.RUnlock()

	for _, handle := range recipients {
		if err := handle.Deliver(event); err != nil {
			logrus.WithFields(logrus.Fields{
				"room_id":   roomID,
				"user_id":   handle.UserID(),
				"handle_id": handle.ID(),
			}).WithError(err).Warn("Delivery failed, evicting handle")
			h.Leave(roomID, handle)
			handle.Close()
		}
	}
}

// IsOnline reports whether the user has at least one live handle in the room.
func (h *Hub) IsOnline(roomID uint, userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for handle := range h.rooms[roomID] {
		if handle.UserID() == userID {
			return true
		}
	}
	return false
}

// RoomSize returns the number of handles currently joined to the room.
func (h *Hub) RoomSize(roomID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
