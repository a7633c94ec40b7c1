package hub_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/hub"
)

// fakeHandle records deliveries in memory so broker behavior can be observed
// without a WebSocket connection.
type fakeHandle struct {
	id     string
	userID uint

	mu      sync.Mutex
	events  [][]byte
	failing bool
	closed  bool
}

func newFakeHandle(id string, userID uint) *fakeHandle {
	return &fakeHandle{id: id, userID: userID}
}

func (f *fakeHandle) ID() string   { return f.id }
func (f *fakeHandle) UserID() uint { return f.userID }

func (f *fakeHandle) Deliver(event []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("connection dropped")
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeHandle) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeHandle) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.events))
	copy(out, f.events)
	return out
}

func (f *fakeHandle) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestBroadcastReachesAllMembers(t *testing.T) {
	h := hub.NewHub()
	buyer := newFakeHandle("a", 1)
	seller := newFakeHandle("b", 2)
	h.Join(42, buyer)
	h.Join(42, seller)

	h.Broadcast(42, []byte(`{"kind":"chat-message"}`), nil)

	require.Len(t, buyer.received(), 1)
	require.Len(t, seller.received(), 1)
	assert.Equal(t, []byte(`{"kind":"chat-message"}`), seller.received()[0])
}

func TestBroadcastExcludesOriginator(t *testing.T) {
	h := hub.NewHub()
	typist := newFakeHandle("a", 1)
	other := newFakeHandle("b", 2)
	otherSecondDevice := newFakeHandle("c", 2)
	h.Join(42, typist)
	h.Join(42, other)
	h.Join(42, otherSecondDevice)

	h.Broadcast(42, []byte(`{"kind":"typing"}`), typist)

	assert.Empty(t, typist.received(), "typing event must not echo to its originator")
	assert.Len(t, other.received(), 1)
	assert.Len(t, otherSecondDevice.received(), 1)
}

func TestBroadcastScopedToRoom(t *testing.T) {
	h := hub.NewHub()
	inRoom := newFakeHandle("a", 1)
	elsewhere := newFakeHandle("b", 2)
	h.Join(42, inRoom)
	h.Join(43, elsewhere)

	h.Broadcast(42, []byte("x"), nil)

	assert.Len(t, inRoom.received(), 1)
	assert.Empty(t, elsewhere.received())
}

func TestLeaveIsIdempotent(t *testing.T) {
	h := hub.NewHub()
	handle := newFakeHandle("a", 1)
	h.Join(42, handle)

	h.Leave(42, handle)
	h.Leave(42, handle)
	h.Leave(99, handle)

	assert.Equal(t, 0, h.RoomSize(42))
	h.Broadcast(42, []byte("x"), nil)
	assert.Empty(t, handle.received())
}

func TestDeadHandleEvictedWithoutAbortingFanout(t *testing.T) {
	h := hub.NewHub()
	alive := newFakeHandle("a", 1)
	dead := newFakeHandle("b", 2)
	dead.failing = true
	h.Join(42, alive)
	h.Join(42, dead)

	h.Broadcast(42, []byte("x"), nil)

	assert.Len(t, alive.received(), 1, "healthy recipients still get the event")
	assert.Equal(t, 1, h.RoomSize(42), "failed handle is implicitly removed")
	assert.True(t, dead.isClosed())
	assert.False(t, h.IsOnline(42, 2))
}

func TestIsOnline(t *testing.T) {
	h := hub.NewHub()
	handle := newFakeHandle("a", 7)

	assert.False(t, h.IsOnline(42, 7))
	h.Join(42, handle)
	assert.True(t, h.IsOnline(42, 7))
	assert.False(t, h.IsOnline(42, 8))
	h.Leave(42, handle)
	assert.False(t, h.IsOnline(42, 7))
}

func TestConcurrentJoinLeaveBroadcast(t *testing.T) {
	h := hub.NewHub()
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			handle := newFakeHandle(fmt.Sprintf("h%d", n), uint(n))
			roomID := uint(n % 4)
			h.Join(roomID, handle)
			h.Broadcast(roomID, []byte("x"), nil)
			h.Leave(roomID, handle)
		}(i)
	}
	wg.Wait()

	for room := uint(0); room < 4; room++ {
		assert.Equal(t, 0, h.RoomSize(room))
	}
}
