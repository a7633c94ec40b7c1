package hub

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/repository/mocks"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/service"
)

// recordingHandle stands in for the counterpart's connection.
type recordingHandle struct {
	userID uint
	mu     sync.Mutex
	events [][]byte
}

func (r *recordingHandle) ID() string   { return "peer" }
func (r *recordingHandle) UserID() uint { return r.userID }
func (r *recordingHandle) Close()       {}

func (r *recordingHandle) Deliver(event []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingHandle) received() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.events))
	copy(out, r.events)
	return out
}

type sessionFixture struct {
	client      *Client
	hub         *Hub
	peer        *recordingHandle
	messageRepo *mocks.MessageRepository
}

// newSessionFixture wires a Client to a real hub and a mock-backed chat
// service, with the buyer (1) as the session user and the seller (2) as a
// connected peer. The client's own deliveries are captured through a second
// recording handle registered under the same user.
func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	roomRepo := new(mocks.RoomRepository)
	messageRepo := new(mocks.MessageRepository)
	catalog := new(mocks.ItemCatalog)
	userRepo := new(mocks.UserRepository)
	chat := service.NewChatService(roomRepo, messageRepo, catalog, userRepo)

	h := NewHub()
	room := &domain.Room{ID: 42, ItemID: 7, BuyerID: 1, SellerID: 2}
	client := &Client{
		id:       "session-under-test",
		hub:      h,
		chat:     chat,
		room:     room,
		userID:   1,
		userName: "alice",
		send:     make(chan []byte, 16),
	}
	h.Join(42, client)

	peer := &recordingHandle{userID: 2}
	h.Join(42, peer)

	return &sessionFixture{client: client, hub: h, peer: peer, messageRepo: messageRepo}
}

// drainSelf collects what was queued onto the session's own send channel.
func (f *sessionFixture) drainSelf() [][]byte {
	var out [][]byte
	for {
		select {
		case event := <-f.client.send:
			out = append(out, event)
		default:
			return out
		}
	}
}

func TestDispatch_EmptyMessageIsSilentlyDropped(t *testing.T) {
	f := newSessionFixture(t)

	f.client.dispatch([]byte(`{"kind":"message","content":"   "}`))

	f.messageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.peer.received())
	assert.Empty(t, f.drainSelf())
}

func TestDispatch_MessagePersistsThenBroadcastsToWholeRoom(t *testing.T) {
	f := newSessionFixture(t)

	f.messageRepo.On("Save", mock.Anything, mock.MatchedBy(func(msg *domain.Message) bool {
		return msg.RoomID == 42 && msg.SenderID == 1 && msg.Content == "hi"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Message).ID = 10
	}).Return(nil).Once()

	f.client.dispatch([]byte(`{"kind":"message","content":"hi"}`))

	peerEvents := f.peer.received()
	require.Len(t, peerEvents, 1, "counterpart receives the chat-message")
	assert.Contains(t, string(peerEvents[0]), `"kind":"chat-message"`)
	assert.Contains(t, string(peerEvents[0]), `"content":"hi"`)
	assert.Contains(t, string(peerEvents[0]), `"sender_name":"alice"`)

	selfEvents := f.drainSelf()
	require.Len(t, selfEvents, 1, "sender receives its own confirmation")
	f.messageRepo.AssertExpectations(t)
}

func TestDispatch_PersistenceFailureAbortsBroadcastOnly(t *testing.T) {
	f := newSessionFixture(t)

	f.messageRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Message")).
		Return(errors.New("store unavailable")).Once()

	f.client.dispatch([]byte(`{"kind":"message","content":"hi"}`))

	assert.Empty(t, f.peer.received(), "no broadcast may describe unpersisted state")
	assert.Empty(t, f.drainSelf())
	assert.Equal(t, 2, f.hub.RoomSize(42), "the session stays joined after a failed event")
}

func TestDispatch_ReadBroadcastsAffectedIDs(t *testing.T) {
	f := newSessionFixture(t)

	f.messageRepo.On("MarkRead", mock.Anything, uint(42), []uint{3, 4}, uint(1)).
		Return([]uint{3}, nil).Once()

	f.client.dispatch([]byte(`{"kind":"read","message_ids":[3,4]}`))

	peerEvents := f.peer.received()
	require.Len(t, peerEvents, 1)
	assert.Contains(t, string(peerEvents[0]), `"kind":"read-receipt"`)
	assert.Contains(t, string(peerEvents[0]), `"message_ids":[3]`)
	require.Len(t, f.drainSelf(), 1, "read receipts go to the whole room, acting user included")
}

func TestDispatch_TypingNeverEchoesToTypist(t *testing.T) {
	f := newSessionFixture(t)

	f.client.dispatch([]byte(`{"kind":"typing","is_typing":true}`))

	peerEvents := f.peer.received()
	require.Len(t, peerEvents, 1)
	assert.Contains(t, string(peerEvents[0]), `"kind":"typing"`)
	assert.Empty(t, f.drainSelf(), "typist must not receive their own indicator")
	f.messageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDispatch_UnknownKindDropped(t *testing.T) {
	f := newSessionFixture(t)

	f.client.dispatch([]byte(`{"kind":"poke"}`))
	f.client.dispatch([]byte(`not json at all`))

	assert.Empty(t, f.peer.received())
	assert.Empty(t, f.drainSelf())
}

func TestDeliverAfterCloseFails(t *testing.T) {
	f := newSessionFixture(t)

	require.NoError(t, f.client.Deliver([]byte("x")))
	f.client.Close()
	f.client.Close() // safe to call twice
	assert.Error(t, f.client.Deliver([]byte("x")))
}
