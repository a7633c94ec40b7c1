package hub

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

var (
	errSendClosed = errors.New("hub: send channel closed")
	errSendFull   = errors.New("hub: send channel full")
)

// Notifier is where the session reports a message whose recipient has no live
// connection, so a background worker can deliver an out-of-band notification.
type Notifier interface {
	NotifyOffline(ctx context.Context, roomID, messageID, recipientID uint)
}

// Client is one authorized WebSocket connection to one room. It owns the
// per-connection state machine: inbound frames are decoded, validated,
// persisted when they change durable state, and only then fanned out through
// the hub. Clients never reference each other; all cross-connection traffic
// goes through the hub.
type Client struct {
	id       string
	hub      *Hub
	chat     *service.ChatService
	notifier Notifier
	conn     *websocket.Conn
	room     *domain.Room
	userID   uint
	userName string

	send   chan []byte
	sendMu sync.Mutex
	closed bool
}

// NewClient wraps an upgraded connection. The caller must have authorized
// userID as a participant of room before constructing the client.
func NewClient(h *Hub, chat *service.ChatService, notifier Notifier, conn *websocket.Conn, room *domain.Room, userID uint, userName string) *Client {
	return &Client{
		id:       uuid.NewString(),
		hub:      h,
		chat:     chat,
		notifier: notifier,
		conn:     conn,
		room:     room,
		userID:   userID,
		userName: userName,
		send:     make(chan []byte, 256),
	}
}

// ID returns the handle id used for log correlation.
func (c *Client) ID() string { return c.id }

// UserID returns the authenticated participant behind this connection.
func (c *Client) UserID() uint { return c.userID }

// Deliver queues an event for the write pump without blocking. It fails when
// the connection is already closed or its queue is full; the hub evicts the
// handle in both cases and the client catches up from persisted state on
// reconnect.
func (c *Client) Deliver(event []byte) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return errSendClosed
	}
	select {
	case c.send <- event:
		return nil
	default:
		return errSendFull
	}
}

// Close shuts the send channel exactly once, which stops the write pump.
func (c *Client) Close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Run joins the room, announces the participant to everyone else, and starts
// the read/write pumps.
func (c *Client) Run() {
	c.hub.Join(c.room.ID, c)
	if payload, err := domain.NewParticipantJoinedEvent(c.userID, c.userName); err == nil {
		c.hub.Broadcast(c.room.ID, payload, c)
	}
	go c.writePump()
	go c.readPump()
}

// readPump pumps frames from the WebSocket into the event dispatcher. Its
// defer is the guaranteed-release half of the Join in Run: every exit path,
// normal close, read error, or eviction, deregisters the handle before the
// connection is torn down.
func (c *Client) readPump() {
	logCtx := logrus.WithFields(logrus.Fields{
		"room_id":   c.room.ID,
		"user_id":   c.userID,
		"handle_id": c.id,
	})
	defer func() {
		c.hub.Leave(c.room.ID, c)
		c.Close()
		c.conn.Close()
		logCtx.Info("Connection closed, left room")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logCtx.WithError(err).Warn("WebSocket read error")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		c.dispatch(raw)
	}
}

// dispatch decodes one inbound frame and routes it by kind. Persistence calls
// complete before the corresponding broadcast is issued, and a persistence
// failure aborts only that event: the connection stays open.
func (c *Client) dispatch(raw []byte) {
	// Store calls outlive the frame that triggered them, so they run on a
	// background context rather than the connection's.
	ctx := context.Background()

	ev, err := domain.ParseInboundEvent(raw)
	if err != nil {
		logrus.WithFields(logrus.Fields{"room_id": c.room.ID, "user_id": c.userID}).
			WithError(err).Debug("Dropping malformed frame")
		return
	}

	switch ev.Kind {
	case domain.EventMessage:
		c.handleMessage(ctx, ev.Content)
	case domain.EventRead:
		c.handleRead(ctx, ev.MessageIDs)
	case domain.EventTyping:
		c.handleTyping(ev.IsTyping)
	default:
		// Unrecognized kinds are dropped without closing the connection.
	}
}

func (c *Client) handleMessage(ctx context.Context, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}

	msg, err := c.chat.SendMessage(ctx, c.room.ID, c.userID, content)
	if err != nil {
		logrus.WithFields(logrus.Fields{"room_id": c.room.ID, "user_id": c.userID}).
			WithError(err).Warn("Message not persisted, broadcast aborted")
		return
	}

	payload, err := domain.NewChatMessageEvent(msg, c.userName)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode chat-message event")
		return
	}
	// No exclusion: the sender receives the persisted message back as its
	// delivery confirmation.
	c.hub.Broadcast(c.room.ID, payload, nil)

	recipient := c.room.OtherParticipant(c.userID)
	if c.notifier != nil && !c.hub.IsOnline(c.room.ID, recipient) {
		c.notifier.NotifyOffline(ctx, c.room.ID, msg.ID, recipient)
	}
}

func (c *Client) handleRead(ctx context.Context, messageIDs []uint) {
	affected, err := c.chat.MarkMessagesRead(ctx, c.room.ID, c.userID, messageIDs)
	if err != nil {
		logrus.WithFields(logrus.Fields{"room_id": c.room.ID, "user_id": c.userID}).
			WithError(err).Warn("Mark read failed, receipt aborted")
		return
	}
	if len(affected) == 0 {
		return
	}

	payload, err := domain.NewReadReceiptEvent(affected, c.userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode read-receipt event")
		return
	}
	c.hub.Broadcast(c.room.ID, payload, nil)
}

func (c *Client) handleTyping(isTyping bool) {
	payload, err := domain.NewTypingEvent(c.userID, c.userName, isTyping)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode typing event")
		return
	}
	// Never persisted, never echoed to the typist.
	c.hub.Broadcast(c.room.ID, payload, c)
}

// writePump pumps queued events to the WebSocket and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, event); err != nil {
				logrus.WithFields(logrus.Fields{"room_id": c.room.ID, "user_id": c.userID}).
					WithError(err).Warn("Failed to write to websocket")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
