package realtime

import (
	"context"
	"encoding/json"
	"expvar"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Event types pushed to partners.
const (
	EventBalanceChanged   = "wallet.balance_changed"
	EventListingPublished = "listing.published"
)

// userEventsChannel fans events out to every API instance.
const userEventsChannel = "realtime:user_events"

const sendBufferSize = 256

var (
	connectionsGauge   = expvar.NewInt("realtime_connections")
	eventsSentTotal    = expvar.NewInt("realtime_events_sent_total")
	eventsDroppedTotal = expvar.NewInt("realtime_events_dropped_total")
)

// Event is the frame written to the socket.
type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// BalanceChangedData is the payload of wallet.balance_changed.
type BalanceChangedData struct {
	Balance decimal.Decimal `json:"balance"`
}

// ListingPublishedData is the payload of listing.published.
type ListingPublishedData struct {
	EntityType string    `json:"entityType"`
	EntityID   uuid.UUID `json:"entityId"`
	IsUpdate   bool      `json:"isUpdate"`
}

type envelope struct {
	UserID           string          `json:"userId"`
	Payload          json.RawMessage `json:"payload"`
	SenderInstanceID string          `json:"senderInstanceId"`
}

// Connection is one open socket of a user.
type Connection struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
}

// NewConnection allocates a connection with the standard send buffer.
func NewConnection(userID uuid.UUID, conn *websocket.Conn) *Connection {
	return &Connection{UserID: userID, Conn: conn, Send: make(chan []byte, sendBufferSize)}
}

// Hub tracks the sockets connected to this instance and relays user events
// between instances through Redis pub/sub.
type Hub struct {
	connections map[uuid.UUID]map[*Connection]struct{}
	mu          sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	pubsub    *redis.PubSub
	publishFn func(ctx context.Context, channel string, payload []byte) error

	ctx        context.Context
	cancel     context.CancelFunc
	instanceID string
}

// NewHub creates a hub. A nil client keeps delivery local to this instance.
func NewHub(redisClient *redis.Client) *Hub {
	return NewHubWithInstanceID(redisClient, uuid.NewString())
}

// NewHubWithInstanceID creates a hub with an explicit instance identifier.
func NewHubWithInstanceID(redisClient *redis.Client, instanceID string) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[uuid.UUID]map[*Connection]struct{}),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
		instanceID:  instanceID,
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, userEventsChannel)
		h.publishFn = func(ctx context.Context, channel string, payload []byte) error {
			return redisClient.Publish(ctx, channel, payload).Err()
		}
	}

	return h
}

// Run processes registrations until Shutdown. Call it in a goroutine.
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.UserID] == nil {
				h.connections[conn.UserID] = make(map[*Connection]struct{})
			}
			h.connections[conn.UserID][conn] = struct{}{}
			h.mu.Unlock()
			connectionsGauge.Add(1)
			log.Debug().Str("user_id", conn.UserID.String()).Msg("Realtime client connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.connections[conn.UserID]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
					connectionsGauge.Add(-1)
				}
				if len(conns) == 0 {
					delete(h.connections, conn.UserID)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("Realtime client disconnected")
		}
	}
}

func (h *Hub) runSubscriber() {
	ch := h.pubsub.Channel()
	for {
		select {
		case <-h.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleRemote(msg.Payload)
		}
	}
}

// handleRemote delivers an event published by another instance.
func (h *Hub) handleRemote(payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return
	}
	if env.SenderInstanceID == h.instanceID {
		return
	}
	userID, err := uuid.Parse(env.UserID)
	if err != nil {
		return
	}
	h.sendLocal(userID, env.Payload)
}

// Register adds a connection.
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.ctx.Done():
	}
}

// Unregister removes a connection and closes its send channel.
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.ctx.Done():
	}
}

// ConnectionCount returns the number of local sockets of a user.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[userID])
}

// Publish delivers an event to every socket of the user on any instance.
// Delivery is best-effort: a full send buffer drops the event.
func (h *Hub) Publish(ctx context.Context, userID uuid.UUID, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.sendLocal(userID, data)

	if h.publishFn == nil {
		return nil
	}
	payload, err := json.Marshal(envelope{
		UserID:           userID.String(),
		Payload:          data,
		SenderInstanceID: h.instanceID,
	})
	if err != nil {
		return err
	}
	return h.publishFn(ctx, userEventsChannel, payload)
}

func (h *Hub) sendLocal(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections[userID] {
		select {
		case conn.Send <- data:
			eventsSentTotal.Add(1)
		default:
			eventsDroppedTotal.Add(1)
			log.Warn().Str("user_id", userID.String()).Msg("Realtime send buffer full, event dropped")
		}
	}
}

// BalanceChanged pushes wallet.balance_changed.
func (h *Hub) BalanceChanged(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) {
	h.notify(ctx, userID, Event{Type: EventBalanceChanged, Data: BalanceChangedData{Balance: balance}})
}

// ListingPublished pushes listing.published.
func (h *Hub) ListingPublished(ctx context.Context, userID uuid.UUID, entityType string, entityID uuid.UUID, isUpdate bool) {
	h.notify(ctx, userID, Event{
		Type: EventListingPublished,
		Data: ListingPublishedData{EntityType: entityType, EntityID: entityID, IsUpdate: isUpdate},
	})
}

func (h *Hub) notify(ctx context.Context, userID uuid.UUID, event Event) {
	if err := h.Publish(ctx, userID, event); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Str("event_type", event.Type).Msg("Realtime fan-out failed")
	}
}

// Shutdown stops the hub and closes the Redis subscription.
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		_ = h.pubsub.Close()
	}
}
