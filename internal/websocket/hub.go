// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"bizcare-service/internal/domain/contract"
	wstypes "bizcare-service/internal/domain/websocket"

	"go.uber.org/zap"
)

const broadcastBuffer = 256

// Hub fans committed contract events out to connected managers. It is the
// contract.Publisher used by the contract service.
type Hub struct {
	// Registered clients by connection id
	clients map[string]*Client
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	done     chan struct{}
	stopOnce sync.Once

	logger *zap.Logger
}

type BroadcastMessage struct {
	Channel wstypes.ChannelType
	Message *wstypes.WSMessage
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage, broadcastBuffer),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns client registration and delivery until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// Register hands a connected client to the hub.
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues a contract event for every client subscribed to the
// contracts channel. It never blocks; when the queue is full the event is
// dropped and logged.
func (h *Hub) Publish(ctx context.Context, evt contract.Event) {
	msg := &BroadcastMessage{
		Channel: wstypes.ChannelContracts,
		Message: wstypes.NewMessage(wstypes.EventType(evt.Type), evt),
	}

	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping event",
			zap.String("event", string(evt.Type)),
			zap.String("contract_id", evt.ContractID),
		)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("websocket client connected",
		zap.String("client_id", client.id),
		zap.String("subject", client.subject),
		zap.Int("total", total),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"client_id": client.id,
		"subject":   client.subject,
		"channels":  client.Channels(),
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	_, exists := h.clients[client.id]
	if exists {
		delete(h.clients, client.id)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !exists {
		return
	}
	client.Close()

	h.logger.Info("websocket client disconnected",
		zap.String("client_id", client.id),
		zap.String("subject", client.subject),
		zap.Int("total", total),
	)
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	data, err := msg.Message.ToJSON()
	if err != nil {
		h.logger.Error("failed to marshal websocket message", zap.Error(err))
		return
	}

	var slow []*Client
	h.mu.RLock()
	for _, client := range h.clients {
		if !client.IsSubscribed(msg.Channel) {
			continue
		}
		if err := client.enqueue(data); err != nil {
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("dropping slow websocket client", zap.String("client_id", client.id))
		h.unregisterClient(client)
	}
}

// TotalClients returns the number of connected clients.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*Client)
	h.mu.Unlock()

	for _, client := range clients {
		client.Close()
	}
}
