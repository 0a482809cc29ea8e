// Package live раздаёт события матчей подписчикам по WebSocket.
// Клиенты подписаны на комнаты вида "match:{id}"; запись в комнату
// идёт через Dispatcher, hub занимается только соединениями.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	Room string

	mu     sync.Mutex
	closed bool
}

// Message — конверт для всех сообщений, уходящих в комнату.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	Room    string      `json:"room,omitempty"`
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.logger.Debug("live client registered",
				slog.String("room", client.Room),
				slog.Int("room_clients", len(h.rooms[client.Room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if roomClients, ok := h.rooms[client.Room]; ok {
				if _, okClient := roomClients[client]; okClient {
					client.closeSend()
					delete(roomClients, client)
					if len(roomClients) == 0 {
						delete(h.rooms, client.Room)
					}
					h.logger.Debug("live client unregistered",
						slog.String("room", client.Room),
						slog.Int("room_clients", len(roomClients)))
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom рассылает сообщение всем клиентам комнаты. Клиенты
// с переполненным каналом пропускаются, не блокируя остальных.
func (h *Hub) BroadcastToRoom(room string, message Message) {
	message.Room = room

	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal live message",
			slog.String("room", room), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[room]
	if !ok {
		return
	}
	for client := range roomClients {
		client.mu.Lock()
		if client.closed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("live client send buffer full, dropping message",
				slog.String("room", room))
		}
		client.mu.Unlock()
	}
}

// RoomClients возвращает число подписчиков комнаты.
func (h *Hub) RoomClients(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

// ReadPump читает соединение до закрытия. Входящие сообщения клиентов
// игнорируются: канал односторонний, от сервера к зрителям.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Досылаем накопившееся в буфере одним фреймом.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
