package events

import (
	"encoding/json"
	"sync"
	"time"
)

// Event types published to live-update subscribers.
const (
	TypeRequestCreated    = "request.created"
	TypeRequestUpdated    = "request.updated"
	TypeRequestDeclined   = "request.declined"
	TypeNotification      = "notification.created"
	TypeNotificationsRead = "notifications.read"
)

// Event is a single live update. Data is marshalled to JSON on publish.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
	At   time.Time       `json:"at"`
}

// Publisher is what mutating services need from the broker.
type Publisher interface {
	Publish(eventType string, data any)
}

// Broker fans events out to every subscribed stream. Slow subscribers drop events
// instead of blocking the publisher.
type Broker struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
	buffer  int
}

func NewBroker() *Broker {
	return &Broker{
		clients: make(map[chan Event]struct{}),
		buffer:  16,
	}
}

func (b *Broker) Subscribe() chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Subscribers reports the number of open streams.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broker) Publish(eventType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		raw = json.RawMessage(`null`)
	}
	ev := Event{Type: eventType, Data: raw, At: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}
