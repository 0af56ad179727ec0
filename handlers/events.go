package handlers

import (
	"io"
	"time"

	"campusporter/services/events"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const heartbeatInterval = 25 * time.Second

type EventsHandler struct {
	Broker *events.Broker
	Logger *zap.Logger
}

func NewEventsHandler(broker *events.Broker, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{Broker: broker, Logger: logger}
}

// StreamEvents handles GET /api/events as a server-sent event stream.
func (h *EventsHandler) StreamEvents(c *gin.Context) {
	ch := h.Broker.Subscribe()
	defer h.Broker.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	h.Logger.Debug("event stream opened", zap.Int("subscribers", h.Broker.Subscribers()))

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{"at": time.Now()})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	h.Logger.Debug("event stream closed")
}
