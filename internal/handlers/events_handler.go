package handlers

import (
	"io"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
)

const eventBuffer = 32

// EventsHandler repassa o feed de alterações ao navegador via SSE. O front
// recarrega a lista da tabela indicada em cada evento.
type EventsHandler struct {
	feed      changefeed.Feed
	keepAlive time.Duration
}

func NewEventsHandler(feed changefeed.Feed) *EventsHandler {
	return &EventsHandler{feed: feed, keepAlive: 15 * time.Second}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	events := make(chan changefeed.Event, eventBuffer)

	// o feed chama o handler de forma síncrona: nunca bloquear aqui
	unsubscribe := h.feed.Subscribe(changefeed.TopicAll, func(ev changefeed.Event) {
		select {
		case events <- ev:
		default:
			log.Printf("[events] cliente lento, descartando evento %s/%d", ev.Topic, ev.ID)
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()

	c.SSEvent("ready", gin.H{"at": time.Now()})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-events:
			c.SSEvent(ev.Topic, ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
