package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"logidash/mq/mq"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

func newUpgrader(isDev bool) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// any origin in dev, same origin otherwise
			if isDev {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host
		},
	}
}

// eventStream upgrades to a websocket and forwards queue events of the topic named by
// the "topic" query parameter (all topics by default) until either side goes away.
func eventStream(events mq.EventQueue, upgrader websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if events == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "event queue disabled"})
			return
		}
		topic := c.DefaultQuery("topic", mq.AllTopics)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// the read loop only notices the peer closing
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		out := make(chan mq.Event)
		mq.SubscribeProcessor[mq.EventQueue, mq.Event, mq.Event](ctx, topic, events, func(ev mq.Event) (mq.Event, bool, error) {
			return ev, false, nil
		}, out)

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-out:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}
}
