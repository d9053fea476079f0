package web

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"logidash/action"
	"logidash/config"
	dbt "logidash/db/db"
	"logidash/db/mem"
	"logidash/db/pg"
	"logidash/mq/gcppubsub"
	"logidash/mq/goch"
	"logidash/mq/mq"
	"logidash/mq/rabbit"
)

const (
	StoreMemory   = "mem"
	StorePostgres = "pg"
)

type ServiceConfig struct {
	IsDev  bool
	Port   string
	MqMode mq.Mode
	Store  string
}

// OpenStores returns the stores selected by mode and a function releasing them.
func OpenStores(ctx context.Context, mode string) (*dbt.Stores, func(), error) {
	switch mode {
	case "", StoreMemory:
		return mem.NewSeededStores(), func() {}, nil
	case StorePostgres:
		gormDB, err := pg.InitPostgresGORM(pg.CreateDSN())
		if err != nil {
			return nil, nil, err
		}
		stores, err := pg.NewSeededStores(ctx, gormDB)
		if err != nil {
			pg.CloseGORM(gormDB)
			return nil, nil, err
		}
		return stores, func() { pg.CloseGORM(gormDB) }, nil
	}
	return nil, nil, fmt.Errorf("unknown store mode %q", mode)
}

// OpenEventQueue returns the event queue selected by mode.
func OpenEventQueue(ctx context.Context, mode mq.Mode) (mq.EventQueue, error) {
	switch mode {
	case "", mq.ModeGoChan:
		return goch.NewChannelEventQueue(goch.DefaultBufferSize), nil
	case mq.ModeRabbitMQ:
		conn, err := rabbit.NewRabbitConnection(rabbit.CreateAmqpURL())
		if err != nil {
			return nil, err
		}
		queue, err := rabbit.NewEventQueue(conn)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return queue, nil
	case mq.ModeGCPPubSub:
		return gcppubsub.NewEventQueue(ctx, gcppubsub.GetGCPProjectID())
	}
	return nil, fmt.Errorf("unknown message queue mode %q", mode)
}

// NewRouter wires the REST, websocket and metrics endpoints over set. events may be nil,
// which disables the event stream.
func NewRouter(cfg ServiceConfig, set *action.Set, events mq.EventQueue) *gin.Engine {
	if !cfg.IsDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	m := newMetrics()
	setupMiddlewares(r, cfg, m, set.Drivers.Store())

	h := &handlers{
		registry:        NewRegistry(set),
		payables:        set.Payables.Store(),
		defaultPageSize: config.FromEnv().DefaultPageSize,
		metrics:         m,
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", m.handler())
	r.GET("/ws/events", eventStream(events, newUpgrader(cfg.IsDev)))

	api := r.Group("/api")
	api.GET("/reports/payables", h.payablesReport)
	api.GET("/:entity", h.list)
	api.POST("/:entity", h.create)
	api.GET("/:entity/:id", h.get)
	api.POST("/:entity/:id/actions/:action", h.dispatch)
	return r
}

func Serve(cfg ServiceConfig) error {
	ctx := context.Background()

	stores, closeStores, err := OpenStores(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open stores: %w", err)
	}
	defer closeStores()

	events, err := OpenEventQueue(ctx, cfg.MqMode)
	if err != nil {
		return fmt.Errorf("failed to open event queue: %w", err)
	}
	defer events.Close()

	r := NewRouter(cfg, action.NewSet(stores, events), events)
	log.Printf("Serving %s on :%s (store=%s, mq=%s)", config.AppName, cfg.Port, cfg.Store, cfg.MqMode)
	return r.Run(":" + cfg.Port)
}
