package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/config"
	dbpkg "github.com/BruksfildServices01/service-desk/internal/db"
	infraRepo "github.com/BruksfildServices01/service-desk/internal/infra/repository"
	"github.com/BruksfildServices01/service-desk/internal/routes"
	"github.com/BruksfildServices01/service-desk/internal/storage"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// newFeed usa o redis quando configurado; sem ele os eventos ficam no processo.
func newFeed(ctx context.Context, cfg *config.Config) (changefeed.Feed, func()) {
	if cfg.RedisURL == "" {
		return changefeed.NewMemoryFeed(), func() {}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	client := redis.NewClient(opts)
	feed, err := changefeed.NewRedisFeed(ctx, client, changefeed.DefaultRedisPrefix)
	if err != nil {
		log.Printf("[changefeed] redis unavailable (%v), using in-process feed", err)
		_ = client.Close()
		return changefeed.NewMemoryFeed(), func() {}
	}

	log.Printf("[changefeed] redis pub/sub")
	return feed, func() {
		_ = feed.Close()
		_ = client.Close()
	}
}

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 SESSÃO
	// ======================================================
	feed, closeFeed := newFeed(ctx, cfg)
	defer closeFeed()

	stores := workspace.GormStores(db, feed)
	if cfg.DemoMode {
		stores = workspace.DemoStores(db, feed)
	}

	ws := workspace.New(stores, feed)
	if err := ws.Open(ctx); err != nil {
		log.Fatalf("failed to load workspace: %v", err)
	}
	defer ws.Close()

	dispatcher := audit.NewDispatcher(audit.New(db))
	defer dispatcher.Close()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "demo": cfg.DemoMode})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Workspace: ws,
		Business:  infraRepo.NewBusinessGormRepository(db),
		Storage:   storage.New(ctx, cfg),
		Audit:     dispatcher,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
		// streams SSE terminam junto com o sinal de parada
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
