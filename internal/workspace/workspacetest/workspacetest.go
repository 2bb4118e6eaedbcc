// Package workspacetest monta um workspace em sqlite na memória para os
// testes dos casos de uso e handlers.
package workspacetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/db"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type Fixture struct {
	DB     *gorm.DB
	Feed   *changefeed.MemoryFeed
	Stores workspace.Stores
	WS     *workspace.Workspace
}

// New abre o workspace no modo demonstração. mutate pode trocar stores
// antes da abertura (por exemplo, para simular falha de rede).
func New(t *testing.T, mutate ...func(*workspace.Stores)) *Fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	feed := changefeed.NewMemoryFeed()
	stores := workspace.DemoStores(gdb, feed)
	for _, m := range mutate {
		m(&stores)
	}

	ws := workspace.New(stores, feed)
	require.NoError(t, ws.Open(context.Background()))
	t.Cleanup(ws.Close)

	return &Fixture{DB: gdb, Feed: feed, Stores: stores, WS: ws}
}
