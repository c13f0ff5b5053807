package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-phoneshop-pos/internal/model"
	"go-phoneshop-pos/internal/ws"
)

var testDBSeq int64

// newTestDB opens an isolated in-memory store with the sales schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Sale{}))
	return db
}

// newTestHub returns a running hub so event broadcasts from services have
// a consumer and never block.
func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}
