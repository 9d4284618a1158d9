package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	pgconfig "Chessio/config/postgres"
	pg_models "Chessio/models/postgres"
	"Chessio/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Needs a running PostgreSQL; skips when POSTGRES_HOST is unset.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST not set, skipping controller tests")
	}
	db, err := pgconfig.ConnectGORM()
	require.NoError(t, err)
	require.NoError(t, pgconfig.MigrateDatabase(db))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db
}

func TestPing(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestGetRoomInfo(t *testing.T) {
	r, db := setupRouter(t)

	room := pg_models.Room{
		Name:        "controller-test-room",
		CreatorName: "alice",
		Size:        1,
		BoardState:  "start",
		Turn:        "white",
	}
	require.NoError(t, db.Create(&room).Error)
	t.Cleanup(func() {
		db.Where("name = ?", room.Name).Delete(&pg_models.Room{})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/rooms/Controller-Test-Room", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got pg_models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "controller-test-room", got.Name)
	assert.Equal(t, "alice", got.CreatorName)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/rooms/no-such-room", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
