package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hr-console/internal/auth/authtest"
	"github.com/peopleops/hr-console/internal/config"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/tokenstore"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "hr-console", Version: "test"},
		API:   config.APIConfig{BaseURL: "http://127.0.0.1:1", LoginPath: "/Authentication/Login", Timeout: time.Second},
		Store: config.StoreConfig{Backend: backend},
		Redis: config.RedisConfig{KeyPrefix: "hr-console:session"},
	}
}

func TestBuildRestoresRedisSession(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(config.StoreRedis)
	cfg.Redis.Addr = mr.Addr()

	token := authtest.UserToken(t, time.Hour, "7", "Bo", string(domain.RoleGeneralManager))
	require.NoError(t, mr.Set("hr-console:session:token", token))
	require.NoError(t, mr.Set("hr-console:session:user", `{"id":"7","name":"Bo","username":"bo@example.com","role":"General Manager"}`))

	c, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer c.Close()

	snap := c.Session.Snapshot(context.Background())
	require.True(t, snap.Authenticated())
	assert.Equal(t, "bo@example.com", snap.Identity.Username)
	require.Len(t, c.Audit.Entries(), 1)
	assert.True(t, c.Audit.Entries()[0].Restored)

	console, err := c.Console()
	require.NoError(t, err)
	resp, err := console.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"redis":"ok"`)

	mr.Close()
	resp, err = console.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestBuildDiscardsExpiredFileSession(t *testing.T) {
	cfg := testConfig(config.StoreFile)
	cfg.Store.Path = filepath.Join(t.TempDir(), "session.json")

	store := tokenstore.NewFileStore(cfg.Store.Path)
	require.NoError(t, store.Save(context.Background(), tokenstore.Record{
		Token:    authtest.UserToken(t, -time.Minute, "7", "Bo", string(domain.RoleEmployee)),
		Identity: domain.Identity{ID: "7", Name: "Bo", Role: domain.RoleEmployee},
	}))

	c, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Session.Snapshot(context.Background()).Authenticated())
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, tokenstore.ErrNoSession)
	assert.Equal(t, domain.RouteLogin, c.Navigator.Navigate(context.Background(), domain.RouteEmployees).Target)
}

func TestBuildMemoryStore(t *testing.T) {
	c, err := Build(context.Background(), testConfig(config.StoreMemory), nil)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Store.(*tokenstore.MemoryStore)
	assert.True(t, ok)
	assert.Nil(t, c.Redis)
}
