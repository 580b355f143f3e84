package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                config.EnvDev,
		ServiceName:           "league-standings-test",
		HTTPAddr:              ":0",
		ReadTimeout:           time.Second,
		WriteTimeout:          time.Second,
		StorageDriver:         config.StorageDriverMemory,
		SeedMemoryStore:       true,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
		CORSAllowedOrigins:    []string{"*"},
		RecomputeWorkers:      2,
		FormDefaultLimit:      5,
		FormSeasonLimit:       10,
		FormMaxLimit:          50,
		HeadToHeadRecentLimit: 5,
	}
}

func TestNew_MemoryStoreServesRebuiltStandings(t *testing.T) {
	application, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/1/standings", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.Contains(rec.Body.String(), `"position":1`))

	rec = httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"teamCount":6`)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	_, err := New(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.StorageDriver = "sqlite"
	_, err = New(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "unsupported storage driver")
}

func TestFormatDBQueryForTrace_Truncates(t *testing.T) {
	assert.Empty(t, formatDBQueryForTrace("   "))

	long := formatDBQueryForTrace(strings.Repeat("x", maxTracedQueryLength+10))
	assert.Len(t, long, maxTracedQueryLength+3)
	assert.True(t, strings.HasSuffix(long, "..."))
}
