// internal/common/database/database_test.go
package database

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"bizpath-workers/internal/common/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresClient_Migrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	client := &PostgresClient{DB: db}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS quiz_responses")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	require.NoError(t, client.Migrate(context.Background()))
	require.NoError(t, client.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()))

	mr.Close()
	assert.Error(t, client.Ping(context.Background()))
}

func TestRedisClient_DeleteByPattern(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	for i := 0; i < 450; i++ {
		require.NoError(t, mr.Set(fmt.Sprintf("rank:paths:%d", i), "[]"))
	}
	require.NoError(t, mr.Set("quiz:response:keep", "{}"))

	deleted, err := client.DeleteByPattern(context.Background(), "rank:paths:*")
	require.NoError(t, err)
	assert.Equal(t, 450, deleted)
	assert.True(t, mr.Exists("quiz:response:keep"))
	assert.Len(t, mr.Keys(), 1)

	deleted, err = client.DeleteByPattern(context.Background(), "rank:paths:*")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

type indexServer struct {
	mu      sync.Mutex
	exists  bool
	created []string
}

func (s *indexServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodHead:
		if !s.exists {
			w.WriteHeader(http.StatusNotFound)
		}
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		s.created = append(s.created, string(body))
		s.exists = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	default:
		_, _ = io.WriteString(w, `{}`)
	}
}

func TestElasticsearchClient_EnsureIndex(t *testing.T) {
	fake := &indexServer{}
	server := httptest.NewServer(fake)
	defer server.Close()

	client, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{server.URL}})
	require.NoError(t, err)

	created, err := client.EnsureIndex(context.Background(), "business-models")
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, fake.created, 1)
	assert.Contains(t, fake.created[0], `"category"`)

	created, err = client.EnsureIndex(context.Background(), "business-models")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, fake.created, 1)
}
