package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/animus-mundi/internal/config"
	"github.com/jwebster45206/animus-mundi/pkg/storage"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.Config
		want    any
		wantErr bool
	}{
		{"memory", config.Config{StorageBackend: config.BackendMemory}, &storage.MockStorage{}, false},
		{"redis", config.Config{StorageBackend: config.BackendRedis, RedisURL: mr.Addr()}, &RedisStorage{}, false},
		{"sqlite", config.Config{StorageBackend: config.BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "a.db")}, &SQLiteStorage{}, false},
		{"unknown", config.Config{StorageBackend: "etcd"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, &tt.cfg, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
			assert.NoError(t, s.Ping(ctx))
		})
	}
}
