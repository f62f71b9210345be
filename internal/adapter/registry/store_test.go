package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/config"
)

func TestFileStore(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, testBundle("1"))
	writeBundle(t, root, testBundle("2"))
	store := NewFileStore(root)
	ctx := context.Background()

	t.Run("lists version directories", func(t *testing.T) {
		versions, err := store.Versions(ctx, testModel)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"1", "2"}, versions)
	})

	t.Run("fetches files", func(t *testing.T) {
		data := mustFetch(t, store, "2", ManifestFile)
		assert.Contains(t, string(data), "version: \"2\"")
	})

	t.Run("unknown model", func(t *testing.T) {
		_, err := store.Versions(ctx, "OtherModel")
		assert.ErrorIs(t, err, model.ErrArtifactNotFound)
	})

	t.Run("unknown file", func(t *testing.T) {
		_, err := store.Fetch(ctx, testModel, "1", "missing.json")
		assert.ErrorIs(t, err, model.ErrArtifactNotFound)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		_, err := store.Fetch(ctx, testModel, "..", ManifestFile)
		assert.ErrorIs(t, err, model.ErrArtifactNotFound)

		_, err = store.Fetch(ctx, testModel, "1", "../2/manifest.yaml")
		assert.ErrorIs(t, err, model.ErrArtifactNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	store := memoryStoreWith(t, testBundle("1"))
	ctx := context.Background()

	versions, err := store.Versions(ctx, testModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, versions)

	data := mustFetch(t, store, "1", DefaultClassifierFile)
	data[0] = 'X'
	assert.NotEqual(t, data, mustFetch(t, store, "1", DefaultClassifierFile), "fetch returns a copy")

	store.Delete(testModel, "1")
	_, err = store.Fetch(ctx, testModel, "1", DefaultClassifierFile)
	assert.ErrorIs(t, err, model.ErrArtifactNotFound)
}

func TestHTTPStore(t *testing.T) {
	files, err := testBundle("3").Encode()
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)

		switch {
		case r.URL.Path == "/models/SentimentAnalysisModel/versions":
			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(VersionsResponse{Name: testModel, Versions: []string{"1", "3"}})
			require.NoError(t, err)
		case r.URL.Path == "/models/SentimentAnalysisModel/versions/3/artifacts/manifest.yaml":
			_, _ = w.Write(files[ManifestFile])
		case strings.HasPrefix(r.URL.Path, "/models/Broken/"):
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("registry down"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL+"/", 5*time.Second)
	ctx := context.Background()

	t.Run("lists versions", func(t *testing.T) {
		versions, err := store.Versions(ctx, testModel)

		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, versions)
	})

	t.Run("fetches files", func(t *testing.T) {
		assert.Equal(t, files[ManifestFile], mustFetch(t, store, "3", ManifestFile))
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		_, err := store.Fetch(ctx, testModel, "9", ManifestFile)
		assert.ErrorIs(t, err, model.ErrArtifactNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := store.Versions(ctx, "Broken")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrArtifactNotFound)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("connection error", func(t *testing.T) {
		unreachable := NewHTTPStore("http://localhost:99999", time.Second)
		_, err := unreachable.Versions(ctx, testModel)
		assert.Error(t, err)
	})
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "")
	ctx := context.Background()

	for _, v := range []string{"1", "2"} {
		files, err := testBundle(v).Encode()
		require.NoError(t, err)
		require.NoError(t, store.Publish(ctx, testModel, v, files))
	}

	t.Run("lists published versions", func(t *testing.T) {
		versions, err := store.Versions(ctx, testModel)

		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, versions)
		assert.True(t, mr.Exists("sentiment:models:SentimentAnalysisModel:versions"))
	})

	t.Run("fetches files", func(t *testing.T) {
		data := mustFetch(t, store, "2", ManifestFile)
		assert.Contains(t, string(data), "version: \"2\"")
	})

	t.Run("unknown model", func(t *testing.T) {
		_, err := store.Versions(ctx, "OtherModel")
		assert.ErrorIs(t, err, model.ErrArtifactNotFound)
	})

	t.Run("unknown file", func(t *testing.T) {
		_, err := store.Fetch(ctx, testModel, "2", "missing.json")
		assert.ErrorIs(t, err, model.ErrArtifactNotFound)
	})
}

func TestNewStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tests := []struct {
		name     string
		cfg      config.RegistryConfig
		client   *redis.Client
		expected string
		wantErr  bool
	}{
		{name: "file", cfg: config.RegistryConfig{Backend: "file", Root: t.TempDir()}, expected: "file"},
		{name: "http", cfg: config.RegistryConfig{Backend: "http", Endpoint: "http://registry"}, expected: "http"},
		{name: "http without endpoint", cfg: config.RegistryConfig{Backend: "http"}, wantErr: true},
		{name: "redis", cfg: config.RegistryConfig{Backend: "redis"}, client: client, expected: "redis"},
		{name: "redis without client", cfg: config.RegistryConfig{Backend: "redis"}, wantErr: true},
		{name: "unknown", cfg: config.RegistryConfig{Backend: "s3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(&tt.cfg, tt.client)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, store.Name())
		})
	}
}
