package overpass

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

// Source supplies the raw dataset, whether from a snapshot or the network.
// The pipeline depends on this contract, not on the HTTP client, so tests can
// inject fixture data.
type Source interface {
	Dataset(ctx context.Context) (*osm.OSM, error)
}

// CachedSource fulfils the cache-or-fetch contract: if the snapshot file
// exists it is used verbatim and the network is never touched; otherwise the
// query is fetched and the raw response written back as the new snapshot.
type CachedSource struct {
	client  *Client
	query   string
	path    string
	refresh bool
	log     *zap.Logger
}

// NewCachedSource creates a source backed by the given client and snapshot
// path. refresh forces a network fetch even when the snapshot exists.
func NewCachedSource(client *Client, query, path string, refresh bool, log *zap.Logger) *CachedSource {
	return &CachedSource{client: client, query: query, path: path, refresh: refresh, log: log}
}

// Dataset returns the decoded dataset.
func (s *CachedSource) Dataset(ctx context.Context) (*osm.OSM, error) {
	if !s.refresh {
		if raw, err := os.ReadFile(s.path); err == nil {
			s.log.Info("using cached overpass snapshot",
				zap.String("path", s.path),
				zap.Int("bytes", len(raw)))
			return Decode(raw)
		}
	}

	raw, err := s.client.Fetch(ctx, s.query)
	if err != nil {
		return nil, err
	}
	if err := s.writeSnapshot(raw); err != nil {
		// The run can still proceed from the in-memory response.
		s.log.Warn("failed to write overpass snapshot", zap.Error(err))
	}
	return Decode(raw)
}

func (s *CachedSource) writeSnapshot(raw []byte) error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("snapshot write: %w", err)
	}
	s.log.Info("wrote overpass snapshot", zap.String("path", s.path), zap.Int("bytes", len(raw)))
	return nil
}

// StaticSource serves a pre-built dataset. Used by tests and by tooling that
// already holds the data in memory.
type StaticSource struct {
	Data *osm.OSM
}

// Dataset returns the wrapped dataset.
func (s StaticSource) Dataset(context.Context) (*osm.OSM, error) {
	return s.Data, nil
}
