package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/sources/file"
)

// Store persists sidebar snapshots so other processes (and the next start
// of this one) can read the last good configuration.
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		now:    time.Now,
	}
}

// Meta describes the stored snapshot.
type Meta struct {
	Source   string
	Checksum string
	SavedAt  time.Time
}

// SaveConfig writes the snapshot, each sidebar and the ordered name list in
// one transaction, and drops sidebars that are no longer configured.
// It reports false when the stored snapshot already has the same content.
func (s *Store) SaveConfig(ctx context.Context, cfg *domain.Config, source string) (bool, error) {
	data, err := cfg.MarshalJSON()
	if err != nil {
		return false, fmt.Errorf("failed to marshal sidebars: %w", err)
	}
	sum := checksum(data)

	current, err := s.client.HGet(ctx, KeyMeta, "checksum").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("failed to read snapshot checksum: %w", err)
	}
	if current == sum {
		return false, nil
	}

	previous, err := s.client.LRange(ctx, KeyNames, 0, -1).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read sidebar names: %w", err)
	}

	names := cfg.Names()
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, KeySnapshot, data, 0)
		pipe.HSet(ctx, KeyMeta,
			"source", source,
			"checksum", sum,
			"saved_at", s.now().UTC().Format(time.RFC3339),
		)

		pipe.Del(ctx, KeyNames)
		if len(names) > 0 {
			args := make([]interface{}, len(names))
			for i, n := range names {
				args[i] = n
			}
			pipe.RPush(ctx, KeyNames, args...)
		}

		for _, sb := range cfg.Sidebars() {
			items, err := sb.MarshalItemsJSON()
			if err != nil {
				return fmt.Errorf("failed to marshal sidebar %s: %w", sb.Name, err)
			}
			pipe.Set(ctx, SidebarKey(sb.Name), items, 0)
		}

		for _, old := range previous {
			if !keep[old] {
				pipe.Del(ctx, SidebarKey(old))
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to save sidebars: %w", err)
	}

	return true, nil
}

// LoadConfig reads the stored snapshot back. It returns a nil config and no
// error when nothing has been stored yet.
func (s *Store) LoadConfig(ctx context.Context) (*domain.Config, Meta, error) {
	var meta Meta

	data, err := s.client.Get(ctx, KeySnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, meta, nil
		}
		return nil, meta, fmt.Errorf("failed to get snapshot: %w", err)
	}

	fields, err := s.client.HGetAll(ctx, KeyMeta).Result()
	if err != nil {
		return nil, meta, fmt.Errorf("failed to get snapshot meta: %w", err)
	}
	meta.Source = fields["source"]
	meta.Checksum = fields["checksum"]
	if ts := fields["saved_at"]; ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			meta.SavedAt = t
		}
	}

	cfg, err := file.Parse(KeySnapshot, data)
	if err != nil {
		return nil, meta, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return cfg, meta, nil
}

// Names returns the stored sidebar names in authoring order
func (s *Store) Names(ctx context.Context) ([]string, error) {
	names, err := s.client.LRange(ctx, KeyNames, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get sidebar names: %w", err)
	}
	return names, nil
}

// SidebarJSON returns the stored entries of one sidebar
func (s *Store) SidebarJSON(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, SidebarKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("sidebar not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get sidebar: %w", err)
	}
	return data, nil
}

// checksum is a hex SHA-256 of the snapshot bytes.
func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
