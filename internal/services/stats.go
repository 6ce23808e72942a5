package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/types"
)

const statsCacheKey = "stats"

// StatsCache is the subset of cache.JSONCache used for stats.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ItemLister lists every listing.
type ItemLister interface {
	List(ctx context.Context) ([]types.Item, error)
}

// UserLister lists every account.
type UserLister interface {
	List(ctx context.Context) ([]types.User, error)
}

// StatsService computes the moderation summary, optionally cached.
type StatsService struct {
	items  ItemLister
	users  UserLister
	cache  StatsCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewStatsService constructs a StatsService. cache may be nil.
func NewStatsService(items ItemLister, users UserLister, cache StatsCache, ttl time.Duration, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{items: items, users: users, cache: cache, ttl: ttl, logger: logger}
}

// Get returns the summary. Cache errors degrade to a fresh computation.
func (s *StatsService) Get(ctx context.Context) (moderation.Stats, error) {
	if s.cache != nil {
		var cached moderation.Stats
		found, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			s.logger.Warn("read stats cache", slog.Any("error", err))
		} else if found {
			return cached, nil
		}
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return moderation.Stats{}, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return moderation.Stats{}, err
	}
	stats := moderation.ComputeStats(items, users)

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.ttl); err != nil {
			s.logger.Warn("write stats cache", slog.Any("error", err))
		}
	}
	return stats, nil
}

// StatusChanged drops the cached summary.
func (s *StatsService) StatusChanged(ctx context.Context, change StatusChange) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.Warn("invalidate stats cache", slog.String("record_id", change.RecordID), slog.Any("error", err))
	}
}
