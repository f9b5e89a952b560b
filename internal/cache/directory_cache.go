package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/pkg/logger"
	"github.com/getmentor/mentor-match-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	directoryKeyPrefix = "directory:"
	directoryCacheName = "mentor_directory"
	cleanupInterval    = time.Minute
)

// DirectoryCacheInterface defines the mentor directory cache operations
type DirectoryCacheInterface interface {
	Get(version uint64, query models.DirectoryQuery) ([]models.UserResponse, bool)
	Set(version uint64, query models.DirectoryQuery, mentors []models.UserResponse)
}

// DirectoryCache holds mentor directory projections keyed by identity store
// version and query. A write to the store changes the version, so entries
// built before it are never returned again and expire on their own.
// Cached slices are shared between readers and must not be modified.
type DirectoryCache struct {
	cache *gocache.Cache
}

// NewDirectoryCache creates a directory cache with the given TTL
func NewDirectoryCache(ttlSeconds int) *DirectoryCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DirectoryCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

func directoryKey(version uint64, query models.DirectoryQuery) string {
	return fmt.Sprintf("%sv%d:skill=%s:order=%s",
		directoryKeyPrefix, version, strings.ToLower(query.Skill), query.OrderBy)
}

// Get returns the cached projection for query at version
func (dc *DirectoryCache) Get(version uint64, query models.DirectoryQuery) ([]models.UserResponse, bool) {
	key := directoryKey(version, query)

	data, found := dc.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues(directoryCacheName).Inc()
		return nil, false
	}

	mentors, ok := data.([]models.UserResponse)
	if !ok {
		logger.Error("Invalid directory cache data type", zap.String("key", key))
		dc.cache.Delete(key)
		metrics.CacheMisses.WithLabelValues(directoryCacheName).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(directoryCacheName).Inc()
	return mentors, true
}

// Set stores the projection for query at version
func (dc *DirectoryCache) Set(version uint64, query models.DirectoryQuery, mentors []models.UserResponse) {
	dc.cache.SetDefault(directoryKey(version, query), mentors)
	logger.Debug("Directory cache updated",
		zap.Uint64("version", version),
		zap.String("skill", query.Skill),
		zap.String("order_by", query.OrderBy),
		zap.Int("count", len(mentors)))
}
