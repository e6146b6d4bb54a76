package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/2beens/coachtracker/internal/gymstats/session"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte          = 1024 * 1024
	historyKeyPrefix  = "history::"
	allStudentsSuffix = "*"
)

// CachedHistory keeps ListCompleted results per student in memory.
// Any finished session clears the whole cache.
type CachedHistory struct {
	SessionStore
	cache     *freecache.Cache
	ttlSecond int

	// generation counts clears; a listing read before a clear is not cached
	mu         sync.Mutex
	generation uint64
}

func NewCachedHistory(inner SessionStore, cacheSizeMB int, ttl time.Duration) *CachedHistory {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 1
	}
	ttlSecond := int(ttl.Seconds())
	if ttlSecond <= 0 {
		ttlSecond = 60
	}

	return &CachedHistory{
		SessionStore: inner,
		cache:        freecache.NewCache(cacheSizeMB * megabyte),
		ttlSecond:    ttlSecond,
	}
}

func (c *CachedHistory) ListCompleted(ctx context.Context, studentID string) ([]session.CompletedSession, error) {
	key := historyKey(studentID)
	if cachedBytes, err := c.cache.Get(key); err == nil {
		var completed []session.CompletedSession
		if err := json.Unmarshal(cachedBytes, &completed); err == nil {
			log.Tracef("history for [%s] found in cache", studentID)
			return completed, nil
		} else {
			log.Errorf("unmarshal cached history for [%s]: %s", studentID, err)
		}
	}

	generation := c.currentGeneration()
	completed, err := c.SessionStore.ListCompleted(ctx, studentID)
	if err != nil {
		return nil, err
	}

	completedBytes, err := json.Marshal(completed)
	if err != nil {
		log.Errorf("marshal history for [%s]: %s", studentID, err)
		return completed, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		log.Tracef("history for [%s] cleared while loading, not caching", studentID)
		return completed, nil
	}
	if err := c.cache.Set(key, completedBytes, c.ttlSecond); err != nil {
		log.Errorf("set history cache for [%s]: %s", studentID, err)
	}

	return completed, nil
}

func (c *CachedHistory) Save(ctx context.Context, s session.Session) (*session.Session, error) {
	saved, err := c.SessionStore.Save(ctx, s)
	if err == nil && !s.Active {
		c.Clear()
	}
	return saved, err
}

func (c *CachedHistory) Finish(ctx context.Context, s session.Session) error {
	if err := c.SessionStore.Finish(ctx, s); err != nil {
		return err
	}
	c.Clear()
	return nil
}

func (c *CachedHistory) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Clear()
}

func (c *CachedHistory) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// EntryCount is the number of cached history lists.
func (c *CachedHistory) EntryCount() int64 {
	return c.cache.EntryCount()
}

func historyKey(studentID string) []byte {
	if studentID == "" {
		studentID = allStudentsSuffix
	}
	return []byte(historyKeyPrefix + studentID)
}
