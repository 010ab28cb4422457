package search

import (
	"math"
	"strings"
	"sync"
)

// resultCache keeps the most recently used results by seed pair. Results
// are shared, so callers must not modify them.
type resultCache struct {
	results     map[string]*Result
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxResults  int
	mu          sync.Mutex
}

func newResultCache(maxResults int) *resultCache {
	return &resultCache{
		results:    make(map[string]*Result, maxResults),
		accessTime: make(map[string]int64, maxResults),
		maxResults: maxResults,
	}
}

// cacheKey ignores case; seed order matters.
func cacheKey(seed1, seed2 string) string {
	return strings.ToLower(seed1) + "\x00" + strings.ToLower(seed2)
}

func (c *resultCache) get(key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.results[key]
	if ok {
		c.hits++
		c.accessTime[key] = c.nextAccessTime()
	}
	return res, ok
}

func (c *resultCache) put(key string, res *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.results[key]; !ok && len(c.results) >= c.maxResults {
		c.evictLRU()
	}
	c.results[key] = res
	c.accessTime[key] = c.nextAccessTime()
}

// stats returns the number of cached results and hits so far.
func (c *resultCache) stats() (size int, hits int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results), c.hits
}

func (c *resultCache) nextAccessTime() int64 {
	c.accessCount++
	return c.accessCount
}

func (c *resultCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64
	for key, t := range c.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(c.results, oldestKey)
		delete(c.accessTime, oldestKey)
	}
}
