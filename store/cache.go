package store

import (
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
)

type (
	// feedCache keeps recently served message feeds in memory. Entries
	// are dropped whenever a new message touches the feed, so a cached
	// read never hides a write that went through this process.
	feedCache struct {
		cache *bigcache.BigCache
	}
)

func newFeedCache() *feedCache {
	cache, _ := bigcache.NewBigCache(bigcache.DefaultConfig(10 * time.Minute))
	return &feedCache{
		cache: cache,
	}
}

func (f *feedCache) get(key string) ([]Message, bool) {
	buf, err := f.cache.Get(key)
	if err != nil {
		return nil, false
	}
	var out []Message
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (f *feedCache) put(key string, msgs []Message) {
	buf, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	f.cache.Set(key, buf)
}

func (f *feedCache) drop(keys ...string) {
	for _, k := range keys {
		f.cache.Delete(k)
	}
}
