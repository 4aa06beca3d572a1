package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process JSON cache. Entries are never mutated in place; a
// write stores a fresh entry, so concurrent readers cannot see a partial one.
type Memory struct {
	entries sync.Map
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := m.entries.Load(key)
	if !ok {
		return false, nil
	}
	e := v.(*memoryEntry)
	if !m.now().Before(e.expiresAt) {
		m.entries.CompareAndDelete(key, e)
		return false, nil
	}
	if err := json.Unmarshal(e.data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries.Store(key, &memoryEntry{data: b, expiresAt: m.now().Add(ttl)})
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.entries.Delete(key)
	return nil
}

// DeleteByPattern accepts the same glob syntax as path.Match.
func (m *Memory) DeleteByPattern(_ context.Context, pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return err
	}
	m.entries.Range(func(k, _ any) bool {
		if ok, _ := path.Match(pattern, k.(string)); ok {
			m.entries.Delete(k)
		}
		return true
	})
	return nil
}
