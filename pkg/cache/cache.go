// Package cache — LRU-кэш с TTL для сериализованных записей.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const janitorInterval = 2 * time.Minute

type entry struct {
	key     string
	value   []byte
	expires time.Time
}

type LRUCache struct {
	capacity int
	ttl      time.Duration

	mu    sync.Mutex
	order *list.List
	items map[string]*list.Element
}

func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *LRUCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ele, ok := c.items[key]
	if !ok {
		return nil, false
	}

	ent := ele.Value.(*entry)
	if time.Now().After(ent.expires) {
		c.removeElement(ele)
		return nil, false
	}

	c.order.MoveToFront(ele)
	return ent.value, true
}

func (c *LRUCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, ok := c.items[key]; ok {
		c.order.MoveToFront(ele)
		ent := ele.Value.(*entry)
		ent.value = value
		ent.expires = time.Now().Add(c.ttl)
		return
	}

	ele := c.order.PushFront(&entry{key: key, value: value, expires: time.Now().Add(c.ttl)})
	c.items[key] = ele

	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Remove инвалидирует запись; отсутствие ключа не ошибка.
func (c *LRUCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, ok := c.items[key]; ok {
		c.removeElement(ele)
	}
}

func (c *LRUCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Start запускает фоновую уборку просроченных записей до отмены ctx.
func (c *LRUCache) Start(ctx context.Context) error {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (c *LRUCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for ele := c.order.Back(); ele != nil; {
		prev := ele.Prev()
		if ent := ele.Value.(*entry); now.After(ent.expires) {
			c.removeElement(ele)
		}
		ele = prev
	}
}

func (c *LRUCache) removeElement(ele *list.Element) {
	c.order.Remove(ele)
	delete(c.items, ele.Value.(*entry).key)
}
