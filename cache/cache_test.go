package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](4)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss on empty cache")
	}

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}

	// Update in place
	c.Set("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) after update = %d; want 10", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	c := New[int, int](2)

	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1) // 1 becomes most recently used
	c.Set(3, 3)

	if _, ok := c.Get(2); ok {
		t.Error("expected 2 to be evicted as least recently used")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("expected 1 to survive")
	}
	if _, ok := c.Get(3); !ok {
		t.Error("expected 3 to be present")
	}

	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d; want 1", s.Evictions)
	}
}

func TestCacheGetOrCompute(t *testing.T) {
	c := New[string, string](8)
	calls := 0

	compute := func(k string) string {
		calls++
		return k + "!"
	}

	if v := c.GetOrCompute("x", compute); v != "x!" {
		t.Errorf("GetOrCompute = %q; want %q", v, "x!")
	}
	if v := c.GetOrCompute("x", compute); v != "x!" {
		t.Errorf("GetOrCompute = %q; want %q", v, "x!")
	}
	if calls != 1 {
		t.Errorf("compute called %d times; want 1", calls)
	}
}

func TestCachePurge(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)
	c.Get("a")
	c.Purge()

	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d; want 0", c.Len())
	}
	if s := c.Stats(); s.Hits != 1 {
		t.Errorf("Hits = %d; want 1 (counters survive Purge)", s.Hits)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := New[string, int](0)
	for i := 0; i < DefaultCapacity; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	if c.Len() != DefaultCapacity {
		t.Errorf("Len() = %d; want %d", c.Len(), DefaultCapacity)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				k := (seed*31 + j) % 100
				c.Set(k, k)
				c.Get(k)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d; want <= capacity", c.Len())
	}
}
