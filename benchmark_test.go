package cache_test

import (
	"fmt"
	"sync"
	"testing"

	cache "github.com/krisalay/object-cache"
)

func newBenchmarkCache(b *testing.B) *cache.ObjectCache[*doc] {
	return newTestCache(b, 100000, 0)
}

//
// ================= SINGLE THREAD BENCH =================
//

func BenchmarkCacheGetHit(b *testing.B) {
	c := newBenchmarkCache(b)
	_ = c.Put("id", "k", newDoc("id"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.GetByID("id", "k")
	}
}

func BenchmarkCacheGetMiss(b *testing.B) {
	c := newBenchmarkCache(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.GetByID(fmt.Sprintf("miss-%d", i), "k")
	}
}

func BenchmarkCacheGetByPath(b *testing.B) {
	c := newBenchmarkCache(b)
	_ = c.PutPath("/a/b/c", newDoc("id"), "k")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.GetByPath("/a/b/c", "k")
	}
}

//
// ================= PARALLEL BENCH =================
//

func BenchmarkCacheParallelGet(b *testing.B) {
	c := newBenchmarkCache(b)

	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("id-%d", i)
		_ = c.Put(id, "k", newDoc(id))
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.GetByID("id-42", "k")
		}
	})
}

//
// ================= WRITE BENCH =================
//

func BenchmarkCachePut(b *testing.B) {
	c := newTestCache(b, 1000, 0)
	docs := make([]*doc, 4096)
	for i := range docs {
		docs[i] = newDoc(fmt.Sprintf("id-%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := docs[i%len(docs)]
		_ = c.Put(d.id, "k", d)
	}
}

//
// ================= HIGH CONCURRENCY TEST =================
//

func BenchmarkCacheHighConcurrency(b *testing.B) {
	c := newBenchmarkCache(b)

	ids := make([]string, 10000)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
		_ = c.Put(ids[i], "k", newDoc(ids[i]))
	}

	b.ResetTimer()

	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < b.N/100; j++ {
				c.GetByID(ids[(id+j)%len(ids)], "k")
			}
		}(i)
	}
	wg.Wait()
}
