package splaytree

import (
	"math/rand/v2"
	"testing"
)

// generateRandomKeys generates a slice of unique random integers.
func generateRandomKeys(n int) []int {
	keys := make([]int, n)
	seen := make(map[int]struct{})
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	for i := 0; i < n; {
		key := r.IntN(n * 10) // wide range to avoid too many collisions if n is small
		if _, ok := seen[key]; !ok {
			keys[i] = key
			seen[key] = struct{}{}
			i++
		}
	}
	return keys
}

const benchmarkSize = 10000 // Number of items to insert/search/delete

func BenchmarkTree_Insert(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t := New[int, int]()
		for j := 0; j < benchmarkSize; j++ {
			t.Insert(keys[j], j)
		}
	}
}

func BenchmarkTree_Insert_Arena(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t := New(WithArena[int, int](1 << 20))
		for j := 0; j < benchmarkSize; j++ {
			t.Insert(keys[j], j)
		}
	}
}

func BenchmarkMap_Insert(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := make(map[int]int)
		for j := 0; j < benchmarkSize; j++ {
			m[keys[j]] = keys[j]
		}
	}
}

func BenchmarkTree_Find(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	t := New[int, int]()
	for j := 0; j < benchmarkSize; j++ {
		t.Insert(keys[j], keys[j])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = t.Find(keys[i%benchmarkSize])
	}
}

// BenchmarkTree_Find_Skewed sends 90% of the lookups to 1% of the keys,
// the access pattern splaying is meant for.
func BenchmarkTree_Find_Skewed(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	t := New[int, int]()
	for j := 0; j < benchmarkSize; j++ {
		t.Insert(keys[j], keys[j])
	}
	r := rand.New(rand.NewPCG(1, 2))
	probes := make([]int, benchmarkSize)
	for i := range probes {
		if r.IntN(10) < 9 {
			probes[i] = keys[r.IntN(benchmarkSize/100)]
		} else {
			probes[i] = keys[r.IntN(benchmarkSize)]
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = t.Find(probes[i%benchmarkSize])
	}
}

func BenchmarkMap_Search(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	m := make(map[int]int)
	for j := 0; j < benchmarkSize; j++ {
		m[keys[j]] = keys[j]
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[keys[i%benchmarkSize]]
	}
}

func BenchmarkTree_Erase(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	t := New[int, int]()
	for j := 0; j < benchmarkSize; j++ {
		t.Insert(keys[j], keys[j])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.Erase(keys[i%benchmarkSize])
		t.Insert(keys[i%benchmarkSize], keys[i%benchmarkSize]) // Re-insert to maintain size for next iteration
	}
}

// BenchmarkTree_Churn deletes a key and inserts a new one in each iteration,
// which keeps the node pool warm.
func BenchmarkTree_Churn(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	t := New[int, int]()
	for _, key := range keys {
		t.Insert(key, key)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.Erase(keys[i%benchmarkSize])
		keyToInsert := keys[(i+1)%benchmarkSize] + benchmarkSize*10
		t.Insert(keyToInsert, keyToInsert)
	}
}

func BenchmarkTree_Merge(b *testing.B) {
	keys := generateRandomKeys(benchmarkSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		dst, src := New[int, int](), New[int, int]()
		for j, k := range keys {
			if j%2 == 0 {
				dst.Insert(k, k)
			} else {
				src.Insert(k, k)
			}
		}
		b.StartTimer()
		dst.Merge(src)
	}
}

// BenchmarkTree_Range measures iterating through all elements with Range.
func BenchmarkTree_Range(b *testing.B) {
	t := New[int, int]()
	for _, key := range generateRandomKeys(benchmarkSize) {
		t.Insert(key, key)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.Range(func(key int, value int) bool { return true })
	}
}
