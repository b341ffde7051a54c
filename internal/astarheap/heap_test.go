/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package astarheap_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/Cytosine2020/HDAStar/internal/astarheap"
)

// fakeStore is a minimal in-memory NodeStore over plain int refs, for
// exercising astarheap.Heap without any dependency on arena or search.
type fakeStore struct {
	fscore  map[int]int
	heapIdx map[int]int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{fscore: map[int]int{}, heapIdx: map[int]int32{}}
}

func (s *fakeStore) FScore(ref int) int             { return s.fscore[ref] }
func (s *fakeStore) HeapIndex(ref int) int32        { return s.heapIdx[ref] }
func (s *fakeStore) SetHeapIndex(ref int, idx int32) { s.heapIdx[ref] = idx }

var _ = Describe("Heap", func() {
	var (
		store *fakeStore
		heap  *astarheap.Heap[int]
	)

	BeforeEach(func() {
		store = newFakeStore()
		heap = astarheap.New[int](store, 8)
	})

	It("extracts in non-decreasing f-score order under random insertion", func() {
		n := 500
		values := make([]int, n)
		for i := range values {
			values[i] = rand.Intn(10000)
			store.fscore[i] = values[i]
			heap.Insert(i)
		}
		Expect(heap.Len()).To(Equal(n))

		last := -1
		for heap.Len() > 0 {
			ref := heap.ExtractMin()
			Expect(store.fscore[ref]).To(BeNumerically(">=", last))
			last = store.fscore[ref]
		}
	})

	It("honors Update after an f-score decrease", func() {
		for i := 0; i < 5; i++ {
			store.fscore[i] = 100 + i
			heap.Insert(i)
		}
		store.fscore[4] = 0
		heap.Update(4)
		Expect(heap.ExtractMin()).To(Equal(4))
	})

	It("clears every entry on DiscardAll and reports them all", func() {
		inserted := []int{}
		for i := 0; i < 10; i++ {
			store.fscore[i] = i
			heap.Insert(i)
			inserted = append(inserted, i)
		}
		discarded := heap.DiscardAll()
		Expect(discarded).To(ConsistOf(inserted))
		Expect(heap.Len()).To(Equal(0))
		for _, ref := range inserted {
			Expect(store.HeapIndex(ref)).To(Equal(int32(0)))
		}
	})

	It("tracks HeapIndex consistently through a mixed workload", func() {
		for i := 0; i < 50; i++ {
			store.fscore[i] = rand.Intn(1000)
			heap.Insert(i)
			Expect(store.HeapIndex(i)).To(BeNumerically(">", 0))
		}
		for i := 0; i < 25; i++ {
			ref := heap.ExtractMin()
			Expect(store.HeapIndex(ref)).To(Equal(int32(0)))
		}
		Expect(heap.Len()).To(Equal(25))
	})
})
