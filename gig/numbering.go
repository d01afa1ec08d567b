//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package gig

import "container/heap"

// uint32Heap is a min-heap of free numbers, used by idRepos.
type uint32Heap []uint32

func (h uint32Heap) Len() int            { return len(h) }
func (h uint32Heap) Less(i, j int) bool  { return h[i] < h[j] }
func (h uint32Heap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *uint32Heap) Push(x interface{}) { *h = append(*h, x.(uint32)) }
func (h *uint32Heap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// idRepos is a sparse, reusable, dense-integer allocator: it hands
// out the smallest currently-unused number on Get, and lets a caller
// reserve a specific number with Pick (promoting every number below
// it that hasn't been issued yet to "free" in the process). It backs
// the netlist's per-type numbering (the "num" gate attribute), the
// same role the teacher's compiler/circuits.Allocator fills for wire
// slots, generalized here to support reclaiming individual numbers
// rather than only growing.
type idRepos struct {
	size uint32
	free uint32Heap
}

// Get returns the smallest available number and marks it used.
func (r *idRepos) Get() uint32 {
	if len(r.free) > 0 {
		return heap.Pop(&r.free).(uint32)
	}
	n := r.size
	r.size++
	return n
}

// Pick reserves a specific number, panicking if it is already in use.
func (r *idRepos) Pick(n uint32) {
	if n < r.size {
		for i, v := range r.free {
			if v == n {
				heap.Remove(&r.free, i)
				return
			}
		}
		panic("gig: numbering: number already in use")
	}
	for i := r.size; i < n; i++ {
		heap.Push(&r.free, i)
	}
	r.size = n + 1
}

// Release returns a number to the free pool.
func (r *idRepos) Release(n uint32) {
	heap.Push(&r.free, n)
}

// Clear resets the allocator, as if no numbers had ever been issued.
func (r *idRepos) Clear() {
	r.size = 0
	r.free = r.free[:0]
}

// Count returns the number of currently-issued numbers.
func (r *idRepos) Count() uint32 {
	return r.size - uint32(len(r.free))
}
