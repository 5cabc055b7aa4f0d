package finder

import (
	"container/heap"
	"iter"
)

// matchHeap orders matches by ascending Start, then descending End.
type matchHeap []Match

func (h matchHeap) Len() int { return len(h) }

func (h matchHeap) Less(i, j int) bool {
	if h[i].Start != h[j].Start {
		return h[i].Start < h[j].Start
	}
	return h[i].End > h[j].End
}

func (h matchHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *matchHeap) Push(x any) { *h = append(*h, x.(Match)) }

func (h *matchHeap) Pop() any {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

// ordered turns the end-ordered stream of an engine into a stream ordered by
// ascending Start, ties by descending length.
//
// Engines report matches with non-decreasing End. Once a match ending at e has
// been seen, no later match can start before e-maxLen, so every buffered match
// starting below that horizon is final and is released. The buffer never
// holds more than the matches of one maxLen-wide window.
func ordered(e engine, text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		maxLen := e.maxPatternLen()
		h := &matchHeap{}
		stopped := false
		e.scan(text, func(m Match) bool {
			heap.Push(h, m)
			horizon := m.End - maxLen
			for h.Len() > 0 && (*h)[0].Start < horizon {
				if !yield(heap.Pop(h).(Match)) {
					stopped = true
					return false
				}
			}
			return true
		})
		if stopped {
			return
		}
		for h.Len() > 0 {
			if !yield(heap.Pop(h).(Match)) {
				return
			}
		}
	}
}
