package chash

import (
	"bufio"
	"fmt"
	"io"
)

// Stats describes the shape of a table
type Stats struct {
	Entries        int
	Buckets        int
	UsedBuckets    int
	LongestChain   int
	Rehashes       uint64
	SkippedGrowths uint64
}

// Stats walks the directory and reports chain statistics
func (t *Table[V]) Stats() Stats {
	s := Stats{
		Entries:        t.arena.live,
		Buckets:        len(t.dir),
		Rehashes:       t.rehashes,
		SkippedGrowths: t.skippedGrowths,
	}
	for _, h := range t.dir {
		if h == 0 {
			continue
		}
		s.UsedBuckets++
		n := 0
		for ; h != 0; h = t.arena.at(h).next {
			n++
		}
		if n > s.LongestChain {
			s.LongestChain = n
		}
	}
	return s
}

// Range calls f for every entry in bucket order, then chain order, until f
// returns false. Neither the table nor key may be modified from f.
func (t *Table[V]) Range(f func(key []byte, value V) bool) {
	for _, h := range t.dir {
		for h != 0 {
			e := t.arena.at(h)
			if !f(e.key, e.value) {
				return
			}
			h = e.next
		}
	}
}

// Dump writes every bucket and its chain to w. The format is meant for
// debugging and may change.
func (t *Table[V]) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, h := range t.dir {
		fmt.Fprintf(bw, "Index %d:\n", i)
		for h != 0 {
			e := t.arena.at(h)
			fmt.Fprintf(bw, "  Key: %s, Value: %v\n", e.key, e.value)
			h = e.next
		}
	}
	return bw.Flush()
}
