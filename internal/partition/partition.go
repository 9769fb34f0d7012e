// Package partition splits the integer range [0, n) into contiguous,
// non-overlapping chunks, one per worker.
package partition

import "fmt"

// Chunk is the half-open interval [Start, End) owned by one worker.
type Chunk struct {
	Worker int
	Start  int
	End    int
}

// Len returns the number of indices in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// Empty reports whether the chunk holds no indices. Trailing workers receive
// empty chunks when there are more workers than indices.
func (c Chunk) Empty() bool { return c.Start == c.End }

// String renders the chunk as "#worker[start,end)".
func (c Chunk) String() string {
	return fmt.Sprintf("#%d[%d,%d)", c.Worker, c.Start, c.End)
}

// Partition divides [0, n) into exactly k chunks. Every chunk but the last has
// n/k indices; the last chunk also absorbs the remainder n%k.
//
// n and k must be positive. Callers validate user input first, so a
// non-positive argument here is a programming error and panics.
func Partition(n, k int) []Chunk {
	if n < 1 || k < 1 {
		panic(fmt.Sprintf("partition: invalid range n=%d k=%d", n, k))
	}
	size := n / k
	chunks := make([]Chunk, k)
	for i := range chunks {
		end := (i + 1) * size
		if i == k-1 {
			end = n
		}
		chunks[i] = Chunk{Worker: i, Start: i * size, End: end}
	}
	return chunks
}

// Validate checks that chunks cover [0, n) exactly once, in worker order,
// with non-decreasing bounds.
func Validate(chunks []Chunk, n int) error {
	next := 0
	for i, c := range chunks {
		if c.Worker != i {
			return fmt.Errorf("chunk %d carries worker index %d", i, c.Worker)
		}
		if c.Start > c.End {
			return fmt.Errorf("chunk %s is inverted", c)
		}
		if c.Start != next {
			return fmt.Errorf("chunk %s starts at %d, want %d", c, c.Start, next)
		}
		next = c.End
	}
	if next != n {
		return fmt.Errorf("chunks end at %d, want %d", next, n)
	}
	return nil
}
