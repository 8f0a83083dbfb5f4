package core

import "fmt"

// Chunk is a half-open range [Start, End) of linear cell indices processed
// as one unit of work.
type Chunk struct {
	Start, End int
}

// Len returns the number of cells in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// Partition splits [0, total) into k contiguous chunks. Every chunk but the
// last holds total/k cells; the last one absorbs the remainder.
func Partition(total, k int) ([]Chunk, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: chunk count must be at least 1, got %d", ErrConfig, k)
	}
	if total < 1 {
		return nil, fmt.Errorf("%w: cannot partition an empty grid", ErrConfig)
	}
	if k > total {
		return nil, fmt.Errorf("%w: chunk count %d exceeds cell count %d", ErrConfig, k, total)
	}
	size := total / k
	chunks := make([]Chunk, k)
	for i := range chunks {
		chunks[i] = Chunk{Start: i * size, End: (i + 1) * size}
	}
	chunks[k-1].End = total
	return chunks, nil
}
