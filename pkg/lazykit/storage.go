package lazykit

// Storage is the append-only store a Sequence caches the pulled items into.
// Items are never reordered or modified once appended.
//
// A failing Append must not change the stored items.
// The Sequence does not keep the item it failed to append:
// that item is lost for good, since the producer has already handed it out and is never asked for it again.
// Only Storage failures can lose an item; producer errors never do.
// Storage errors are returned by the operation that needed the storage.
type Storage[T any] interface {
	Append(vs ...T) error
	Len() int
	Lookup(index int) (T, bool, error)
}

// Buffer is the default Storage, a growable slice.
type Buffer[T any] []T

func (b *Buffer[T]) Append(vs ...T) error {
	*b = append(*b, vs...)
	return nil
}

func (b *Buffer[T]) Len() int { return len(*b) }

func (b *Buffer[T]) Lookup(index int) (T, bool, error) {
	if index < 0 || len(*b) <= index {
		return *new(T), false, nil
	}
	return (*b)[index], true, nil
}

const defaultChunkSize = 64

// ChunkedBuffer is a Storage that grows in fixed-size chunks,
// so already cached items are never copied when the cache grows.
// It suits large or unbounded producers where a slice re-allocation would be costly.
type ChunkedBuffer[T any] struct {
	// ChunkSize is the number of items a chunk holds.
	// It is read on the first Append, changing it afterwards has no effect.
	//
	// Default: 64
	ChunkSize int

	size   int
	chunks [][]T
	length int
}

func (b *ChunkedBuffer[T]) Append(vs ...T) error {
	if b.size == 0 {
		b.size = b.ChunkSize
		if b.size <= 0 {
			b.size = defaultChunkSize
		}
	}
	for _, v := range vs {
		if b.length%b.size == 0 {
			b.chunks = append(b.chunks, make([]T, 0, b.size))
		}
		last := len(b.chunks) - 1
		b.chunks[last] = append(b.chunks[last], v)
		b.length++
	}
	return nil
}

func (b *ChunkedBuffer[T]) Len() int { return b.length }

func (b *ChunkedBuffer[T]) Lookup(index int) (T, bool, error) {
	if index < 0 || b.length <= index {
		return *new(T), false, nil
	}
	return b.chunks[index/b.size][index%b.size], true, nil
}
