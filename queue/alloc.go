package queue

// Allocator decides whether storage for a queue or element is
// available. Allocate is called with the payload size (zero for the
// queue itself) before anything is created, and a false return makes
// the operation fail with ErrAllocation. Release is called with the
// same size when the queue or element is discarded, so an Allocator
// can account for live storage.
type Allocator interface {
	Allocate(size int) bool
	Release(size int)
}

type unlimited struct{}

func (unlimited) Allocate(int) bool { return true }
func (unlimited) Release(int)       {}
