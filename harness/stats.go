package harness

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/mem"
)

// Stats is a snapshot of the harness's own allocation counters, the
// Go heap and the host's memory.
type Stats struct {
	Queues        int
	LiveBlocks    int
	LiveBytes     int
	AllocFailures int

	HeapAlloc    uint64
	HeapInuse    uint64
	NumGC        uint32
	Goroutines   int
	HostTotal    uint64
	HostUsedPerc float64
}

func (c *Console) collectStats() (Stats, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := Stats{
		Queues:        c.chain.Len(),
		LiveBlocks:    c.alloc.Live(),
		LiveBytes:     c.alloc.Bytes(),
		AllocFailures: c.alloc.Failures(),
		HeapAlloc:     ms.HeapAlloc,
		HeapInuse:     ms.HeapInuse,
		NumGC:         ms.NumGC,
		Goroutines:    runtime.NumGoroutine(),
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, errors.Wrap(err, "host memory")
	}
	stats.HostTotal = vm.Total
	stats.HostUsedPerc = vm.UsedPercent

	return stats, nil
}
