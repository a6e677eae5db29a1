package harness

import (
	"bytes"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ShawnXuanc/lab0/ers"
	"github.com/ShawnXuanc/lab0/queue"
)

type command struct {
	args    string
	help    string
	minArgs int
	maxArgs int
	run     func(args []string) error
}

func (cmd command) usage() string {
	if cmd.args == "" {
		return "no arguments"
	}
	return cmd.args
}

func (c *Console) commandTable() map[string]command {
	return map[string]command{
		"new":      {help: "create a new queue and make it current", run: c.doNew},
		"free":     {help: "delete the current queue", run: c.doFree},
		"prev":     {help: "switch to the previous queue", run: c.doPrev},
		"next":     {help: "switch to the next queue", run: c.doNext},
		"ih":       {args: "str [n]", help: "insert str at the head n times; RAND inserts random strings", minArgs: 1, maxArgs: 2, run: c.insert(true)},
		"it":       {args: "str [n]", help: "insert str at the tail n times; RAND inserts random strings", minArgs: 1, maxArgs: 2, run: c.insert(false)},
		"rh":       {args: "[str]", help: "remove from the head, optionally checking the value", maxArgs: 1, run: c.remove(true)},
		"rt":       {args: "[str]", help: "remove from the tail, optionally checking the value", maxArgs: 1, run: c.remove(false)},
		"size":     {args: "[n]", help: "count the current queue, optionally checking the count", maxArgs: 1, run: c.doSize},
		"dm":       {help: "delete the middle element", run: c.doDeleteMid},
		"dedup":    {help: "delete every element that has a duplicate (queue must be sorted)", run: c.doDedup},
		"swap":     {help: "swap adjacent pairs", run: c.doSwap},
		"reverse":  {help: "reverse the queue", run: c.doReverse},
		"reverseK": {args: "k", help: "reverse each block of k elements", minArgs: 1, maxArgs: 1, run: c.doReverseK},
		"sort":     {help: "sort with the configured algorithm", run: c.sort()},
		"msort":    {help: "sort with recursive merge sort", run: c.sort(queue.MergeSort)},
		"timsort":  {help: "sort with run merging", run: c.sort(queue.RunSort)},
		"lsort":    {help: "sort with pending-list merge sort", run: c.sort(queue.PendingSort)},
		"ascend":   {help: "delete every element with a smaller element after it", run: c.monotonic(false)},
		"descend":  {help: "delete every element with a greater element after it", run: c.monotonic(true)},
		"merge":    {help: "merge every sorted queue into the first", run: c.doMerge},
		"shuffle":  {help: "shuffle the current queue", run: c.doShuffle},
		"show":     {help: "print every queue", run: c.doShow},
		"option":   {args: "name value", help: "set descend, fail, length, echo or sort", minArgs: 2, maxArgs: 2, run: c.doOption},
		"stats":    {help: "print allocation and memory statistics", run: c.doStats},
		"help":     {help: "list commands", run: c.doHelp},
		"quit":     {help: "free every queue and stop", run: c.quit},
	}
}

func (c *Console) need() (*queue.Context, error) {
	if c.current == nil {
		return nil, queue.ErrNoQueue
	}
	return c.current, nil
}

// tolerate turns an allocation failure into a warning. Refused
// allocations are expected when a fail rate is configured.
func (c *Console) tolerate(err error) error {
	if !errors.Is(err, queue.ErrAllocation) {
		return err
	}
	c.logger.Warn("allocation refused", zap.Int("line", c.line), zap.Error(err))
	c.printf("WARNING: %v\n", err)
	return nil
}

func (c *Console) checkLeaks() error {
	if c.chain.Len() > 0 || c.alloc.Live() == 0 {
		return nil
	}
	return errors.Wrapf(ErrLeak, "%d blocks, %d bytes", c.alloc.Live(), c.alloc.Bytes())
}

func (c *Console) doNew([]string) error {
	q, err := queue.New(queue.WithAllocator(c.alloc))
	if err != nil {
		return c.tolerate(err)
	}

	c.current = c.chain.Add(q)
	c.show()
	return nil
}

func (c *Console) doFree([]string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}

	ctx.Queue().Free()
	c.chain.Remove(ctx)
	c.current = c.chain.First()
	c.show()
	return c.checkLeaks()
}

func (c *Console) doPrev([]string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}
	c.current = c.chain.Previous(ctx)
	c.show()
	return nil
}

func (c *Console) doNext([]string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}
	c.current = c.chain.Next(ctx)
	c.show()
	return nil
}

func (c *Console) insert(head bool) func([]string) error {
	return func(args []string) error {
		ctx, err := c.need()
		if err != nil {
			return err
		}

		count := 1
		if len(args) == 2 {
			count, err = strconv.Atoi(args[1])
			if err != nil || count < 1 {
				return errors.Wrapf(ers.ErrInvalidInput, "count %q", args[1])
			}
		}

		insert := ctx.InsertTail
		if head {
			insert = ctx.InsertHead
		}
		for range count {
			val := args[0]
			if val == "RAND" {
				val = c.randomString()
			}
			if err := insert(val); err != nil {
				c.show()
				return c.tolerate(errors.Wrapf(err, "insert %q", val))
			}
		}
		c.show()
		return nil
	}
}

func (c *Console) remove(head bool) func([]string) error {
	return func(args []string) error {
		ctx, err := c.need()
		if err != nil {
			return err
		}

		buf := make([]byte, c.conf.StringLimit)
		var e *queue.Element
		if head {
			e = ctx.RemoveHead(buf)
		} else {
			e = ctx.RemoveTail(buf)
		}
		if e == nil {
			return ErrEmptyQueue
		}
		ctx.Queue().Release(e)

		got, _, _ := bytes.Cut(buf, []byte{0})
		c.printf("Removed %s from queue\n", got)
		c.show()

		if len(args) == 1 {
			// the copy is truncated to the buffer, so the expectation is too
			want := args[0]
			if len(want) > len(buf)-1 {
				want = want[:len(buf)-1]
			}
			if string(got) != want {
				return errors.Wrapf(ErrMismatch, "removed %q, expected %q", got, want)
			}
		}
		return nil
	}
}

func (c *Console) doSize(args []string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}

	n := ctx.Queue().Size()
	c.printf("Queue size = %d\n", n)

	if n != ctx.Size() {
		return errors.Wrapf(ErrMismatch, "counted %d, tracked %d", n, ctx.Size())
	}
	if len(args) == 1 {
		want, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(ers.ErrInvalidInput, "size %q", args[0])
		}
		if n != want {
			return errors.Wrapf(ErrMismatch, "size %d, expected %d", n, want)
		}
	}
	return nil
}

func (c *Console) doDeleteMid([]string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}
	if !ctx.Queue().DeleteMid() {
		return ErrEmptyQueue
	}
	ctx.Refresh()
	c.show()
	return nil
}

func (c *Console) doDedup([]string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}
	ctx.Queue().DeleteDup()
	ctx.Refresh()
	c.show()
	return nil
}

func (c *Console) doSwap([]string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}
	ctx.Queue().Swap()
	c.show()
	return nil
}

func (c *Console) doReverse([]string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}
	ctx.Queue().Reverse()
	c.show()
	return nil
}

func (c *Console) doReverseK(args []string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(ers.ErrInvalidInput, "k %q", args[0])
	}
	ctx.Queue().ReverseK(k)
	c.show()
	return nil
}

// sort returns the handler for a sort command. Without an algorithm
// the handler uses the configured one.
func (c *Console) sort(fixed ...queue.Algorithm) func([]string) error {
	return func([]string) error {
		ctx, err := c.need()
		if err != nil {
			return err
		}

		use := c.conf.Algorithm()
		if len(fixed) > 0 {
			use = fixed[0]
		}

		start := time.Now()
		ctx.Queue().SortWith(use, c.conf.Descend)
		c.logger.Debug("sorted",
			zap.Stringer("algorithm", use),
			zap.Int("size", ctx.Size()),
			zap.Duration("elapsed", time.Since(start)),
		)

		c.show()
		if !ctx.Queue().IsSorted(c.conf.Descend) {
			return errors.Wrapf(ErrNotSorted, "after %s sort", use)
		}
		return nil
	}
}

func (c *Console) monotonic(descend bool) func([]string) error {
	return func([]string) error {
		ctx, err := c.need()
		if err != nil {
			return err
		}

		var n int
		if descend {
			n = ctx.Queue().Descend()
		} else {
			n = ctx.Queue().Ascend()
		}
		ctx.Refresh()
		c.show()

		if n != ctx.Size() {
			return errors.Wrapf(ErrMismatch, "returned %d, queue holds %d", n, ctx.Size())
		}
		return nil
	}
}

func (c *Console) doMerge([]string) error {
	if _, err := c.need(); err != nil {
		return err
	}

	contexts := slices.Collect(c.chain.Contexts())
	total := 0
	for _, ctx := range contexts {
		if !ctx.Queue().IsSorted(c.conf.Descend) {
			return errors.Wrapf(ErrNotSorted, "queue %d", ctx.ID())
		}
		total += ctx.Refresh()
	}

	n := c.chain.Merge(c.conf.Descend)
	for _, ctx := range contexts[1:] {
		ctx.Queue().Free()
		c.chain.Remove(ctx)
	}
	c.current = c.chain.First()
	c.show()

	if n != total {
		return errors.Wrapf(ErrMismatch, "merged %d of %d elements", n, total)
	}
	if !c.current.Queue().IsSorted(c.conf.Descend) {
		return errors.Wrap(ErrNotSorted, "after merge")
	}
	return nil
}

func (c *Console) doShuffle([]string) error {
	ctx, err := c.need()
	if err != nil {
		return err
	}
	ctx.Queue().Shuffle(c.rng)
	c.show()
	return nil
}

func (c *Console) doShow([]string) error {
	if c.chain.Len() == 0 {
		c.show()
		return nil
	}
	for ctx := range c.chain.Contexts() {
		mark := " "
		if ctx == c.current {
			mark = "*"
		}
		c.printf("%s%d: l = %s\n", mark, ctx.ID(), render(ctx.Queue()))
	}
	return nil
}

func (c *Console) doOption(args []string) error {
	name, val := args[0], args[1]

	var err error
	switch name {
	case "descend":
		c.conf.Descend, err = strconv.ParseBool(val)
	case "echo":
		c.conf.Echo, err = strconv.ParseBool(val)
	case "fail":
		var rate int
		if rate, err = strconv.Atoi(val); err == nil {
			err = ers.Whenf(rate < 0 || rate > 100, "fail rate %d is outside [0, 100]", rate)
		}
		if err == nil {
			c.conf.FailRate = rate
			c.alloc.SetFailRate(rate)
		}
	case "length":
		var limit int
		if limit, err = strconv.Atoi(val); err == nil {
			err = ers.Whenf(limit < 2, "length %d is less than 2", limit)
		}
		if err == nil {
			c.conf.StringLimit = limit
		}
	case "sort":
		var alg queue.Algorithm
		if alg, err = queue.ParseAlgorithm(val); err == nil {
			c.conf.Sort = alg.String()
		}
	default:
		return errors.Wrapf(ers.ErrInvalidInput, "option %q", name)
	}
	if err != nil {
		return errors.Wrapf(ers.Join(err, ers.ErrInvalidInput), "option %s", name)
	}

	c.logger.Info("option set", zap.String("name", name), zap.String("value", val))
	return nil
}

func (c *Console) doStats([]string) error {
	stats, err := c.collectStats()
	c.printf("queues: %d, live blocks: %d, live bytes: %d, refused allocations: %d\n",
		stats.Queues, stats.LiveBlocks, stats.LiveBytes, stats.AllocFailures)
	c.printf("heap alloc: %d, heap in use: %d, gc cycles: %d, goroutines: %d\n",
		stats.HeapAlloc, stats.HeapInuse, stats.NumGC, stats.Goroutines)

	if err != nil {
		c.logger.Warn("host stats unavailable", zap.Error(err))
		return nil
	}
	c.printf("host memory: %d bytes, %.1f%% used\n", stats.HostTotal, stats.HostUsedPerc)
	return nil
}

func (c *Console) doHelp([]string) error {
	for _, name := range slices.Sorted(maps.Keys(c.commands)) {
		cmd := c.commands[name]
		c.printf("  %-9s %-10s %s\n", name, cmd.args, cmd.help)
	}
	return nil
}

// quit frees every queue and reports leaked storage.
func (c *Console) quit([]string) error {
	for ctx := range c.chain.Contexts() {
		ctx.Queue().Free()
		c.chain.Remove(ctx)
	}
	c.current = nil
	c.done = true

	c.logger.Info("quit",
		zap.Int("commands", c.line),
		zap.Int("failed", c.failed),
		zap.Int("refused_allocations", c.alloc.Failures()),
	)
	return c.checkLeaks()
}
