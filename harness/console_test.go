package harness

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ShawnXuanc/lab0/assert"
	"github.com/ShawnXuanc/lab0/assert/check"
	"github.com/ShawnXuanc/lab0/ers"
	"github.com/ShawnXuanc/lab0/queue"
	"github.com/ShawnXuanc/lab0/testt"
)

func newConsole(t *testing.T, opts ...func(*Config)) (*Console, *bytes.Buffer) {
	t.Helper()

	conf := DefaultConfig()
	conf.Seed = 1
	for _, opt := range opts {
		opt(&conf)
	}

	out := &bytes.Buffer{}
	c, err := NewConsole(conf, out, zap.NewNop())
	assert.NotError(t, err)
	t.Cleanup(func() { testt.Logf(t, "console output:\n%s", out) })
	return c, out
}

func script(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func exec(t *testing.T, c *Console, lines ...string) {
	t.Helper()
	for _, line := range lines {
		assert.NotError(t, c.Exec(line))
	}
}

func TestConsole(t *testing.T) {
	t.Run("InvalidConfig", func(t *testing.T) {
		conf := DefaultConfig()
		conf.StringLimit = 0
		_, err := NewConsole(conf, io.Discard, nil)
		assert.ErrorIs(t, err, ers.ErrMalformedConfiguration)
	})
	t.Run("Script", func(t *testing.T) {
		c, out := newConsole(t)
		err := c.Run(testt.Context(t), script(
			"# a comment",
			"new",
			"ih a",
			"ih b",
			"",
			"it c",
			"rh b",
			"rt c",
			"size 1",
			"quit",
			"ih ignored",
		))
		assert.NotError(t, err)
		assert.Substring(t, out.String(), "l = [b a c]")
		assert.Substring(t, out.String(), "Removed b from queue")
		assert.Substring(t, out.String(), "Removed c from queue")
		assert.Substring(t, out.String(), "Queue size = 1")
		assert.True(t, c.Done())
		assert.Equal(t, c.Failed(), 0)
		assert.Equal(t, c.Allocator().Live(), 0)
		assert.Equal(t, c.Allocator().Bytes(), 0)
	})
	t.Run("FreesAtEndOfInput", func(t *testing.T) {
		c, _ := newConsole(t)
		assert.NotError(t, c.Run(testt.Context(t), script("new", "it a", "new", "it b")))
		assert.True(t, c.Done())
		assert.Equal(t, c.Allocator().Live(), 0)
	})
	t.Run("FailuresAreCounted", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		out := &bytes.Buffer{}
		conf := DefaultConfig()
		conf.Seed = 1
		c, err := NewConsole(conf, out, zap.New(core))
		assert.NotError(t, err)

		err = c.Run(testt.Context(t), script("new", "it a", "rh b", "it c", "rh c"))
		assert.ErrorIs(t, err, ErrCommandsFailed)
		assert.Equal(t, c.Failed(), 1)
		assert.Substring(t, out.String(), "ERROR: line 3: rh")
		assert.Substring(t, out.String(), `removed "a", expected "b"`)
		assert.Substring(t, c.Summary(), "1 failed")

		failures := logs.FilterMessage("command failed")
		assert.Equal(t, failures.Len(), 1)
		assert.Equal(t, failures.All()[0].ContextMap()["line"], any(int64(3)))
		assert.Equal(t, logs.FilterMessage("quit").Len(), 1)
	})
	t.Run("Canceled", func(t *testing.T) {
		c, _ := newConsole(t)
		ctx, cancel := context.WithCancel(testt.Context(t))
		cancel()
		assert.ErrorIs(t, c.Run(ctx, script("new")), context.Canceled)
	})
	t.Run("Echo", func(t *testing.T) {
		c, out := newConsole(t, func(conf *Config) { conf.Echo = true })
		assert.NotError(t, c.Run(testt.Context(t), script("new", "it   a")))
		assert.Substring(t, out.String(), "cmd> new")
		assert.Substring(t, out.String(), "cmd> it a")
	})
	t.Run("Errors", func(t *testing.T) {
		c, _ := newConsole(t)
		assert.NotError(t, c.Exec(""))
		assert.NotError(t, c.Exec("  # note"))
		assert.ErrorIs(t, c.Exec("bogus"), ErrUnknownCommand)
		assert.ErrorIs(t, c.Exec("ih a"), queue.ErrNoQueue)
		assert.ErrorIs(t, c.Exec("free"), queue.ErrNoQueue)
		assert.ErrorIs(t, c.Exec("reverseK"), ers.ErrInvalidInput)
		assert.ErrorIs(t, c.Exec("new extra"), ers.ErrInvalidInput)

		exec(t, c, "new")
		assert.ErrorIs(t, c.Exec("ih a zero"), ers.ErrInvalidInput)
		assert.ErrorIs(t, c.Exec("ih a 0"), ers.ErrInvalidInput)
		assert.ErrorIs(t, c.Exec("reverseK x"), ers.ErrInvalidInput)
		assert.ErrorIs(t, c.Exec("size x"), ers.ErrInvalidInput)
		assert.ErrorIs(t, c.Exec("rh"), ErrEmptyQueue)
		assert.ErrorIs(t, c.Exec("rt"), ErrEmptyQueue)
		assert.ErrorIs(t, c.Exec("dm"), ErrEmptyQueue)
		assert.ErrorIs(t, c.Exec("size 3"), ErrMismatch)
	})
	t.Run("Show", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "show")
		assert.Substring(t, out.String(), "l = NULL")

		exec(t, c, "new", "it a", "new", "it b", "show")
		assert.Substring(t, out.String(), " 0: l = [a]")
		assert.Substring(t, out.String(), "*1: l = [b]")
	})
	t.Run("ShowTruncates", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "new", "it x 100")
		assert.Substring(t, out.String(), "x x ...]")
	})
	t.Run("PrevNext", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "new", "it a", "new", "it b", "next")
		assert.Equal(t, c.current.ID(), 0)
		exec(t, c, "next")
		assert.Equal(t, c.current.ID(), 1)
		exec(t, c, "prev")
		assert.Equal(t, c.current.ID(), 0)
		exec(t, c, "prev")
		assert.Equal(t, c.current.ID(), 1)
		exec(t, c, "rh b")

		out.Reset()
		exec(t, c, "free")
		assert.Equal(t, c.current.ID(), 0)
		assert.Substring(t, out.String(), "l = [a]")
	})
	t.Run("Free", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "new", "it a", "it bb", "free")
		assert.Substring(t, out.String(), "l = NULL")
		assert.Equal(t, c.Allocator().Live(), 0)
		assert.Equal(t, c.Allocator().Bytes(), 0)
	})
	t.Run("Leak", func(t *testing.T) {
		c, _ := newConsole(t)
		exec(t, c, "new", "it a")
		assert.True(t, c.Allocator().Allocate(4))
		assert.ErrorIs(t, c.Exec("quit"), ErrLeak)
		assert.True(t, c.Done())
	})
	t.Run("Reordering", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "new", "it 1", "it 2", "it 3", "it 4", "it 5")
		exec(t, c, "swap")
		assert.Substring(t, out.String(), "l = [2 1 4 3 5]")
		exec(t, c, "reverse")
		assert.Substring(t, out.String(), "l = [5 3 4 1 2]")
		exec(t, c, "reverseK 3")
		assert.Substring(t, out.String(), "l = [4 3 5 2 1]")
		exec(t, c, "size 5")
	})
	t.Run("DeleteMid", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "new", "it 1", "it 2", "it 3", "it 4", "dm")
		assert.Substring(t, out.String(), "l = [1 2 4]")
		exec(t, c, "size 3")
	})
	t.Run("Dedup", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "new", "it a", "it b", "it b", "it c", "dedup", "size 2")
		assert.Substring(t, out.String(), "l = [a c]")
		assert.Equal(t, c.Allocator().Live(), 3)
	})
	t.Run("Monotonic", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "new", "it 5", "it 2", "it 6", "it 1", "ascend", "size 1")
		assert.Substring(t, out.String(), "l = [1]")

		out.Reset()
		exec(t, c, "free", "new", "it 5", "it 2", "it 6", "it 1", "descend", "size 2")
		assert.Substring(t, out.String(), "l = [6 1]")
	})
	t.Run("Sort", func(t *testing.T) {
		for _, cmd := range []string{"sort", "msort", "timsort", "lsort"} {
			t.Run(cmd, func(t *testing.T) {
				c, out := newConsole(t)
				exec(t, c, "new", "it c", "it b", "it a", "it b", cmd)
				assert.Substring(t, out.String(), "l = [a b b c]")

				exec(t, c, "option descend true", cmd)
				assert.Substring(t, out.String(), "l = [c b b a]")
			})
		}
	})
	t.Run("SortOption", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "option sort timsort", "new", "it b", "it a", "sort")
		assert.Equal(t, c.conf.Algorithm(), queue.RunSort)
		assert.Substring(t, out.String(), "l = [a b]")
	})
	t.Run("Merge", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c,
			"new", "it 1", "it 4",
			"new", "it 2", "it 3", "it 6",
			"new", "it 5",
			"merge",
		)
		assert.Substring(t, out.String(), "l = [1 2 3 4 5 6]")
		assert.Equal(t, c.chain.Len(), 1)
		assert.Equal(t, c.current.ID(), 0)
		exec(t, c, "size 6")
		// one queue and six elements
		assert.Equal(t, c.Allocator().Live(), 7)
		assert.NotError(t, c.Exec("quit"))
	})
	t.Run("MergeDescending", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "option descend true", "new", "it 4", "it 1", "new", "it 3", "it 2", "merge")
		assert.Substring(t, out.String(), "l = [4 3 2 1]")
	})
	t.Run("MergeUnsorted", func(t *testing.T) {
		c, _ := newConsole(t)
		exec(t, c, "new", "it b", "it a", "new", "it c")
		assert.ErrorIs(t, c.Exec("merge"), ErrNotSorted)
		assert.Equal(t, c.chain.Len(), 2)
	})
	t.Run("Random", func(t *testing.T) {
		c, _ := newConsole(t)
		exec(t, c, "new", "ih RAND 5", "size 5")
		for val := range c.current.Queue().All() {
			check.True(t, len(val) >= 5 && len(val) <= 10)
			check.Equal(t, strings.Trim(val, "abcdefghijklmnopqrstuvwxyz"), "")
		}
	})
	t.Run("Shuffle", func(t *testing.T) {
		c, _ := newConsole(t)
		exec(t, c, "new", "it a", "it b", "it c", "it d", "it e", "it f", "shuffle", "size 6")
		assert.EqualItems(t, slices.Sorted(c.current.Queue().All()), []string{"a", "b", "c", "d", "e", "f"})
	})
	t.Run("StringLimit", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "option length 4", "new", "it abcdefg", "it abcdefg", "rh abcdefg")
		assert.Substring(t, out.String(), "Removed abc from queue")
		assert.ErrorIs(t, c.Exec("rh abx"), ErrMismatch)
	})
	t.Run("AllocationFailure", func(t *testing.T) {
		c, out := newConsole(t, func(conf *Config) { conf.FailRate = 100 })
		exec(t, c, "new")
		assert.Substring(t, out.String(), "WARNING")
		assert.Equal(t, c.chain.Len(), 0)

		exec(t, c, "option fail 0", "new", "option fail 100", "ih a 3", "size 0")
		exec(t, c, "option fail 0", "ih b", "size 1")
		assert.Equal(t, c.Allocator().Failures(), 2)
		assert.Equal(t, c.Failed(), 0)
	})
	t.Run("Options", func(t *testing.T) {
		c, _ := newConsole(t)
		exec(t, c, "option echo true", "option fail 5", "option length 10")
		assert.True(t, c.conf.Echo)
		assert.Equal(t, c.Allocator().FailRate(), 5)
		assert.Equal(t, c.conf.StringLimit, 10)

		assert.ErrorIs(t, c.Exec("option fail 200"), ers.ErrInvalidInput)
		assert.ErrorIs(t, c.Exec("option length 1"), ers.ErrInvalidInput)
		assert.ErrorIs(t, c.Exec("option descend maybe"), ers.ErrInvalidInput)
		assert.ErrorIs(t, c.Exec("option colour red"), ers.ErrInvalidInput)
		err := c.Exec("option sort bogo")
		assert.ErrorIs(t, err, ers.ErrInvalidInput)
		assert.ErrorIs(t, err, queue.ErrUnknownAlgorithm)
	})
	t.Run("Stats", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "new", "it abc", "stats")
		assert.Substring(t, out.String(), "queues: 1, live blocks: 2, live bytes: 3")
		assert.Substring(t, out.String(), "heap alloc:")
	})
	t.Run("Help", func(t *testing.T) {
		c, out := newConsole(t)
		exec(t, c, "help")
		for name := range c.commands {
			check.True(t, strings.Contains(out.String(), name))
		}
	})
}
