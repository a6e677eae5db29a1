// Package harness interprets line-oriented command scripts that drive
// a set of queues, the way a test driver exercises a data structure
// under controlled allocation failure. Each command operates on the
// current queue of a queue.Chain; results are printed to the
// console's output, and every failure is both logged and counted.
package harness

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ShawnXuanc/lab0/ers"
	"github.com/ShawnXuanc/lab0/queue"
)

const (
	// ErrUnknownCommand is returned for a command name with no handler.
	ErrUnknownCommand ers.Error = ers.Error("unknown command")
	// ErrMismatch is returned when a result differs from the value
	// the script expected.
	ErrMismatch ers.Error = ers.Error("unexpected result")
	// ErrEmptyQueue is returned by commands that need at least one
	// element.
	ErrEmptyQueue ers.Error = ers.Error("queue is empty")
	// ErrNotSorted is returned when a sort or merge leaves, or a
	// merge starts from, a queue that is out of order.
	ErrNotSorted ers.Error = ers.Error("queue is not sorted")
	// ErrLeak is returned when storage is still allocated after every
	// queue was freed.
	ErrLeak ers.Error = ers.Error("allocated blocks remain after free")
	// ErrCommandsFailed is returned by Run when at least one command
	// failed.
	ErrCommandsFailed ers.Error = ers.Error("commands failed")
)

// showLimit bounds how many values a queue listing prints.
const showLimit = 64

// Console runs commands against a chain of queues. A Console is not
// safe for concurrent use.
type Console struct {
	conf     Config
	out      io.Writer
	logger   *zap.Logger
	alloc    *Allocator
	rng      *rand.Rand
	commands map[string]command

	chain   queue.Chain
	current *queue.Context

	line   int
	failed int
	done   bool
}

// NewConsole validates conf and returns a console writing to out. A
// nil logger discards log output.
func NewConsole(conf Config, out io.Writer, logger *zap.Logger) (*Console, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	c := &Console{
		conf:   conf,
		out:    out,
		logger: logger,
		alloc:  NewAllocator(rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15)), conf.FailRate),
		rng:    rand.New(rand.NewPCG(seed, 0xbf58476d1ce4e5b9)),
	}
	c.commands = c.commandTable()

	logger.Debug("console ready",
		zap.Uint64("seed", seed),
		zap.String("sort", conf.Sort),
		zap.Int("fail_rate", conf.FailRate),
	)
	return c, nil
}

// Failed returns the number of commands that have failed.
func (c *Console) Failed() int { return c.failed }

// Done reports whether the console has executed quit.
func (c *Console) Done() bool { return c.done }

// Summary returns a one-line description of the console's counters.
func (c *Console) Summary() string {
	return fmt.Sprintf("%d lines, %d failed, %d refused allocations", c.line, c.failed, c.alloc.Failures())
}

// Allocator returns the allocator shared by every queue the console
// creates.
func (c *Console) Allocator() *Allocator { return c.alloc }

// Run executes one command per line read from in until the input is
// exhausted, quit is executed, or ctx is canceled. Queues still
// allocated at the end are freed and checked for leaks. Run returns
// an error wrapping ErrCommandsFailed when any command failed.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for !c.done && scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "stopped at line %d", c.line)
		}

		c.line++
		if err := c.Exec(scanner.Text()); err != nil {
			c.fail(errors.Wrapf(err, "line %d", c.line))
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read commands")
	}

	if !c.done {
		if err := c.quit(nil); err != nil {
			c.fail(errors.Wrap(err, "end of input"))
		}
	}

	if c.failed > 0 {
		return errors.Wrapf(ErrCommandsFailed, "%d of %d", c.failed, c.line)
	}
	return nil
}

// Exec runs a single command line. Blank lines and lines starting
// with # are ignored.
func (c *Console) Exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return nil
	}
	if c.conf.Echo {
		c.printf("cmd> %s\n", strings.Join(args, " "))
	}

	cmd, ok := c.commands[args[0]]
	if !ok {
		return errors.Wrap(ErrUnknownCommand, args[0])
	}
	if len(args)-1 < cmd.minArgs || len(args)-1 > cmd.maxArgs {
		return errors.Wrapf(ers.ErrInvalidInput, "%s takes %s", args[0], cmd.usage())
	}

	c.logger.Debug("exec", zap.String("cmd", args[0]), zap.Strings("args", args[1:]))
	if err := cmd.run(args[1:]); err != nil {
		return errors.Wrap(err, args[0])
	}
	return nil
}

func (c *Console) fail(err error) {
	c.failed++
	c.logger.Error("command failed", zap.Int("line", c.line), zap.Error(err))
	c.printf("ERROR: %v\n", err)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// show prints the current queue.
func (c *Console) show() {
	if c.current == nil {
		c.printf("l = NULL\n")
		return
	}
	c.printf("l = %s\n", render(c.current.Queue()))
}

func render(q *queue.Queue) string {
	var b strings.Builder
	b.WriteByte('[')
	count := 0
	for val := range q.All() {
		if count == showLimit {
			b.WriteString(" ...")
			break
		}
		if count > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(val)
		count++
	}
	b.WriteByte(']')
	return b.String()
}

// randomString returns a lowercase string of 5 to 10 letters.
func (c *Console) randomString() string {
	buf := make([]byte, 5+c.rng.IntN(6))
	for idx := range buf {
		buf[idx] = byte('a' + c.rng.IntN(26))
	}
	return string(buf)
}
