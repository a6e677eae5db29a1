package harness

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ShawnXuanc/lab0/ers"
	"github.com/ShawnXuanc/lab0/queue"
)

// EnvPrefix is the prefix of the environment variables that override
// configuration values, e.g. QTEST_FAIL_RATE.
const EnvPrefix = "QTEST_"

// Config controls a Console. The zero value is not valid; start from
// DefaultConfig.
type Config struct {
	// Sort names the algorithm used by the sort command: merge, tim
	// or list.
	Sort string `yaml:"sort"`
	// Descend sets the initial direction of sort, merge, and the
	// sorted-order checks.
	Descend bool `yaml:"descend"`
	// FailRate is the percentage of allocations that fail.
	FailRate int `yaml:"fail_rate"`
	// StringLimit is the size of the buffer removed strings are
	// copied into, including the terminating zero byte.
	StringLimit int `yaml:"string_limit"`
	// Seed seeds the allocator and RAND strings; zero picks a seed
	// from the clock.
	Seed uint64 `yaml:"seed"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
	// Echo prints every command before running it.
	Echo bool `yaml:"echo"`
}

// DefaultConfig returns the configuration used when no file or
// environment overrides are given.
func DefaultConfig() Config {
	return Config{
		Sort:        queue.MergeSort.String(),
		StringLimit: 1024,
		LogLevel:    "info",
	}
}

// ReadConfig decodes yaml from r over the defaults. Unknown keys are
// rejected.
func ReadConfig(r io.Reader) (Config, error) {
	conf := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(ers.Join(err, ers.ErrMalformedConfiguration), "decode config")
	}

	return conf, conf.Validate()
}

// ReadConfigFile reads a yaml configuration file.
func ReadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	return ReadConfig(f)
}

// LoadEnv applies QTEST_* overrides from the process environment and
// from the given dotenv files. Values already set in the process
// environment win over values from files, and files that do not exist
// are skipped.
func (c *Config) LoadEnv(files ...string) error {
	env := map[string]string{}

	existing := make([]string, 0, len(files))
	for _, name := range files {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		}
	}
	if len(existing) > 0 {
		vals, err := godotenv.Read(existing...)
		if err != nil {
			return errors.Wrap(err, "read env file")
		}
		for k, v := range vals {
			env[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}

	return c.ApplyEnv(env)
}

// ApplyEnv applies QTEST_* overrides from env and validates the
// result. Keys without the prefix are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	for key, val := range env {
		name, ok := strings.CutPrefix(key, EnvPrefix)
		if !ok {
			continue
		}

		var err error
		switch strings.ToUpper(name) {
		case "SORT":
			c.Sort = val
		case "DESCEND":
			c.Descend, err = strconv.ParseBool(val)
		case "FAIL_RATE":
			c.FailRate, err = strconv.Atoi(val)
		case "STRING_LIMIT":
			c.StringLimit, err = strconv.Atoi(val)
		case "SEED":
			c.Seed, err = strconv.ParseUint(val, 10, 64)
		case "LOG_LEVEL":
			c.LogLevel = val
		case "ECHO":
			c.Echo, err = strconv.ParseBool(val)
		}
		if err != nil {
			return errors.Wrapf(ers.Join(err, ers.ErrMalformedConfiguration), "env %s", key)
		}
	}

	return c.Validate()
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := queue.ParseAlgorithm(c.Sort); err != nil {
		errs = append(errs, err)
	}
	if c.FailRate < 0 || c.FailRate > 100 {
		errs = append(errs, errors.Errorf("fail_rate %d is outside [0, 100]", c.FailRate))
	}
	if c.StringLimit < 2 {
		errs = append(errs, errors.Errorf("string_limit %d is less than 2", c.StringLimit))
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return ers.Join(append(errs, ers.ErrMalformedConfiguration)...)
}

// Algorithm returns the configured sort algorithm.
func (c Config) Algorithm() queue.Algorithm {
	alg, err := queue.ParseAlgorithm(c.Sort)
	if err != nil {
		return queue.MergeSort
	}
	return alg
}

// Logger builds a zap logger at the configured level. Debug uses the
// development encoder; every other level uses the production one.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(ers.Join(err, ers.ErrMalformedConfiguration), "log level")
	}

	conf := zap.NewProductionConfig()
	if level.Level() == zap.DebugLevel {
		conf = zap.NewDevelopmentConfig()
	}
	conf.Level = level

	return conf.Build()
}
