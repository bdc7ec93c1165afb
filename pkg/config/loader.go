package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Option adjusts how a configuration is loaded.
type Option func(*loader)

type loader struct {
	files   []string
	prefix  string
	environ map[string]string
}

// WithEnvFiles loads the given dotenv files instead of ".env". Variables
// already present in the process environment are never overridden.
func WithEnvFiles(files ...string) Option {
	return func(l *loader) { l.files = files }
}

// WithPrefix prepends prefix to every variable name, e.g. "MEDCARE_".
func WithPrefix(prefix string) Option {
	return func(l *loader) { l.prefix = prefix }
}

// WithEnvironment parses from vars instead of the process environment.
// Dotenv files are skipped.
func WithEnvironment(vars map[string]string) Option {
	return func(l *loader) { l.environ = vars }
}

// Load parses the environment into a new T using its env struct tags.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	if l.environ == nil {
		if err := l.loadDotenv(); err != nil {
			return cfg, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      l.prefix,
		Environment: l.environ,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

func (l *loader) loadDotenv() error {
	if len(l.files) == 0 {
		dotenvOnce.Do(func() {
			// a missing .env is the normal case outside development
			_ = godotenv.Load()
		})
		return nil
	}

	if err := godotenv.Load(l.files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrEnvFile, err)
	}
	return nil
}
