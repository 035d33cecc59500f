package queue

import "time"

// Config controls how the dispatcher's offline replay loop drains a queue.
type Config struct {
	// MaxRetries is how many failed replay attempts an entry gets before
	// it is quarantined as poisoned.
	MaxRetries int `env:"QUEUE_MAX_RETRIES" envDefault:"5"`
	// ReplayInterval is how long the dispatcher waits between replay
	// passes once connectivity returns and the queue is non-empty.
	ReplayInterval time.Duration `env:"QUEUE_REPLAY_INTERVAL" envDefault:"2s"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     DefaultMaxRetries,
		ReplayInterval: 2 * time.Second,
	}
}
