package mongo

import (
	"errors"
	"time"
)

type Option func(*Mongo)

func ConnAttempts(attempts int) Option {
	return func(m *Mongo) {
		m.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(m *Mongo) {
		m.connTimeout = timeout
	}
}

func BaseRetryDelay(delay time.Duration) Option {
	return func(m *Mongo) {
		m.baseRetryDelay = delay
	}
}

func MaxRetryDelay(delay time.Duration) Option {
	return func(m *Mongo) {
		m.maxRetryDelay = delay
	}
}

func (m *Mongo) validate() error {
	if m.connAttempts <= 0 {
		return errors.New("invalid connAttempts: must be > 0")
	}

	if m.connTimeout <= 0 {
		return errors.New("invalid connTimeout: must be > 0")
	}

	if m.baseRetryDelay <= 0 || m.maxRetryDelay < m.baseRetryDelay {
		return errors.New("invalid retry delays: base must be > 0 and max >= base")
	}
	return nil
}
