package service

import (
	"go.uber.org/zap"

	"github.com/kxiao1/risk-system/internal/currency"
)

// ServiceOptions provides configuration for the risk service
type ServiceOptions struct {
	RedisAddr   string
	EpochOffset int
	Currencies  *currency.Set
	Logger      *zap.Logger
}

// DefaultServiceOptions returns sensible default options
func DefaultServiceOptions() *ServiceOptions {
	return &ServiceOptions{
		Currencies: currency.G5(),
		Logger:     zap.NewNop(),
	}
}

// ServiceOption is a function that configures service options
type ServiceOption func(*ServiceOptions)

// WithRedisConfig points the snapshot backup at a Redis instance. Without
// it, backups stay in process memory.
func WithRedisConfig(addr string) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.RedisAddr = addr
	}
}

// WithEpochOffset sets the day count subtracted from absolute maturity
// dates to get tenor-relative effective days. It is always supplied by
// the caller; the engine never derives it from the clock.
func WithEpochOffset(days int) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.EpochOffset = days
	}
}

// WithCurrencies replaces the default G5 currency group.
func WithCurrencies(set *currency.Set) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.Currencies = set
	}
}

// WithLogger sets the structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.Logger = logger
	}
}
