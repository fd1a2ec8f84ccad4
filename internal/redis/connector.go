// Package redis dials the Redis instance behind the score cache, ledger
// persistence and profile store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/rolewithai/internal/config"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

// ConnectOptions holds the client settings and the startup retry policy.
type ConnectOptions struct {
	Addr         string
	User         string
	Password     string
	RedisDB      int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	// ConnectTimeout bounds the whole startup loop.
	ConnectTimeout time.Duration
	// RetryInterval is the first backoff step. It doubles up to MaxWait.
	RetryInterval time.Duration
	MaxWait       time.Duration
	PingTimeout   time.Duration
	// Failed attempts beyond WarnThreshold are logged at error level.
	WarnThreshold int
}

// OptionsFromConfig maps the RWAI_REDIS_* settings onto ConnectOptions.
func OptionsFromConfig(cfg *config.Config) ConnectOptions {
	return ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}
}

// Validate reports every invalid retry setting at once.
func (o ConnectOptions) Validate() error {
	var errs []error
	positive := []struct {
		name string
		v    time.Duration
	}{
		{"ConnectTimeout", o.ConnectTimeout},
		{"RetryInterval", o.RetryInterval},
		{"MaxWait", o.MaxWait},
		{"PingTimeout", o.PingTimeout},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", p.name, p.v))
		}
	}
	if o.WarnThreshold < 0 {
		errs = append(errs, fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold))
	}
	return errors.Join(errs...)
}

func (o ConnectOptions) client() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         o.Addr,
		Username:     o.User,
		Password:     o.Password,
		DB:           o.RedisDB,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
		PoolSize:     o.PoolSize,
	})
}

// nextWait doubles wait, capped at ceiling.
func nextWait(wait, ceiling time.Duration) time.Duration {
	return min(wait*2, ceiling)
}

// New creates a client and pings it with capped exponential backoff until
// it answers, ConnectTimeout elapses or ctx is done. On failure the client
// is closed and nil is returned.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("redis options: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	log = log.Named("redis")
	log.Info("connecting", logger.String("addr", opts.Addr), logger.Duration("timeout", opts.ConnectTimeout))

	client := opts.client()
	start := time.Now()
	wait := opts.RetryInterval

	for attempt := 1; ; attempt++ {
		err := ping(ctx, client, opts.PingTimeout)
		if err == nil {
			fields := []logger.Field{
				logger.String("addr", opts.Addr),
				logger.Int("attempts", attempt),
				logger.Duration("elapsed", time.Since(start)),
			}
			if attempt > 1 {
				log.Warn("connected after retry", fields...)
			} else {
				log.Info("connected", fields...)
			}
			return client, nil
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			log.Error("giving up", logger.String("addr", opts.Addr), logger.Int("attempts", attempt), logger.Error(err))
			return nil, fmt.Errorf("redis unavailable at %s after %d attempts: %w", opts.Addr, attempt, err)
		case <-time.After(wait):
		}

		retry := []logger.Field{
			logger.String("addr", opts.Addr),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", wait),
			logger.Error(err),
		}
		if attempt <= opts.WarnThreshold {
			log.Warn("ping failed, retrying", retry...)
		} else {
			log.Error("still unavailable", retry...)
		}
		wait = nextWait(wait, opts.MaxWait)
	}
}

func ping(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.Ping(ctx).Err()
}
