package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/gstinvoice/internal/config"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyPrefix = "gstinvoice:limiter"

var ErrRateLimited = errors.New("rate_limited")

// Limiter throttles API requests per client IP.
type Limiter struct {
	limiter *limiter.Limiter
	log     *zap.Logger
}

// New builds a limiter from cfg.RateLimit ("<limit>-<period>", e.g. "120-M").
// Counters live in redis when REDIS_ADDR is set and in process memory
// otherwise. An empty rate disables limiting and returns nil.
func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*Limiter, error) {
	if strings.TrimSpace(cfg.RateLimit) == "" {
		return nil, nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("parse RATE_LIMIT: %w", err)
	}

	var store limiter.Store
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: strings.TrimSpace(cfg.RedisPassword),
			DB:       cfg.RedisDB,
		})
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   keyPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("rate limit redis store: %w", err)
		}
		if lc != nil {
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					return client.Close()
				},
			})
		}
		log.Info("rate limit enabled", zap.String("store", "redis"), zap.String("rate", cfg.RateLimit))
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          keyPrefix,
			CleanUpInterval: time.Minute,
		})
		log.Info("rate limit enabled", zap.String("store", "memory"), zap.String("rate", cfg.RateLimit))
	}

	return NewWithStore(store, rate, log), nil
}

func NewWithStore(store limiter.Store, rate limiter.Rate, log *zap.Logger) *Limiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Limiter{
		limiter: limiter.New(store, rate),
		log:     log.Named("ratelimit"),
	}
}

// GinMiddleware rejects requests over the limit with ErrRateLimited, leaving
// the response to the error handling middleware. Store failures let the
// request through.
func (l *Limiter) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		lctx, err := l.limiter.Get(c.Request.Context(), ip)
		if err != nil {
			l.log.Warn("rate limit check failed", zap.String("ip", ip), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			l.log.Debug("rate limit exceeded", zap.String("ip", ip), zap.Int64("limit", lctx.Limit))
			_ = c.Error(ErrRateLimited)
			c.Abort()
			return
		}

		c.Next()
	}
}
