package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/aayushman-singh/xion-pet-game/shared"
)

// RateLimitService throttles the proof-submitting endpoints per caller
// address with fixed windows in Redis. Checks fail open: a broken Redis must
// not take the ledger down with it.
type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex
	enabled bool

	redisSvc *RedisService
}

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	svc.enabled = os.Getenv("RATE_LIMIT_ENABLED") != "false"
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.initDefaultConfigs()
	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"status_update": {
			EndpointType: "status_update",
			MaxRequests:  60,
			WindowSize:   time.Hour,
			Description:  "Pet status update rate limit",
			IsActive:     true,
		},
		"care_activity": {
			EndpointType: "care_activity",
			MaxRequests:  120,
			WindowSize:   time.Hour,
			Description:  "Care activity submission rate limit",
			IsActive:     true,
		},
		"game_session": {
			EndpointType: "game_session",
			MaxRequests:  60,
			WindowSize:   time.Hour,
			Description:  "Game session submission rate limit",
			IsActive:     true,
		},
		"achievement_proof": {
			EndpointType: "achievement_proof",
			MaxRequests:  60,
			WindowSize:   time.Hour,
			Description:  "Achievement proof submission rate limit",
			IsActive:     true,
		},
	}
}

func (svc *RateLimitService) getConfig(endpointType string) *RateLimitConfig {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.configs[endpointType]
}

// IsAllowed counts the caller's requests in the current window.
func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (bool, int, error) {
	config := svc.getConfig(endpointType)
	if config == nil || !config.IsActive {
		return true, -1, nil
	}

	window := time.Now().Unix() / int64(config.WindowSize.Seconds())
	key := fmt.Sprintf("rate_limit:%s:%s:%d", endpointType, identifier, window)

	count, err := svc.redisSvc.Incr(context.Background(), key, config.WindowSize)
	if err != nil {
		return true, -1, err
	}

	remaining := config.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return int(count) <= config.MaxRequests, remaining, nil
}

// CallerRateLimit applies per-address rate limiting; it falls back to the
// client IP for unauthenticated requests.
func (svc *RateLimitService) CallerRateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !svc.enabled {
			return c.Next()
		}

		identifier, _ := c.Locals(shared.CallerAddress).(string)
		if identifier == "" {
			identifier = c.IP()
		}

		allowed, remaining, err := svc.IsAllowed(identifier, endpointType)
		if err != nil {
			log.Printf("Rate limit check error for %s (%s): %v", endpointType, identifier, err)
			return c.Next()
		}

		if remaining >= 0 {
			c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}

		if !allowed {
			return shared.ResponseJSON(c, http.StatusTooManyRequests, "Too Many Requests", fiber.Map{
				"endpoint_type": endpointType,
			})
		}

		return c.Next()
	}
}
