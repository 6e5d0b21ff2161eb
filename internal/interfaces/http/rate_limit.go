package http

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

// IPRateLimiter token bucket por IP de cliente.
// Las IPs sin tráfico durante idleTTL se descartan: su cubeta ya estaría llena.
type IPRateLimiter struct {
	limiters  sync.Map // ip → *ipLimiter
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
	log       *logger.Logger
}

type ipLimiter struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nano
}

// NewIPRateLimiter perMinute peticiones por minuto con ráfaga burst.
func NewIPRateLimiter(perMinute, burst int, log *logger.Logger) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = perMinute
	}
	// tiempo en rellenar la ráfaga completa, mínimo un minuto
	idle := time.Duration(float64(burst) / float64(perMinute) * float64(time.Minute))
	if idle < time.Minute {
		idle = time.Minute
	}
	i := &IPRateLimiter{
		rate:    rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		idleTTL: idle,
		now:     time.Now,
		log:     log,
	}
	i.lastSweep.Store(i.now().UnixNano())
	return i
}

func (i *IPRateLimiter) limiter(ip string, now time.Time) *rate.Limiter {
	i.maybeSweep(now)
	v, ok := i.limiters.Load(ip)
	if !ok {
		v, _ = i.limiters.LoadOrStore(ip, &ipLimiter{lim: rate.NewLimiter(i.rate, i.burst)})
	}
	e := v.(*ipLimiter)
	e.lastSeen.Store(now.UnixNano())
	return e.lim
}

// maybeSweep recorre el mapa como mucho una vez por idleTTL; solo una goroutine gana el turno.
func (i *IPRateLimiter) maybeSweep(now time.Time) {
	last := i.lastSweep.Load()
	if now.UnixNano()-last < int64(i.idleTTL) {
		return
	}
	if !i.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	i.sweep(now)
}

// sweep elimina las IPs inactivas desde hace más de idleTTL.
func (i *IPRateLimiter) sweep(now time.Time) int {
	cutoff := now.Add(-i.idleTTL).UnixNano()
	removed := 0
	i.limiters.Range(func(k, v any) bool {
		if v.(*ipLimiter).lastSeen.Load() < cutoff && i.limiters.CompareAndDelete(k, v) {
			removed++
		}
		return true
	})
	if removed > 0 && i.log != nil {
		i.log.Debug().Int("removed", removed).Msg("rate limit: IPs inactivas descartadas")
	}
	return removed
}

// Handler middleware Fiber: 429 cuando la IP agota su cupo.
func (i *IPRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		now := i.now()
		if !i.limiter(ip, now).AllowN(now, 1) {
			if i.log != nil {
				i.log.Warn().Str("ip", ip).Str("path", c.Path()).Msg("rate limit excedido")
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiados intentos, intente más tarde",
			})
		}
		return c.Next()
	}
}
