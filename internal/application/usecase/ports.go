package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/presales-crm/internal/domain/repository"
)

// Cache almacenamiento clave → bytes con TTL. Lo implementan RedisCache y NopCache.
// Get devuelve found=false sin error cuando la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// EmployeeTxRunner ejecuta el alta de empleados en una transacción (reserva de EMP### + insert).
type EmployeeTxRunner interface {
	RunEmployees(ctx context.Context, fn func(
		empRepo repository.EmployeeRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// CacheInvalidator lo usan los casos de uso que modifican datos de los catálogos.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}
