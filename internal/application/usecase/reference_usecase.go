package usecase

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/presales-crm/internal/domain/repository"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

// Claves del caché de catálogos.
const (
	refKeyEmployees = "crm:ref:employees"
	refKeySources   = "crm:ref:sources"
	refKeyStatuses  = "crm:ref:statuses"
	refKeyProjects  = "crm:ref:projects"
)

var _ CacheInvalidator = (*ReferenceCatalog)(nil)

// ReferenceCatalog listas de nombres para los selectores del frontend (empleados, fuentes,
// estados, proyectos). Lectura a través de caché; cargas concurrentes de la misma clave se colapsan.
type ReferenceCatalog struct {
	refs  repository.ReferenceRepository
	cache Cache
	ttl   time.Duration
	group singleflight.Group
	log   *logger.Logger
}

// NewReferenceCatalog construye el catálogo. ttl <= 0 usa 5 minutos.
func NewReferenceCatalog(refs repository.ReferenceRepository, cache Cache, ttl time.Duration, log *logger.Logger) *ReferenceCatalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReferenceCatalog{refs: refs, cache: cache, ttl: ttl, log: log.Component("reference")}
}

// Employees primer nombre de todos los empleados.
func (rc *ReferenceCatalog) Employees(ctx context.Context) []string {
	return rc.load(ctx, refKeyEmployees, rc.refs.ListEmployeeNames)
}

// Sources nombres de las fuentes activas.
func (rc *ReferenceCatalog) Sources(ctx context.Context) []string {
	return rc.load(ctx, refKeySources, rc.refs.ListSourceNames)
}

// Statuses nombres de los estados activos.
func (rc *ReferenceCatalog) Statuses(ctx context.Context) []string {
	return rc.load(ctx, refKeyStatuses, rc.refs.ListStatusNames)
}

// Projects nombres de todos los proyectos.
func (rc *ReferenceCatalog) Projects(ctx context.Context) []string {
	return rc.load(ctx, refKeyProjects, rc.refs.ListProjectNames)
}

// Invalidate descarta las listas cacheadas. Fallas del caché solo se registran.
func (rc *ReferenceCatalog) Invalidate(ctx context.Context) {
	if err := rc.cache.Delete(ctx, refKeyEmployees, refKeySources, refKeyStatuses, refKeyProjects); err != nil {
		rc.log.Warn().Err(err).Msg("invalidar caché de catálogos")
	}
}

// load lee del caché y, si falta, de la base. Los errores degradan a lista vacía.
func (rc *ReferenceCatalog) load(ctx context.Context, key string, fetch func(context.Context) ([]string, error)) []string {
	if raw, found, err := rc.cache.Get(ctx, key); err != nil {
		rc.log.Warn().Err(err).Str("key", key).Msg("leer caché")
	} else if found {
		var names []string
		if err := json.Unmarshal(raw, &names); err == nil {
			return names
		}
	}

	v, err, _ := rc.group.Do(key, func() (interface{}, error) {
		// la carga es compartida: no depende de la cancelación de quien la inició
		ctx := context.WithoutCancel(ctx)
		names, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if names == nil {
			names = []string{}
		}
		if raw, err := json.Marshal(names); err == nil {
			if err := rc.cache.Set(ctx, key, raw, rc.ttl); err != nil {
				rc.log.Warn().Err(err).Str("key", key).Msg("escribir caché")
			}
		}
		return names, nil
	})
	if err != nil {
		rc.log.Error().Err(err).Str("key", key).Msg("cargar catálogo")
		return []string{}
	}
	return v.([]string)
}
