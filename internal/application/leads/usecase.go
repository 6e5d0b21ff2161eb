package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/crm"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

// UseCase gestiona el ciclo de vida de los leads: alta con deduplicación de cliente,
// listado, consulta, actualización parcial y borrado lógico o definitivo.
type UseCase struct {
	txRunner TxRunner
	leadRepo repository.LeadRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. leadRepo (atado al pool) se usa para lecturas fuera de transacción.
func NewUseCase(txRunner TxRunner, leadRepo repository.LeadRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner: txRunner,
		leadRepo: leadRepo,
		log:      log.Component("leads"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create da de alta un lead en una sola transacción: resuelve catálogos, deduplica el cliente
// por teléfono, reserva el siguiente L### e inserta. Devuelve el ID del lead.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateLeadRequest) (string, error) {
	if actorID == "" {
		return "", domain.Unauthorized("token válido requerido")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", domain.Validation("name", "name es requerido")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return "", domain.Validation("phone", "phone es requerido")
	}

	now := uc.now()
	var leadID string
	err := uc.txRunner.RunLeads(ctx, func(
		leadRepo repository.LeadRepository,
		customerRepo repository.CustomerRepository,
		refRepo repository.ReferenceRepository,
		seqRepo repository.SequenceRepository,
	) error {
		resolver := NewResolver(refRepo)

		sourceID, err := resolveRequired(ctx, resolver, entity.ReferenceSource, "source", in.Source)
		if err != nil {
			return err
		}
		statusID, err := resolveRequired(ctx, resolver, entity.ReferenceStatus, "status", in.Status)
		if err != nil {
			return err
		}
		empRes, err := resolver.Employee(ctx, in.AssignedTo)
		if err != nil {
			return err
		}
		empID, err := requireResolved(empRes, "assignedTo", in.AssignedTo)
		if err != nil {
			return err
		}
		projectID, err := resolveProject(ctx, resolver, refRepo, in.ProjectID, in.Project)
		if err != nil {
			return err
		}

		customerID, err := findOrCreateCustomer(ctx, customerRepo, seqRepo, customerInput{
			FullName:   name,
			Phone:      in.Phone,
			AltPhone:   in.AlternatePhone,
			Email:      in.Email,
			Profession: in.Profession,
		}, now)
		if err != nil {
			return err
		}

		id, err := seqRepo.Next(ctx, entity.SequenceLead)
		if err != nil {
			return fmt.Errorf("generar lead_id: %w", err)
		}
		actor := actorID
		lead := &entity.Lead{
			ID:          id,
			CustomerID:  customerID,
			SourceID:    sourceID,
			StatusID:    statusID,
			EmployeeID:  empID,
			ProjectID:   projectID,
			Description: strings.TrimSpace(in.Description),
			IsActive:    true,
			CreatedOn:   now,
			CreatedBy:   &actor,
		}
		if err := leadRepo.Create(ctx, lead); err != nil {
			return fmt.Errorf("insertar lead: %w", err)
		}
		leadID = id
		return nil
	})
	if err != nil {
		return "", uc.fail("crear lead", err)
	}
	uc.log.Info().Str("lead_id", leadID).Str("actor", actorID).Msg("lead creado")
	return leadID, nil
}

// List devuelve los leads activos que cumplen el filtro, más recientes primero.
// Un error de lectura se registra y se responde con lista vacía.
func (uc *UseCase) List(ctx context.Context, f dto.LeadFilterRequest) []dto.LeadResponse {
	views, err := uc.leadRepo.List(ctx, entity.LeadFilter{
		Customer: strings.TrimSpace(f.Customer),
		Mobile:   strings.TrimSpace(f.Mobile),
		Source:   strings.TrimSpace(f.Source),
		Employee: strings.TrimSpace(f.Employee),
		Project:  strings.TrimSpace(f.Project),
	})
	if err != nil {
		uc.log.Error().Err(err).Msg("listar leads")
		return []dto.LeadResponse{}
	}
	out := make([]dto.LeadResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toLeadResponse(v))
	}
	return out
}

// Get devuelve un lead activo por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.LeadResponse, error) {
	view, err := uc.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.fail("obtener lead", err)
	}
	if view == nil || !view.IsActive {
		return nil, domain.NotFound("lead no encontrado")
	}
	resp := toLeadResponse(view)
	return &resp, nil
}

// Update aplica una actualización parcial. Cada referencia se reemplaza solo si se envía un valor
// no vacío que resuelve; un valor que no resuelve aborta sin cambios. Los datos del cliente
// (nombre, email, teléfono alterno, profesión) se actualizan con la misma semántica; el teléfono
// principal no es editable.
func (uc *UseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateLeadRequest) error {
	if actorID == "" {
		return domain.Unauthorized("token válido requerido")
	}
	now := uc.now()
	err := uc.txRunner.RunLeads(ctx, func(
		leadRepo repository.LeadRepository,
		customerRepo repository.CustomerRepository,
		refRepo repository.ReferenceRepository,
		_ repository.SequenceRepository,
	) error {
		lead, err := leadRepo.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("bloquear lead: %w", err)
		}
		if lead == nil || !lead.IsActive {
			return domain.NotFound("lead no encontrado")
		}

		resolver := NewResolver(refRepo)
		patch := entity.LeadPatch{ID: id, ModifiedOn: now, ModifiedBy: actorID}

		if v, ok := supplied(in.Source); ok {
			sourceID, err := resolveRequired(ctx, resolver, entity.ReferenceSource, "source", v)
			if err != nil {
				return err
			}
			patch.SourceID = &sourceID
		}
		if v, ok := supplied(in.Status); ok {
			statusID, err := resolveRequired(ctx, resolver, entity.ReferenceStatus, "status", v)
			if err != nil {
				return err
			}
			patch.StatusID = &statusID
		}
		if v, ok := supplied(in.AssignedTo); ok {
			res, err := resolver.Employee(ctx, v)
			if err != nil {
				return err
			}
			empID, err := requireResolved(res, "assignedTo", v)
			if err != nil {
				return err
			}
			patch.EmployeeID = &empID
		}
		projectIDIn, _ := supplied(in.ProjectID)
		projectName, _ := supplied(in.Project)
		if projectIDIn != "" || projectName != "" {
			projectID, err := resolveProject(ctx, resolver, refRepo, projectIDIn, projectName)
			if err != nil {
				return err
			}
			patch.ProjectID = projectID
		}
		if in.Description != nil {
			d := strings.TrimSpace(*in.Description)
			patch.Description = &d
		}

		custPatch := customerPatch(lead.CustomerID, in)
		if !custPatch.IsEmpty() {
			if err := customerRepo.Update(ctx, custPatch); err != nil {
				return fmt.Errorf("actualizar cliente: %w", err)
			}
		}
		if err := leadRepo.Update(ctx, patch); err != nil {
			return fmt.Errorf("actualizar lead: %w", err)
		}
		return nil
	})
	if err != nil {
		return uc.fail("actualizar lead", err)
	}
	uc.log.Info().Str("lead_id", id).Str("actor", actorID).Msg("lead actualizado")
	return nil
}

// Delete borra un lead. Por defecto es borrado lógico (is_active = false); hard elimina el lead
// junto con sus llamadas y campañas. NotFound si ninguna fila fue afectada.
func (uc *UseCase) Delete(ctx context.Context, id string, hard bool) error {
	var affected bool
	var err error
	if hard {
		err = uc.txRunner.RunLeads(ctx, func(
			leadRepo repository.LeadRepository,
			_ repository.CustomerRepository,
			_ repository.ReferenceRepository,
			_ repository.SequenceRepository,
		) error {
			var derr error
			affected, derr = leadRepo.HardDelete(ctx, id)
			return derr
		})
	} else {
		affected, err = uc.leadRepo.SoftDelete(ctx, id)
	}
	if err != nil {
		return uc.fail("eliminar lead", err)
	}
	if !affected {
		return domain.NotFound("lead no encontrado")
	}
	uc.log.Info().Str("lead_id", id).Bool("hard", hard).Msg("lead eliminado")
	return nil
}

// fail deja pasar los errores de dominio y registra el resto como fallas internas.
func (uc *UseCase) fail(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("operación de leads fallida")
	return domain.Internal(op, err)
}

func resolveRequired(ctx context.Context, r *Resolver, kind entity.ReferenceKind, field, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", domain.Validation(field, field+" es requerido")
	}
	res, err := r.Reference(ctx, kind, name)
	if err != nil {
		return "", err
	}
	return requireResolved(res, field, name)
}

// resolveProject projectID directo (debe existir) tiene prioridad sobre el nombre. Ambos vacíos → sin proyecto.
func resolveProject(ctx context.Context, r *Resolver, refRepo repository.ReferenceRepository, projectID, projectName string) (*string, error) {
	if id := strings.TrimSpace(projectID); id != "" {
		ok, err := refRepo.ProjectExists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("verificar proyecto: %w", err)
		}
		if !ok {
			return nil, domain.Validation("projectId", fmt.Sprintf("projectId '%s' no existe", id))
		}
		return &id, nil
	}
	if strings.TrimSpace(projectName) == "" {
		return nil, nil
	}
	res, err := r.Reference(ctx, entity.ReferenceProject, projectName)
	if err != nil {
		return nil, err
	}
	id, err := requireResolved(res, "project", projectName)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func customerPatch(customerID string, in dto.UpdateLeadRequest) entity.CustomerPatch {
	p := entity.CustomerPatch{ID: customerID}
	if name, ok := supplied(in.Name); ok {
		first, last := crm.SplitFullName(name)
		p.FirstName = &first
		p.LastName = &last
	}
	if email, ok := supplied(in.Email); ok {
		p.Email = &email
	}
	if alt, ok := supplied(in.AlternatePhone); ok {
		if n := crm.NormalizePhone(alt); n != "" {
			p.AltPhone = &n
		}
	}
	if prof, ok := supplied(in.Profession); ok {
		p.Profession = &prof
	}
	return p
}

func toLeadResponse(v *entity.LeadView) dto.LeadResponse {
	return dto.LeadResponse{
		ID:             v.ID,
		Name:           v.Name,
		Phone:          v.Phone,
		AlternatePhone: v.AlternatePhone,
		Email:          v.Email,
		Profession:     v.Profession,
		Project:        v.Project,
		ProjectID:      v.ProjectID,
		Source:         v.Source,
		Status:         v.Status,
		AssignedTo:     v.AssignedTo,
		Description:    v.Description,
		CreatedAt:      v.CreatedAt,
		CreatedBy:      v.CreatedBy,
		ModifiedAt:     v.ModifiedAt,
		ModifiedBy:     v.ModifiedBy,
	}
}
