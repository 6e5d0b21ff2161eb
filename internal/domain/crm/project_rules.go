package crm

import (
	"strings"

	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

// ValidProjectStatus indica si status pertenece al ENUM de proyectos.
func ValidProjectStatus(status string) bool {
	switch status {
	case entity.ProjectStatusReraApproved, entity.ProjectStatusCompleted, entity.ProjectStatusPreLaunch:
		return true
	}
	return false
}

// ValidProjectType indica si t es un tipo de proyecto permitido.
func ValidProjectType(t string) bool {
	return t == entity.ProjectTypeVilla || t == entity.ProjectTypeApartment
}

// RequiresRERA aprobar o completar un proyecto exige número RERA.
func RequiresRERA(status string) bool {
	return status == entity.ProjectStatusReraApproved || status == entity.ProjectStatusCompleted
}

// CheckProjectStatus valida el estado y la regla RERA contra el número RERA disponible.
func CheckProjectStatus(status string, reraNumber *string) error {
	if !ValidProjectStatus(status) {
		return domain.Validation("status", "estado de proyecto inválido")
	}
	if RequiresRERA(status) && (reraNumber == nil || strings.TrimSpace(*reraNumber) == "") {
		return domain.Validation("rera_number", "el número RERA es requerido para proyectos aprobados o completados")
	}
	return nil
}
