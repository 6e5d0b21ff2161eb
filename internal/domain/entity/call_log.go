package entity

import "time"

// Valores del ENUM call_status / call_source.
const (
	CallStatusConnected = "Connected"
	CallSourceCRM       = "CRM"
)

// CallLog llamada registrada contra un lead. DurationSeconds es nil mientras la llamada sigue abierta.
type CallLog struct {
	ID              int64
	LeadID          string
	EmployeeID      string
	CallTime        time.Time
	DurationSeconds *int
	Status          string
	Source          string
	CreatedAt       time.Time
}

// CallLogView fila del historial de llamadas para la UI.
type CallLogView struct {
	UserName        string
	LeadName        string
	PhoneNumber     *string
	CallType        string
	CallStatus      string
	DurationSeconds *int
	CallTime        time.Time
	Remarks         *string
}
