package dto

import "time"

// StartCallRequest inicio de llamada contra un lead.
type StartCallRequest struct {
	LeadID string `json:"lead_id" validate:"required"`
}

// StartCallResponse ID de la llamada abierta.
type StartCallResponse struct {
	CallID int64 `json:"call_id"`
}

// EndCallResponse duración en segundos.
type EndCallResponse struct {
	Duration int `json:"duration"`
}

// CallLogResponse fila del historial de llamadas para la UI.
type CallLogResponse struct {
	UserName     string    `json:"userName"`
	LeadName     string    `json:"leadName"`
	PhoneNumber  *string   `json:"phoneNumber"`
	CallType     string    `json:"callType"`
	CallStatus   string    `json:"callStatus"`
	CallDuration string    `json:"callDuration"`
	CallTime     time.Time `json:"callTime"`
	Remarks      *string   `json:"remarks"`
}
