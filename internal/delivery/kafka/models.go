package kafka

import "github.com/azizikri/startup-deals/internal/domain"

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeAlreadyClaimed  = "ALREADY_CLAIMED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

type RequestPayload struct {
	SchemaVersion int             `json:"schema_version"`
	CorrelationID string          `json:"correlation_id"`
	ReplyTo       string          `json:"reply_to"`
	UserID        string          `json:"user_id,omitempty"`
	DealID        string          `json:"deal_id,omitempty"`
	Deal          *domain.NewDeal `json:"deal,omitempty"`
}

type ResponsePayload struct {
	SchemaVersion int           `json:"schema_version"`
	CorrelationID string        `json:"correlation_id"`
	Status        string        `json:"status"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	Claim         *domain.Claim `json:"claim,omitempty"`
	Deal          *domain.Deal  `json:"deal,omitempty"`
}
