package webresponse

import (
	"postman-backend/internal/model/data"
	"postman-backend/internal/model/entity"
)

type MessageResponse struct {
	Message string                     `json:"message"`
	Errors  []data.ValidationErrorData `json:"errors,omitempty"`
}

type SaveLogResponse struct {
	Message  string             `json:"message"`
	Log      *entity.RequestLog `json:"log"`
	ClientID int64              `json:"clientId"`
}

type ListLogsResponse struct {
	Logs       []*entity.RequestLog `json:"logs"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
}

type GetLogResponse struct {
	Log *entity.RequestLog `json:"log"`
}

type DeleteLogsResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// RelayResponse carries Response on success and Error when the outbound call failed.
type RelayResponse struct {
	Message  string             `json:"message"`
	Response *entity.JSONValue  `json:"response,omitempty"`
	Error    string             `json:"error,omitempty"`
	ClientID int64              `json:"clientId"`
	Log      *entity.RequestLog `json:"log"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
