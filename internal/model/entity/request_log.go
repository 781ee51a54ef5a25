package entity

import (
	"time"

	"gorm.io/datatypes"
)

const TableNameRequestLog = "request_logs"

// RequestLog is one tested request together with the response it produced.
type RequestLog struct {
	ID           int64                                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Method       string                                `gorm:"column:method;size:10;not null" json:"method"`
	URL          string                                `gorm:"column:url;type:text;not null" json:"url"`
	Headers      datatypes.JSONType[map[string]string] `gorm:"column:headers;not null" json:"headers"`
	RequestBody  JSONValue                             `gorm:"column:request_body" json:"requestBody"`
	ResponseBody JSONValue                             `gorm:"column:response_body" json:"responseBody"`
	StatusCode   int                                   `gorm:"column:status_code;not null" json:"statusCode"`
	Timestamp    time.Time                             `gorm:"column:timestamp;not null;index:idx_request_logs_timestamp,sort:desc" json:"timestamp"`
	ResponseTime int64                                 `gorm:"column:response_time;not null;default:0" json:"responseTime"`
	Error        *string                               `gorm:"column:error;type:text" json:"error"`
}

func (RequestLog) TableName() string {
	return TableNameRequestLog
}

// HeaderMap returns the stored headers, never nil.
func (r *RequestLog) HeaderMap() map[string]string {
	h := r.Headers.Data()
	if h == nil {
		return map[string]string{}
	}
	return h
}

func NewHeaders(h map[string]string) datatypes.JSONType[map[string]string] {
	if h == nil {
		h = map[string]string{}
	}
	return datatypes.NewJSONType(h)
}
