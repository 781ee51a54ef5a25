package webrequest

import (
	"encoding/json"
	"errors"

	"postman-backend/internal/helper"
	"postman-backend/internal/model/data"
	"postman-backend/internal/model/entity"

	ozzo "github.com/go-ozzo/ozzo-validation"
)

type SaveLogRequest struct {
	ClientID     json.RawMessage `json:"clientId"`
	Method       string          `json:"method"`
	URL          string          `json:"url"`
	Headers      json.RawMessage `json:"headers"`
	RequestBody  json.RawMessage `json:"requestBody"`
	ResponseBody json.RawMessage `json:"responseBody"`
	StatusCode   *int            `json:"statusCode"`
	ResponseTime *int64          `json:"responseTime"`
	Error        *string         `json:"error"`
}

var saveLogRequestDisplayNames = map[string]string{
	"method":       "Method",
	"url":          "URL",
	"statusCode":   "Status code",
	"responseTime": "Response time",
}

func (r SaveLogRequest) Validate() []data.ValidationErrorData {
	return helper.ValidateStruct(saveLogRequestDisplayNames, &r,
		helper.Field(&r.Method, methodRules(LogMethods)...),
		helper.Field(&r.URL, urlRules("Invalid URL format")...),
		helper.Field(&r.Headers, stringMap("Headers must be an object")),
		helper.Field(&r.RequestBody, jsonObject("Request body must be an object")),
		helper.Field(&r.StatusCode, ozzo.By(func(value interface{}) error {
			code, _ := value.(*int)
			if code == nil || *code < 100 || *code > 599 {
				return errors.New("Invalid status code")
			}
			return nil
		})),
		helper.Field(&r.ResponseTime, ozzo.By(func(value interface{}) error {
			ms, _ := value.(*int64)
			if ms != nil && *ms < 0 {
				return errors.New("Response time must not be negative")
			}
			return nil
		})),
	)
}

// TargetID returns the row the save should update, if clientId names one.
func (r SaveLogRequest) TargetID() (int64, bool) {
	return parseClientID(r.ClientID)
}

// ToEntity builds the row to persist. Call only after Validate passed.
func (r SaveLogRequest) ToEntity() *entity.RequestLog {
	log := &entity.RequestLog{
		Method:       r.Method,
		URL:          r.URL,
		Headers:      entity.NewHeaders(decodeStringMap(r.Headers)),
		RequestBody:  entity.RawJSONValue(r.RequestBody),
		ResponseBody: entity.RawJSONValue(r.ResponseBody),
		Error:        r.Error,
	}
	if r.StatusCode != nil {
		log.StatusCode = *r.StatusCode
	}
	if r.ResponseTime != nil {
		log.ResponseTime = *r.ResponseTime
	}
	return log
}
