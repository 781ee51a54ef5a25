package webrequest

import (
	"encoding/json"
	"errors"
	"strings"

	"postman-backend/internal/helper"
	"postman-backend/internal/model/data"

	ozzo "github.com/go-ozzo/ozzo-validation"
)

// ProxyRequest is forwarded to this API's own /api/ routes.
type ProxyRequest struct {
	Endpoint    string          `json:"endpoint"`
	Method      string          `json:"method"`
	Params      json.RawMessage `json:"params"`
	RequestBody json.RawMessage `json:"requestBody"`
}

func (r ProxyRequest) Validate() []data.ValidationErrorData {
	return helper.ValidateStruct(map[string]string{"endpoint": "Endpoint"}, &r,
		helper.Field(&r.Endpoint, ozzo.Required, ozzo.By(func(value interface{}) error {
			s, _ := value.(string)
			if s != "" && (!strings.HasPrefix(s, "/api/") || strings.Contains(s, "..")) {
				return errors.New("Endpoint must be a path under /api/")
			}
			return nil
		})),
		helper.Field(&r.Method, ozzo.In(LogMethods...).Error("Invalid HTTP method")),
		helper.Field(&r.Params, jsonObject("Params must be an object")),
	)
}

func (r ProxyRequest) MethodOrDefault() string {
	if r.Method == "" {
		return "GET"
	}
	return r.Method
}

// BodyBytes is the body to forward, nil when absent.
func (r ProxyRequest) BodyBytes() []byte {
	if isAbsent(r.RequestBody) {
		return nil
	}
	return r.RequestBody
}

// ParamMap stringifies every param value the way a query string carries it.
func (r ProxyRequest) ParamMap() map[string]string {
	params := map[string]string{}
	if isAbsent(r.Params) {
		return params
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(r.Params, &raw); err != nil {
		return params
	}
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			params[k] = s
			continue
		}
		params[k] = strings.TrimSpace(string(v))
	}
	return params
}
