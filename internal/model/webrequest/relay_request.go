package webrequest

import (
	"encoding/json"

	"postman-backend/internal/helper"
	"postman-backend/internal/model/data"
	"postman-backend/internal/model/entity"
)

type RelayRequest struct {
	ClientID    json.RawMessage `json:"clientId"`
	Method      string          `json:"method"`
	URL         string          `json:"url"`
	Headers     json.RawMessage `json:"headers"`
	Params      json.RawMessage `json:"params"`
	RequestBody json.RawMessage `json:"requestBody"`
}

var relayRequestDisplayNames = map[string]string{
	"method": "Method",
	"url":    "URL",
}

func (r RelayRequest) Validate() []data.ValidationErrorData {
	return helper.ValidateStruct(relayRequestDisplayNames, &r,
		helper.Field(&r.Method, methodRules(RelayMethods)...),
		helper.Field(&r.URL, urlRules("Must be a valid URL")...),
		helper.Field(&r.Headers, stringMap("Headers must be an object")),
		helper.Field(&r.Params, stringMap("Params must be an object of strings")),
		helper.Field(&r.RequestBody, jsonObject("Request body must be an object")),
	)
}

func (r RelayRequest) TargetID() (int64, bool) {
	return parseClientID(r.ClientID)
}

func (r RelayRequest) HeaderMap() map[string]string {
	return decodeStringMap(r.Headers)
}

func (r RelayRequest) ParamMap() map[string]string {
	return decodeStringMap(r.Params)
}

func (r RelayRequest) Body() entity.JSONValue {
	return entity.RawJSONValue(r.RequestBody)
}
