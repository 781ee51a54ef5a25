package webrequest

import (
	"encoding/json"
	"testing"

	"postman-backend/internal/model/data"
	"postman-backend/internal/model/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSave(t *testing.T, body string) SaveLogRequest {
	t.Helper()
	var r SaveLogRequest
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return r
}

func fields(errs []data.ValidationErrorData) map[string]string {
	out := map[string]string{}
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

func TestSaveLogRequestValid(t *testing.T) {
	r := decodeSave(t, `{
		"method": "PATCH",
		"url": "https://example.com/a?x=1",
		"headers": {"Accept": "application/json"},
		"requestBody": {"a": 1},
		"responseBody": "plain text",
		"statusCode": 200
	}`)
	assert.Empty(t, r.Validate())
}

func TestSaveLogRequestInvalid(t *testing.T) {
	r := decodeSave(t, `{
		"method": "TRACE",
		"url": "not a url",
		"headers": {"X-Count": 3},
		"requestBody": [1, 2],
		"statusCode": 700
	}`)

	errs := fields(r.Validate())
	assert.Equal(t, "Invalid HTTP method", errs["method"])
	assert.Equal(t, "Invalid URL format", errs["url"])
	assert.Equal(t, "Headers must be an object", errs["headers"])
	assert.Equal(t, "Request body must be an object", errs["requestBody"])
	assert.Equal(t, "Invalid status code", errs["statusCode"])
}

func TestSaveLogRequestRequiresFields(t *testing.T) {
	errs := fields(decodeSave(t, `{}`).Validate())
	assert.Equal(t, "Method is required", errs["method"])
	assert.Equal(t, "URL is required", errs["url"])
	assert.Equal(t, "Invalid status code", errs["statusCode"])
}

func TestSaveLogRequestRejectsRelativeURL(t *testing.T) {
	r := decodeSave(t, `{"method":"GET","url":"ftp://example.com/file","statusCode":200}`)
	assert.Equal(t, "Invalid URL format", fields(r.Validate())["url"])
}

func TestSaveLogRequestTargetID(t *testing.T) {
	tests := []struct {
		body string
		id   int64
		ok   bool
	}{
		{`{"clientId": 12}`, 12, true},
		{`{"clientId": "7"}`, 7, true},
		{`{"clientId": null}`, 0, false},
		{`{}`, 0, false},
		{`{"clientId": "abc"}`, 0, false},
		{`{"clientId": -4}`, 0, false},
		{`{"clientId": 0}`, 0, false},
		{`{"clientId": 1.5}`, 0, false},
		{`{"clientId": {"id": 1}}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			id, ok := decodeSave(t, tt.body).TargetID()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestSaveLogRequestToEntity(t *testing.T) {
	r := decodeSave(t, `{
		"method": "POST",
		"url": "https://example.com",
		"requestBody": {"name": "x"},
		"statusCode": 201,
		"responseTime": 33,
		"error": "boom"
	}`)

	log := r.ToEntity()
	assert.Equal(t, "POST", log.Method)
	assert.Empty(t, log.HeaderMap())
	assert.Equal(t, entity.JSONObject, log.RequestBody.Kind())
	assert.True(t, log.ResponseBody.IsNull())
	assert.Equal(t, 201, log.StatusCode)
	assert.EqualValues(t, 33, log.ResponseTime)
	require.NotNil(t, log.Error)
	assert.Equal(t, "boom", *log.Error)
}

func TestListLogRequest(t *testing.T) {
	r := ListLogRequest{}
	assert.Empty(t, r.Validate())
	assert.Equal(t, DefaultPage, r.PageValue())
	assert.Equal(t, DefaultLimit, r.LimitValue())

	r = ListLogRequest{Page: "3", Limit: "100"}
	assert.Empty(t, r.Validate())
	assert.Equal(t, 3, r.PageValue())
	assert.Equal(t, 100, r.LimitValue())

	errs := fields(ListLogRequest{Page: "0", Limit: "101"}.Validate())
	assert.Equal(t, "Page must be a positive integer", errs["page"])
	assert.Equal(t, "Limit must be between 1 and 100", errs["limit"])

	errs = fields(ListLogRequest{Page: "x", Limit: "-1"}.Validate())
	assert.Len(t, errs, 2)
}

func TestRelayRequest(t *testing.T) {
	var r RelayRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"clientId": "3",
		"method": "PUT",
		"url": "http://127.0.0.1:8080/items",
		"headers": {"Authorization": "Bearer t"},
		"params": {"q": "go"},
		"requestBody": {"a": true}
	}`), &r))

	assert.Empty(t, r.Validate())
	id, ok := r.TargetID()
	assert.True(t, ok)
	assert.EqualValues(t, 3, id)
	assert.Equal(t, map[string]string{"Authorization": "Bearer t"}, r.HeaderMap())
	assert.Equal(t, map[string]string{"q": "go"}, r.ParamMap())
	assert.Equal(t, entity.JSONObject, r.Body().Kind())

	bad := RelayRequest{Method: "get", URL: "https://example.com", Params: json.RawMessage(`[1]`)}
	errs := fields(bad.Validate())
	assert.Equal(t, "Invalid HTTP method", errs["method"])
	assert.Equal(t, "Params must be an object of strings", errs["params"])
}

func TestProxyRequest(t *testing.T) {
	r := ProxyRequest{Endpoint: "/api/log", Params: json.RawMessage(`{"page": 2, "q": "x", "on": true}`)}
	assert.Empty(t, r.Validate())
	assert.Equal(t, "GET", r.MethodOrDefault())
	assert.Equal(t, map[string]string{"page": "2", "q": "x", "on": "true"}, r.ParamMap())

	errs := fields(ProxyRequest{Endpoint: "http://evil.example/api/x", Method: "OPTIONS"}.Validate())
	assert.Equal(t, "Endpoint must be a path under /api/", errs["endpoint"])
	assert.Equal(t, "Invalid HTTP method", errs["method"])

	errs = fields(ProxyRequest{}.Validate())
	assert.Equal(t, "Endpoint is required", errs["endpoint"])

	errs = fields(ProxyRequest{Endpoint: "/api/../admin"}.Validate())
	assert.Contains(t, errs, "endpoint")
}

func TestProxyRequestBodyBytes(t *testing.T) {
	assert.Nil(t, ProxyRequest{}.BodyBytes())
	assert.Nil(t, ProxyRequest{RequestBody: json.RawMessage(` null `)}.BodyBytes())
	assert.Equal(t, `{"a":1}`, string(ProxyRequest{RequestBody: json.RawMessage(`{"a":1}`)}.BodyBytes()))
}
