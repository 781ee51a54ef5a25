package webrequest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"postman-backend/internal/helper"
	"postman-backend/internal/model/entity"

	ozzo "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	LogMethods   = []interface{}{"GET", "POST", "PUT", "DELETE", "PATCH"}
	RelayMethods = LogMethods
)

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func methodRules(methods []interface{}) []ozzo.Rule {
	return []ozzo.Rule{
		ozzo.Required.Error("Method is required"),
		ozzo.In(methods...).Error("Invalid HTTP method"),
	}
}

func urlRules(message string) []ozzo.Rule {
	return []ozzo.Rule{
		ozzo.Required.Error("URL is required"),
		is.URL.Error(message),
		ozzo.By(func(value interface{}) error {
			s, _ := value.(string)
			u, err := url.Parse(s)
			if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
				return errors.New(message)
			}
			return nil
		}),
	}
}

// jsonObject accepts an absent value or a JSON object.
func jsonObject(message string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		raw, _ := value.(json.RawMessage)
		if isAbsent(raw) {
			return nil
		}
		if entity.RawJSONValue(raw).Kind() != entity.JSONObject {
			return errors.New(message)
		}
		return nil
	})
}

// stringMap accepts an absent value or a JSON object whose values are all strings.
func stringMap(message string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		raw, _ := value.(json.RawMessage)
		if isAbsent(raw) {
			return nil
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return errors.New(message)
		}
		return nil
	})
}

func decodeStringMap(raw json.RawMessage) map[string]string {
	m := map[string]string{}
	if isAbsent(raw) {
		return m
	}
	_ = json.Unmarshal(raw, &m)
	return m
}

// parseClientID resolves a clientId given as a JSON number or numeric string.
func parseClientID(raw json.RawMessage) (int64, bool) {
	if isAbsent(raw) {
		return 0, false
	}
	s := string(bytes.TrimSpace(raw))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
	}
	return helper.ParsePositiveInt(s)
}
