package helper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"postman-backend/internal/model/data"
	"reflect"

	"github.com/gin-gonic/gin"
)

var ErrEmptyBody = errors.New("request body is empty")

func ReadJSONFromByte(data []byte, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(out)
}

// ReadJSON reads and decodes the JSON request body into out.
func ReadJSON(c *gin.Context, out any) error {
	if c.Request.Body == nil {
		return ErrEmptyBody
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	defer c.Request.Body.Close()

	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyBody
	}
	return ReadJSONFromByte(body, out)
}

// WriteJSON writes data as the JSON response with the given status.
func WriteJSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// DecodeErrors describes a body decode failure as field errors when the failure
// is a type mismatch on a known field.
func DecodeErrors(err error) []data.ValidationErrorData {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []data.ValidationErrorData{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, jsonTypeName(typeErr.Type.Kind())),
		}}
	}
	return nil
}

func jsonTypeName(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return kind.String()
	}
}

// WriteBadJSON answers a request whose body could not be decoded.
func WriteBadJSON(c *gin.Context, err error) {
	message := "Invalid JSON body"
	if errors.Is(err, ErrEmptyBody) {
		message = "Request body is required"
	}
	body := gin.H{"message": message}
	if fieldErrs := DecodeErrors(err); len(fieldErrs) > 0 {
		body["errors"] = fieldErrs
	}
	c.JSON(http.StatusBadRequest, body)
}
