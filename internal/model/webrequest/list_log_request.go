package webrequest

import (
	"errors"

	"postman-backend/internal/helper"
	"postman-backend/internal/model/data"

	ozzo "github.com/go-ozzo/ozzo-validation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListLogRequest carries the raw page and limit query parameters.
type ListLogRequest struct {
	Page  string `json:"page"`
	Limit string `json:"limit"`
}

func (r ListLogRequest) Validate() []data.ValidationErrorData {
	return helper.ValidateStruct(nil, &r,
		helper.Field(&r.Page, ozzo.By(func(value interface{}) error {
			s, _ := value.(string)
			if s == "" {
				return nil
			}
			if _, ok := helper.ParsePositiveInt(s); !ok {
				return errors.New("Page must be a positive integer")
			}
			return nil
		})),
		helper.Field(&r.Limit, ozzo.By(func(value interface{}) error {
			s, _ := value.(string)
			if s == "" {
				return nil
			}
			if n, ok := helper.ParsePositiveInt(s); !ok || n > MaxLimit {
				return errors.New("Limit must be between 1 and 100")
			}
			return nil
		})),
	)
}

func (r ListLogRequest) PageValue() int {
	if n, ok := helper.ParsePositiveInt(r.Page); ok {
		return int(n)
	}
	return DefaultPage
}

func (r ListLogRequest) LimitValue() int {
	if n, ok := helper.ParsePositiveInt(r.Limit); ok && n <= MaxLimit {
		return int(n)
	}
	return DefaultLimit
}
