package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/expense-tracker/backend/internal/types"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/expense-tracker/backend/internal/validation"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BindData binds the JSON object in the request body to the struct data
// points to.
//
// Every field is decoded on its own. Values that cannot be decoded are
// returned as a *validation.Error listing each of them, all other fields are
// still set. A body that is not a JSON object is logged and reported as
// ErrInvalidBody.
func BindData(c *gin.Context, data any) error {
	body, err := c.GetRawData()
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return ErrRequestBodyEmpty
	}

	var raw map[string]json.RawMessage
	err = json.Unmarshal(body, &raw)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	fields := decodeFields(reflect.ValueOf(data).Elem(), raw)
	if len(fields) > 0 {
		return &validation.Error{Fields: fields}
	}

	return nil
}

// decodeFields sets the fields of the struct v from raw, keyed like
// encoding/json does. Embedded structs are decoded into recursively.
func decodeFields(v reflect.Value, raw map[string]json.RawMessage) (failed []validation.FieldError) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]

		if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct {
			failed = append(failed, decodeFields(v.Field(i), raw)...)
			continue
		}

		if !f.IsExported() || tag == "-" {
			continue
		}

		name := tag
		if name == "" {
			name = f.Name
		}

		value, ok := lookup(raw, name)
		if !ok {
			continue
		}

		err := json.Unmarshal(value, v.Field(i).Addr().Interface())
		if err != nil {
			failed = append(failed, validation.FieldError{
				Field:   name,
				Message: decodeMessage(name, f.Type, err),
			})
		}
	}

	return failed
}

// lookup finds the value for name, preferring an exact key match over a
// case-insensitive one.
func lookup(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if value, ok := raw[name]; ok {
		return value, true
	}

	for key, value := range raw {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}

	return nil, false
}

func decodeMessage(name string, t reflect.Type, err error) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t {
	case reflect.TypeOf(decimal.Decimal{}):
		return fmt.Sprintf("%s must be a valid decimal number", name)
	case reflect.TypeOf(types.Date{}):
		return fmt.Sprintf("%s must be a valid date in the YYYY-MM-DD format", name)
	case reflect.TypeOf(ez_uuid.UUID{}), reflect.TypeOf(uuid.UUID{}):
		return fmt.Sprintf("%s must be a valid UUID", name)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch t.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be a string", name)
		case reflect.Bool:
			return fmt.Sprintf("%s must be true or false", name)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprintf("%s must be a number", name)
		}
	}

	return fmt.Sprintf("%s is not valid", name)
}
