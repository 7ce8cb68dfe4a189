package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/SscSPs/mini_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// requestValidator checks the struct tags on request DTOs. Money is validated
// through its float value so numeric tags such as gte apply to it.
var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(dto.Money); ok {
			f, _ := m.Float64()
			return f
		}
		return nil
	}, dto.Money{})
	return v
}

// bindStrictJSON decodes the request body into out only when the body is a JSON
// object whose keys are exactly fields, none of them null. The decoded value is
// then checked against its validate tags.
func bindStrictJSON(c *gin.Context, fields []string, out any) error {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("request body is not a JSON object: %w", err)
	}
	if len(raw) != len(fields) {
		return fmt.Errorf("expected exactly %d fields, got %d", len(fields), len(raw))
	}
	for _, field := range fields {
		value, ok := raw[field]
		if !ok {
			return fmt.Errorf("missing field %q", field)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("field %q must not be null", field)
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid field value: %w", err)
	}
	if err := requestValidator.Struct(out); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
