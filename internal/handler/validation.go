package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	registerOnce   sync.Once
	errBadDateForm = errors.New("must be YYYY-MM-DD or RFC3339")
)

// RegisterValidators installs the custom rules on gin's validator engine.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterCustomTypeFunc(dateValueTime, dateValue{})
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func dateValueTime(field reflect.Value) any {
	if d, ok := field.Interface().(dateValue); ok {
		if d.IsZero() {
			return nil
		}
		return d.Time
	}
	return nil
}

// dateValue accepts either a calendar date or an RFC3339 timestamp. A bare
// date parses as midnight UTC until At places it in a calendar location.
type dateValue struct {
	time.Time
	dateOnly bool
}

func (d *dateValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errBadDateForm
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = dateValue{}
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		*d = dateValue{Time: t, dateOnly: true}
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return errBadDateForm
	}
	*d = dateValue{Time: t}
	return nil
}

// Day returns midnight UTC of the calendar date as written by the client.
func (d dateValue) Day() time.Time {
	y, m, day := d.Time.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// At returns a bare date as midnight in loc, in UTC. Timestamps keep their
// instant.
func (d dateValue) At(loc *time.Location) time.Time {
	if !d.dateOnly || loc == nil {
		return d.Time.UTC()
	}
	y, m, day := d.Time.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc).UTC()
}

func (d dateValue) UTC() time.Time {
	return d.Time.UTC()
}

func timePtr(d *dateValue) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.UTC()
	return &t
}

func describeBindError(err error) []fieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fieldPath(fe), Message: ruleMessage(fe)})
		}
		return out
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []fieldError{{Field: field, Message: "must be " + typeErr.Type.String()}}
	}
	if errors.Is(err, errBadDateForm) {
		return []fieldError{{Field: "date", Message: errBadDateForm.Error()}}
	}
	return []fieldError{{Field: "body", Message: "invalid JSON body"}}
}

// fieldPath drops the request struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "slug":
		return "must be lowercase letters, digits and single hyphens"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must be at most %s long", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must be at least %s long", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s long", fe.Param())
	default:
		return "failed " + fe.Tag() + " check"
	}
}
