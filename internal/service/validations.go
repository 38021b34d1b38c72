package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/healthlog/internal/error_values"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

type nowContextKey struct{}

// WithNow sets the reference time the not_future rule compares against.
func WithNow(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, nowContextKey{}, now)
}

func nowFromContext(ctx context.Context) time.Time {
	if now, ok := ctx.Value(nowContextKey{}).(time.Time); ok {
		return now
	}
	return time.Now()
}

func InitValidator() {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		validate.RegisterValidationCtx("not_future", func(ctx context.Context, fl validator.FieldLevel) bool {
			value, ok := fl.Field().Interface().(time.Time)
			if !ok {
				return false
			}
			return !value.After(nowFromContext(ctx))
		})
	})
}

// validateStruct reports every violated rule of s as one ValidationError.
func validateStruct(ctx context.Context, s any) error {
	InitValidator()
	err := validate.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errorvalues.NewValidationError("body", err.Error())
	}
	verr := &errorvalues.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "not_future":
		return "must not be in the future"
	case "min", "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be between 1 and 7"
	default:
		return "is invalid"
	}
}
