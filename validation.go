package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"lg/fit-health-api/internal/healthmetrics"
)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

// customValidations are the tags our request structs use on top of the
// built-in ones.
var customValidations = map[string]validator.Func{
	"mealname": func(fl validator.FieldLevel) bool {
		_, ok := healthmetrics.ParseMealName(fl.Field().String())
		return ok
	},
	"progresssets": func(fl validator.FieldLevel) bool {
		return healthmetrics.ValidSets(fl.Field().String())
	},
	"progressreps": func(fl validator.FieldLevel) bool {
		return healthmetrics.ValidReps(fl.Field().String())
	},
}

// registerValidators hooks our custom tags into gin's validator and makes
// error messages use JSON field names. Safe to call more than once; every
// call returns the outcome of the first.
func registerValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		registerValidatorsErr = registerCustomValidations(v)
	})
	return registerValidatorsErr
}

func registerCustomValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	for tag, fn := range customValidations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}

// bindErrorMessage turns a ShouldBindJSON error into a short client message.
// Validation failures name the offending field; anything else is a malformed body.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldErrorMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "mealname":
		return field + " must be one of: Breakfast, Lunch, Dinner, Snacks"
	case "progresssets":
		return field + " must be a number like 3 or 3,5"
	case "progressreps":
		return field + ` must not contain "@"`
	case "datetime":
		return fmt.Sprintf("invalid %s, expected YYYY-MM-DD", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt", "gte", "lt", "lte", "max", "min":
		return fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param())
	}
	return field + " is invalid"
}
