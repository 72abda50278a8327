package ingest

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBallsInOver = 5

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so failures read like the data, not the Go struct.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("overs", validateOvers); err != nil {
		panic(fmt.Sprintf("ingest: register overs validator: %v", err))
	}
	return v
}

// validateOvers accepts cricket overs notation: one decimal digit counting
// balls of an unfinished over, never more than five.
func validateOvers(fl validator.FieldLevel) bool {
	overs := fl.Field().Float()
	if overs < 0 {
		return false
	}
	tenths := overs * 10
	if math.Abs(tenths-math.Round(tenths)) > 1e-6 {
		return false
	}
	balls := int(math.Round(tenths)) % 10
	return balls <= maxBallsInOver
}

// check validates a decoded record and turns the first failure into a RowError.
func check(line int, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return &RowError{
			Line:   line,
			Column: fe.Field(),
			Err:    fmt.Errorf("failed %q rule on value %v", fe.Tag(), fe.Value()),
		}
	}
	return &RowError{Line: line, Err: err}
}
