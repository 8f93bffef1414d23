package router

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
)

// ParamParser fills typed struct fields from route captures.
type ParamParser struct{}

// NewParamParser creates a new parameter parser.
func NewParamParser() *ParamParser {
	return &ParamParser{}
}

// DecodeParams fills target from the captures of the request's matched
// route. See ParamParser.Parse.
func DecodeParams(r *http.Request, target any) error {
	m := FromContext(r.Context())
	if m == nil {
		return nil
	}
	return NewParamParser().Parse(m.Params, target)
}

// Parse populates a struct with values from params.
// The target must be a pointer to a struct with `param` tags. Absent
// captures leave their field untouched.
//
//	type PostParams struct {
//	    Year  int      `param:"year"`
//	    Slug  string   `param:"slug"`
//	    Parts []string `param:"rest"`
//	}
func (p *ParamParser) Parse(params pathpattern.Params, target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer, got %s", v.Kind())
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		paramName := field.Tag.Get("param")
		if paramName == "" {
			continue
		}

		value, ok := params[paramName]
		if !ok {
			continue
		}

		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		if err := p.setField(fieldValue, value); err != nil {
			return fmt.Errorf("parsing param %q: %w", paramName, err)
		}
	}

	return nil
}

// setField sets a field from a capture value (string or []string).
func (p *ParamParser) setField(field reflect.Value, value any) error {
	if field.Kind() == reflect.Slice {
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type: %s", field.Type().Elem().Kind())
		}
		var parts []string
		switch v := value.(type) {
		case []string:
			parts = append(parts, v...)
		case string:
			if v != "" {
				parts = []string{v}
			}
		}
		field.Set(reflect.ValueOf(parts))
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []string:
		s = strings.Join(v, "/")
	default:
		return fmt.Errorf("unsupported capture value %T", value)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(s)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %s", s)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", s)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float: %s", s)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", s)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}

	return nil
}
