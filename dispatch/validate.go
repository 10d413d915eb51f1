package dispatch

import (
	"encoding/json"
	"fmt"
	"strconv"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

// Validate checks an argument payload against a descriptor and returns the
// typed arguments. Validation is all-or-nothing: any failure leaves the
// store untouched because the dispatcher never runs a partially valid call.
//
// Rules: every required field present, declared types enforced (numeric
// strings are coerced to numbers where the field is numeric), defaults
// applied for absent optional fields, unknown fields rejected.
func Validate(desc contractx.OperationInfo, raw map[string]any) (map[string]any, error) {
	known := make(map[string]contractx.Field, len(desc.Fields))
	for _, f := range desc.Fields {
		known[f.Name] = f
	}

	for name := range raw {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: unknown field %q for %s", contractx.ErrInvalidArguments, name, desc.Name)
		}
	}

	typed := make(map[string]any, len(desc.Fields))
	for _, f := range desc.Fields {
		val, present := raw[f.Name]
		if !present || val == nil {
			if f.Required {
				return nil, fmt.Errorf("%w: missing required field %q for %s", contractx.ErrInvalidArguments, f.Name, desc.Name)
			}
			if f.Default != nil {
				typed[f.Name] = f.Default
			}
			continue
		}

		coerced, err := coerce(f, val)
		if err != nil {
			return nil, err
		}
		typed[f.Name] = coerced
	}

	return typed, nil
}

func coerce(f contractx.Field, val any) (any, error) {
	switch f.Type {
	case contractx.FieldString:
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q must be a string, got %T", contractx.ErrInvalidArguments, f.Name, val)
		}
		return s, nil
	case contractx.FieldNumber:
		switch v := val.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: field %q is not numeric: %v", contractx.ErrInvalidArguments, f.Name, err)
			}
			return n, nil
		case string:
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q must be a number, got %q", contractx.ErrInvalidArguments, f.Name, v)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("%w: field %q must be a number, got %T", contractx.ErrInvalidArguments, f.Name, val)
		}
	default:
		return nil, fmt.Errorf("%w: field %q has unsupported type %q", contractx.ErrInvalidArguments, f.Name, f.Type)
	}
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func intArg(args map[string]any, name string) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
