package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-reflect"
	"github.com/google/uuid"
)

// RuleFunc builds a Rule for a field value. Custom rules registered with
// RegisterRule receive the field path, the field's value, and the
// parameters parsed from the tag.
type RuleFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]RuleFunc{
		// String rules
		"required": requiredRule,
		"min":      minRule,
		"max":      maxRule,
		"len":      lenRule,
		"between":  betweenRule,
		"email":    emailRule,
		"url":      urlRule,
		"alphanum": alphanumRule,
		"alpha":    alphaRule,
		"numeric":  numericRule,
		"uuid":     uuidRule,
		"in":       inRule,
		"not_in":   notInRule,
		"contains": containsRule,
		"prefix":   prefixRule,
		"suffix":   suffixRule,
		"regex":    regexRule,

		// Numeric rules
		"positive": positiveRule,
		"negative": negativeRule,
		"nonzero":  nonZeroRule,
	}
)

var (
	alphanumRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex    = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericRegex  = regexp.MustCompile(`^[0-9]+$`)
)

// RegisterRule adds a custom rule to the registry, replacing any built-in
// rule with the same name. Safe for concurrent use, though rules are
// typically registered during init.
func RegisterRule(name string, fn RuleFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates a struct based on its `validate` field tags and
// returns ValidationErrors listing every failed rule, or nil when the
// struct is valid. The argument must be a pointer to a struct.
//
// Rules are separated by semicolons, parameters by a colon and commas:
//
//	type User struct {
//		Email string `validate:"required;email"`
//		Name  string `validate:"required;between:2,50"`
//		Role  string `validate:"in:admin,member,guest"`
//	}
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return fmt.Errorf("validate: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validate: must pass a pointer to struct")
	}

	var errors ValidationErrors
	validateStructRecursive(rv, "", &errors)

	if errors.IsEmpty() {
		return nil
	}
	return errors
}

func validateStructRecursive(rv reflect.Value, prefix string, errors *ValidationErrors) {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		structField := rt.Field(i)
		tag := structField.Tag.Get("validate")

		fieldPath := structField.Name
		if prefix != "" {
			fieldPath = prefix + "." + structField.Name
		}

		if tag == "-" {
			continue
		}

		// Untagged nested structs are always walked
		if field.Kind() == reflect.Struct && tag == "" {
			validateStructRecursive(field, fieldPath, errors)
			continue
		}

		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				// Only "required" can fail on a nil pointer
				if tag != "" {
					validateField(fieldPath, field, tag, errors)
				}
			} else {
				elem := field.Elem()
				if elem.Kind() == reflect.Struct && tag == "" {
					validateStructRecursive(elem, fieldPath, errors)
				} else if tag != "" {
					validateField(fieldPath, elem, tag, errors)
				}
			}
			continue
		}

		if tag == "" {
			continue
		}

		validateField(fieldPath, field, tag, errors)
	}
}

func validateField(fieldPath string, field reflect.Value, tag string, errors *ValidationErrors) {
	rules := strings.Split(tag, ";")

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, ruleStr := range rules {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		parts := strings.SplitN(ruleStr, ":", 2)
		ruleName := strings.TrimSpace(parts[0])

		var params []string
		if len(parts) > 1 {
			paramStr := strings.TrimSpace(parts[1])
			if paramStr != "" {
				params = strings.Split(paramStr, ",")
				for i := range params {
					params[i] = strings.TrimSpace(params[i])
				}
			}
		}

		// Unknown rule names are ignored
		if ruleFn, ok := registry[ruleName]; ok {
			rule := ruleFn(fieldPath, field, params)
			if !rule.Check() {
				errors.Add(rule.Error)
			}
		}
	}
}

// Built-in rules

func requiredRule(field string, value reflect.Value, params []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Ptr, reflect.Interface:
				return !value.IsNil()
			default:
				// Zero numbers count as missing
				return !value.IsZero()
			}
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

func minRule(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}

	switch value.Kind() {
	case reflect.String:
		min, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool {
				return len(value.String()) >= min
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %d characters long", min),
			},
		}
	case reflect.Slice, reflect.Array:
		min, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool {
				return value.Len() >= min
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have at least %d items", min),
			},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		min, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool {
				return value.Int() >= min
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %d", min),
			},
		}
	case reflect.Float32, reflect.Float64:
		min, _ := strconv.ParseFloat(params[0], 64)
		return Rule{
			Check: func() bool {
				return value.Float() >= min
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %v", min),
			},
		}
	default:
		return Rule{Check: func() bool { return true }}
	}
}

func maxRule(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}

	switch value.Kind() {
	case reflect.String:
		max, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool {
				return len(value.String()) <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %d characters long", max),
			},
		}
	case reflect.Slice, reflect.Array:
		max, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool {
				return value.Len() <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have at most %d items", max),
			},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		max, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool {
				return value.Int() <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %d", max),
			},
		}
	case reflect.Float32, reflect.Float64:
		max, _ := strconv.ParseFloat(params[0], 64)
		return Rule{
			Check: func() bool {
				return value.Float() <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %v", max),
			},
		}
	default:
		return Rule{Check: func() bool { return true }}
	}
}

func lenRule(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}

	expectedLen, _ := strconv.Atoi(params[0])

	switch value.Kind() {
	case reflect.String:
		return Rule{
			Check: func() bool {
				return len(value.String()) == expectedLen
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be exactly %d characters long", expectedLen),
			},
		}
	case reflect.Slice, reflect.Array:
		return Rule{
			Check: func() bool {
				return value.Len() == expectedLen
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have exactly %d items", expectedLen),
			},
		}
	default:
		return Rule{Check: func() bool { return true }}
	}
}

func betweenRule(field string, value reflect.Value, params []string) Rule {
	if len(params) < 2 {
		return Rule{Check: func() bool { return true }}
	}

	switch value.Kind() {
	case reflect.String:
		min, _ := strconv.Atoi(params[0])
		max, _ := strconv.Atoi(params[1])
		return Rule{
			Check: func() bool {
				l := len(value.String())
				return l >= min && l <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be between %d and %d characters long", min, max),
			},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		min, _ := strconv.ParseInt(params[0], 10, 64)
		max, _ := strconv.ParseInt(params[1], 10, 64)
		return Rule{
			Check: func() bool {
				v := value.Int()
				return v >= min && v <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be between %d and %d", min, max),
			},
		}
	case reflect.Float32, reflect.Float64:
		min, _ := strconv.ParseFloat(params[0], 64)
		max, _ := strconv.ParseFloat(params[1], 64)
		return Rule{
			Check: func() bool {
				v := value.Float()
				return v >= min && v <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be between %v and %v", min, max),
			},
		}
	default:
		return Rule{Check: func() bool { return true }}
	}
}

func emailRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value.String())
			return err == nil && addr.Address == value.String()
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

func urlRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	return Rule{
		Check: func() bool {
			u, err := url.Parse(value.String())
			return err == nil && u.Scheme != "" && u.Host != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid URL",
		},
	}
}

func alphanumRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	return Rule{
		Check: func() bool {
			return alphanumRegex.MatchString(value.String())
		},
		Error: ValidationError{
			Field:   field,
			Message: "must contain only letters and numbers",
		},
	}
}

func alphaRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	return Rule{
		Check: func() bool {
			return alphaRegex.MatchString(value.String())
		},
		Error: ValidationError{
			Field:   field,
			Message: "must contain only letters",
		},
	}
}

func numericRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	return Rule{
		Check: func() bool {
			return numericRegex.MatchString(value.String())
		},
		Error: ValidationError{
			Field:   field,
			Message: "must contain only digits",
		},
	}
}

func uuidRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}

	version := 0 // Any version
	if len(params) > 0 {
		version, _ = strconv.Atoi(params[0])
	}

	return Rule{
		Check: func() bool {
			u, err := uuid.Parse(value.String())
			if err != nil {
				return false
			}
			return version == 0 || int(u.Version()) == version
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid UUID",
		},
	}
}

func inRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	return Rule{
		Check: func() bool {
			return slices.Contains(params, value.String())
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(params, ", ")),
		},
	}
}

func notInRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return Rule{Check: func() bool { return true }}
	}
	return Rule{
		Check: func() bool {
			return !slices.Contains(params, value.String())
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not be one of: %s", strings.Join(params, ", ")),
		},
	}
}

func containsRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}
	substring := params[0]
	return Rule{
		Check: func() bool {
			return strings.Contains(value.String(), substring)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must contain '%s'", substring),
		},
	}
}

func prefixRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}
	prefix := params[0]
	return Rule{
		Check: func() bool {
			return strings.HasPrefix(value.String(), prefix)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must start with '%s'", prefix),
		},
	}
}

func suffixRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}
	suffix := params[0]
	return Rule{
		Check: func() bool {
			return strings.HasSuffix(value.String(), suffix)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must end with '%s'", suffix),
		},
	}
}

func regexRule(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}
	pattern := params[0]
	description := "pattern"
	if len(params) > 1 {
		description = params[1]
	}
	return Rule{
		Check: func() bool {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false
			}
			return re.MatchString(value.String())
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must match %s", description),
		},
	}
}

func positiveRule(field string, value reflect.Value, params []string) Rule {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Rule{
			Check: func() bool {
				return value.Int() > 0
			},
			Error: ValidationError{
				Field:   field,
				Message: "must be positive",
			},
		}
	case reflect.Float32, reflect.Float64:
		return Rule{
			Check: func() bool {
				return value.Float() > 0
			},
			Error: ValidationError{
				Field:   field,
				Message: "must be positive",
			},
		}
	default:
		return Rule{Check: func() bool { return true }}
	}
}

func negativeRule(field string, value reflect.Value, params []string) Rule {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Rule{
			Check: func() bool {
				return value.Int() < 0
			},
			Error: ValidationError{
				Field:   field,
				Message: "must be negative",
			},
		}
	case reflect.Float32, reflect.Float64:
		return Rule{
			Check: func() bool {
				return value.Float() < 0
			},
			Error: ValidationError{
				Field:   field,
				Message: "must be negative",
			},
		}
	default:
		return Rule{Check: func() bool { return true }}
	}
}

func nonZeroRule(field string, value reflect.Value, params []string) Rule {
	return Rule{
		Check: func() bool {
			return !value.IsZero()
		},
		Error: ValidationError{
			Field:   field,
			Message: "must not be zero",
		},
	}
}
