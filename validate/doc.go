// Package validate provides struct validation driven by field tags, with
// detailed per-field error reporting and support for custom rules.
//
// Validation never stops at the first failure. Every rule on every field
// runs, and the returned ValidationErrors holds the complete set of
// problems, which makes it suitable for form and command validation where
// the caller wants to show everything that is wrong at once.
//
// # Tag Grammar
//
// Rules are declared in the `validate` struct tag. Rules are separated by
// semicolons, a rule's parameters follow a colon and are separated by
// commas:
//
//	type User struct {
//		Email    string `validate:"required;email"`
//		Username string `validate:"required;min:3;max:20;alphanum"`
//		Age      int    `validate:"required;between:18,150"`
//		Role     string `validate:"in:admin,member,guest"`
//		Internal string `validate:"-"`
//	}
//
// A tag of "-" skips the field entirely. Untagged fields are ignored,
// except untagged nested structs, which are always walked so their tagged
// fields validate under a dot-separated path like "Address.City".
//
// # Built-in Rules
//
// String rules:
//
//	required           non-empty after trimming whitespace
//	min:N, max:N       length bounds (also items for slices, value for numbers)
//	len:N              exact length
//	between:A,B        inclusive range of length or value
//	email              RFC 5322 address
//	url                absolute URL with scheme and host
//	alphanum, alpha    ASCII letters and digits / letters only
//	numeric            ASCII digits only
//	uuid, uuid:N       any UUID, or a specific version
//	in:a,b / not_in:a,b membership checks
//	contains:S, prefix:S, suffix:S
//	regex:P            match against pattern P
//
// Numeric rules:
//
//	positive, negative, nonzero
//
// # Usage
//
//	if err := validate.ValidateStruct(&user); err != nil {
//		for _, e := range validate.ExtractValidationErrors(err) {
//			fmt.Printf("%s: %s\n", e.Field, e.Message)
//		}
//	}
//
// # Custom Rules
//
// Register custom rules once at startup; they become available to every
// ValidateStruct call:
//
//	validate.RegisterRule("even", func(field string, value reflect.Value, params []string) validate.Rule {
//		return validate.Rule{
//			Check: func() bool {
//				return value.Kind() == reflect.Int && value.Int()%2 == 0
//			},
//			Error: validate.ValidationError{
//				Field:   field,
//				Message: "must be an even number",
//			},
//		}
//	})
package validate
