// Package validation provides struct tag validation for configuration and
// a small fluent validator for command arguments. Both report failures as
// *errors.AppError values listing every failing field.
//
// # Struct Tag Validation
//
//	type WordsConfig struct {
//	    Top    int `mapstructure:"top" validate:"gte=1"`
//	    MinLen int `mapstructure:"min_len" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Min("top", top, 1).OneOf("by", by, []string{"length", "initial"})
//	if err := v.Validate(); err != nil { ... }
package validation
