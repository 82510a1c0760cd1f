// Package validation checks configuration values and reports failures as
// INVALID_CONFIG errors.
//
// # Struct Tag Validation
//
//	type EvaluatorConfig struct {
//	    Mode    string `mapstructure:"mode" validate:"oneof=sequential parallel"`
//	    Workers int    `mapstructure:"workers" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", cfg.Name).OneOf("environment", cfg.Environment, envs)
//	err := v.Validate()
package validation
