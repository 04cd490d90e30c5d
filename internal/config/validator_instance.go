package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^v?\d+\.\d+\.\d+(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	implPattern   = regexp.MustCompile(`^[A-Za-z0-9._~/-]+\.[A-Z][A-Za-z0-9_]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		// package path, a dot, then an exported type name
		_ = v.RegisterValidation("plugin_impl", func(fl validator.FieldLevel) bool {
			return implPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("locale_tag", func(fl validator.FieldLevel) bool {
			raw := strings.ReplaceAll(strings.TrimSpace(fl.Field().String()), "_", "-")
			if raw == "" {
				return false
			}
			_, err := language.Parse(raw)
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// Validate checks a decoded configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return workbencherrors.NewValidationError("config", "configuration is empty", nil)
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	if cfg.HostVersion != "" && cfg.HostVersion != "dev" && !semverPattern.MatchString(cfg.HostVersion) {
		return workbencherrors.NewValidationError(
			"host_version",
			fmt.Sprintf("host_version %q must be semver or \"dev\"", cfg.HostVersion),
			nil,
		)
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return workbencherrors.NewValidationError(field, msg, err)
	}

	return workbencherrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
