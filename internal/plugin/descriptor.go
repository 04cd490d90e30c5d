package plugin

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	workbencherrors "github.com/alexisbeaulieu97/workbench/pkg/errors"
)

var (
	descriptorValidatorOnce sync.Once
	descriptorValidator     *validator.Validate

	semverPattern   = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	pluginIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*(?:\.[a-z0-9][a-z0-9-]*)+$`)
)

// Descriptor identifies a plugin. IDs are reverse-domain strings such as
// "com.github.tools.code-counter".
type Descriptor struct {
	ID             string `validate:"required,plugin_id"`
	Name           string `validate:"required"`
	Version        string `validate:"required,semver"`
	Description    string
	Author         string
	Implementation string
	MinHostVersion string `validate:"omitempty,semver"`
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s v%s (%s)", d.Name, d.Version, d.ID)
}

// Validate ensures the descriptor is well-formed.
func (d Descriptor) Validate() error {
	if err := validatorInstance().Struct(d); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			ve := ves[0]
			field := strings.ToLower(ve.Field())
			msg := fmt.Sprintf("descriptor %s failed validation for tag '%s'", field, ve.Tag())
			return workbencherrors.NewValidationError(field, msg, err)
		}
		return workbencherrors.NewValidationError("descriptor", err.Error(), err)
	}
	return nil
}

// ValidID reports whether id is a well-formed plugin id.
func ValidID(id string) bool {
	return pluginIDPattern.MatchString(id)
}

func validatorInstance() *validator.Validate {
	descriptorValidatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("plugin_id", func(fl validator.FieldLevel) bool {
			return ValidID(fl.Field().String())
		})

		descriptorValidator = v
	})
	return descriptorValidator
}
