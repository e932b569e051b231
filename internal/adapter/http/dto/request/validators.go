package request

import (
	"strings"

	"prefacturation_service/internal/domain/entities"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom tags used by the request payloads to
// gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return err
	}
	return v.RegisterValidation("block_type", blockType)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// blockType accepts an empty value so it can be combined with required_without.
func blockType(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "" || entities.BlockType(v).IsValid()
}
