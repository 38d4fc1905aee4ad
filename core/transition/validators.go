package transition

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// InitValidators registers the transition payload rules.
func InitValidators(validate *validator.Validate, _ ut.Translator) {
	validate.RegisterStructValidation(updateStructValidation, Update{})
}

// updateStructValidation requires a target class on every non-transfer update.
func updateStructValidation(sl validator.StructLevel) {
	upd := sl.Current().Interface().(Update)
	if upd.Action != KindTransfer && upd.TargetClassID == "" {
		sl.ReportError(upd.TargetClassID, "targetClassId", "TargetClassID", "required", "")
	}
}
