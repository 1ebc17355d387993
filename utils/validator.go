package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var weekdays = map[string]struct{}{
	"sunday": {}, "monday": {}, "tuesday": {}, "wednesday": {},
	"thursday": {}, "friday": {}, "saturday": {},
}

// RegisterCustomValidations registers custom validation rules on the Gin
// binding validator.
func RegisterCustomValidations(v *validator.Validate) {
	v.RegisterValidation("timeformat", validateTimeFormat)
	v.RegisterValidation("weekday", validateWeekday)
}

// validateTimeFormat checks if string is valid HH:MM format
func validateTimeFormat(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, ok := weekdays[strings.ToLower(fl.Field().String())]
	return ok
}

// TranslateValidationError renders binding failures as bilingual (EN, AR)
// field-message lists.
func TranslateValidationError(err error) (string, string) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error(), "المدخلات غير صالحة"
	}

	var en, ar []string
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			en = append(en, field+" is required")
			ar = append(ar, field+" مطلوب")
		case "email":
			en = append(en, "invalid email format")
			ar = append(ar, "صيغة البريد الإلكتروني غير صحيحة")
		case "min":
			en = append(en, field+" must be at least "+fe.Param()+" characters")
			ar = append(ar, field+" يجب أن يكون "+fe.Param()+" أحرف على الأقل")
		case "max":
			en = append(en, field+" must be at most "+fe.Param()+" characters")
			ar = append(ar, field+" يجب ألا يتجاوز "+fe.Param()+" حرفاً")
		case "len":
			en = append(en, field+" must be exactly "+fe.Param()+" characters")
			ar = append(ar, field+" يجب أن يكون بطول "+fe.Param()+" بالضبط")
		case "numeric":
			en = append(en, field+" must contain only numbers")
			ar = append(ar, field+" يجب أن يحتوي على أرقام فقط")
		case "timeformat":
			en = append(en, field+" must be in HH:MM format (e.g., 14:00)")
			ar = append(ar, field+" يجب أن يكون بصيغة HH:MM (مثال: 14:00)")
		case "weekday":
			en = append(en, field+" must be a weekday name (e.g., monday)")
			ar = append(ar, field+" يجب أن يكون اسم يوم من أيام الأسبوع")
		case "oneof":
			en = append(en, field+" must be one of: "+fe.Param())
			ar = append(ar, field+" يجب أن يكون أحد: "+fe.Param())
		default:
			en = append(en, field+" is invalid")
			ar = append(ar, field+" غير صالح")
		}
	}
	return strings.Join(en, ", "), strings.Join(ar, "، ")
}
