package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/levomgrup/sales-api/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return utils.ValidatePhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// fieldMessages is keyed by "<json field>.<failed tag>".
var fieldMessages = map[string]string{
	"storeName.required":     "Mağaza adı zorunludur",
	"phone.required":         "Telefon numarası zorunludur",
	"phone.phone":            "Geçersiz telefon numarası formatı",
	"address.required":       "Adres zorunludur",
	"city.required":          "İl zorunludur",
	"district.required":      "İlçe zorunludur",
	"routineName.required":   "Rutin ismi zorunludur",
	"initialPoints.required": "Başlangıç puanı zorunludur",
	"initialPoints.gte":      "Başlangıç puanı 0'dan küçük olamaz",
	"visitFrequency.gte":     "Ziyaret sıklığı en az 1 gün olmalıdır",

	"name.required":  "Ürün adı zorunludur",
	"price.required": "Ürün fiyatı zorunludur",
	"price.gte":      "Fiyat 0'dan küçük olamaz",
	"stock.required": "Stok miktarı zorunludur",
	"stock.gte":      "Stok 0'dan küçük olamaz",

	"customerId.required": "Müşteri ID'si zorunludur",
	"visitDate.required":  "Ziyaret tarihi zorunludur",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf(MsgInvalidField, fe.Field())
}

// validateStruct runs the struct tags of s and returns a validation *Error
// with one Turkish message per failing field, or nil.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return internal(MsgServerError, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return validationFailed(messages)
}
