package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// TransactionInput is the boundary schema for a transaction submitted by a client
// or read from a legacy export. Pointer fields distinguish "missing" from "zero".
type TransactionInput struct {
	Descricao *string      `json:"descricao" yaml:"descricao" validate:"required,notblank"`
	Valor     *json.Number `json:"valor" yaml:"valor" validate:"required,decimal"`
	Data      *string      `json:"data" yaml:"data" validate:"required,datetime=2006-01-02"`
}

// ValidationError lists every problem found in a TransactionInput.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid transaction: " + strings.Join(e.Problems, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	if err := v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		amount, err := decimal.NewFromString(fl.Field().String())
		return err == nil && ValidAmount(amount)
	}); err != nil {
		panic(fmt.Sprintf("register decimal validation: %v", err))
	}
	return v
}

// Parse validates the input and builds an unsaved Transaction from it.
func (in TransactionInput) Parse() (Transaction, error) {
	if err := validate.Struct(in); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return Transaction{}, err
		}
		return Transaction{}, &ValidationError{Problems: describe(validationErrors)}
	}

	// Both parses are guaranteed by the validation tags above.
	amount, err := decimal.NewFromString(in.Valor.String())
	if err != nil {
		return Transaction{}, &ValidationError{Problems: []string{"valor: " + err.Error()}}
	}
	date, err := ParseDate(*in.Data)
	if err != nil {
		return Transaction{}, &ValidationError{Problems: []string{"data: " + err.Error()}}
	}

	return Transaction{
		Description: *in.Descricao,
		Amount:      amount,
		Date:        date,
	}, nil
}

func describe(errs validator.ValidationErrors) []string {
	problems := make([]string, 0, len(errs))
	for _, e := range errs {
		field := fieldName(e.Field())
		switch e.Tag() {
		case "required":
			problems = append(problems, "campo "+field+" é obrigatório")
		case "notblank":
			problems = append(problems, "campo "+field+" não pode ser vazio")
		case "decimal":
			problems = append(problems, "campo "+field+" deve ser um número finito")
		case "datetime":
			problems = append(problems, "campo "+field+" deve estar no formato AAAA-MM-DD")
		default:
			problems = append(problems, "campo "+field+" inválido")
		}
	}
	return problems
}

// fieldName maps struct field names to their wire names.
func fieldName(structField string) string {
	return strings.ToLower(structField)
}
