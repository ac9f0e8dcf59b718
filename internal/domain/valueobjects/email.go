package valueobjects

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
)

var emailValidator = validator.New()

// Email é um value object que garante que emails sejam sempre válidos
type Email struct {
	value string
}

// NewEmail cria um novo Email validado (minúsculo, sem espaços)
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if len(email) > 254 {
		return Email{}, ErrInvalidEmail
	}
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: email}, nil
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// IsZero indica se o email não foi inicializado
func (e Email) IsZero() bool {
	return e.value == ""
}
