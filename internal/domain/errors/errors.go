package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções estão em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound            = errors.New("error.user_not_found")
	ErrEmailAlreadyExists      = errors.New("error.email_already_exists")
	ErrInvalidCredentials      = errors.New("error.invalid_credentials")
	ErrUnauthorized            = errors.New("error.unauthorized")
	ErrForbidden               = errors.New("error.forbidden")
	ErrPermissionNotFound      = errors.New("error.permission_not_found")
	ErrPermissionAlreadyExists = errors.New("error.permission_already_exists")
	ErrPermissionGroupNotFound = errors.New("error.permission_group_not_found")
)

// Domain errors
var (
	ErrInvalidEmail          = errors.New("error.invalid_email")
	ErrInvalidPermissionName = errors.New("error.invalid_permission_name")
	ErrInvalidRole           = errors.New("error.invalid_role")
	ErrInvalidGrant          = errors.New("error.invalid_grant")
	ErrInvalidUserData       = errors.New("error.invalid_user_data")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base vem de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Params  map[string]interface{}
	Err     error
}

// Wrap associa um erro de negócio a uma causa técnica
func Wrap(err error, message string, cause error) *DomainError {
	return &DomainError{Message: message, Err: errors.Join(err, cause)}
}

// WithParams anexa parâmetros de interpolação i18n a um erro de negócio
func WithParams(err error, params map[string]interface{}) *DomainError {
	return &DomainError{Message: err.Error(), Params: params, Err: err}
}

// ParamsOf retorna os parâmetros i18n do primeiro DomainError da cadeia
func ParamsOf(err error) map[string]interface{} {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Params
	}
	return nil
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
