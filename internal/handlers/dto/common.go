package dto

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/moogar0880/problems"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-backoffice/internal/domain/errors"
)

// BaseURLContextKey guarda a base das URIs de problema
const BaseURLContextKey = "base_url"

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	*problems.Problem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) ErrorResponse {
	baseURL := c.GetString(BaseURLContextKey)
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewDetailedProblem(status, T(c, detailKey, params...))
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey, params...)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{Problem: problem}
}

// Abort escreve o problema com o media type correto e interrompe a cadeia
func Abort(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// ValidationErrorResponseI18n cria uma resposta de erro de validação
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeValidation,
		"error.validation.title",
		"error.validation.detail",
		http.StatusBadRequest,
	)
	response.Errors = validationErrors
	return response
}

// BindingErrorResponseI18n traduz erros do binding do gin
func BindingErrorResponseI18n(c *gin.Context, err error) ErrorResponse {
	return ValidationErrorResponseI18n(c, ValidationErrorsFrom(err))
}

// ValidationErrorsFrom converte validator.ValidationErrors em erros de campo
func ValidationErrorsFrom(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	result := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		result = append(result, ValidationError{
			Field:   toSnakeCase(fe.Field()),
			Message: fieldMessage(fe),
			Tag:     fe.Tag(),
			Value:   fe.Param(),
		})
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must have at least " + fe.Param() + " characters"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404
func NotFoundErrorResponseI18n(c *gin.Context, resource string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeNotFound,
		"error.not_found.title",
		"error.not_found.detail",
		http.StatusNotFound,
		map[string]interface{}{"Resource": resource},
	)
}

// ConflictErrorResponseI18n cria uma resposta de erro 409
func ConflictErrorResponseI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeConflict,
		"error.conflict.title",
		detailKey,
		http.StatusConflict,
		params...,
	)
}

// BadRequestErrorResponseI18n cria uma resposta de erro 400 com detalhe específico
func BadRequestErrorResponseI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeBadRequest,
		"error.bad_request.title",
		detailKey,
		http.StatusBadRequest,
		params...,
	)
}

// UnauthorizedErrorResponseI18n cria uma resposta de erro 401
func UnauthorizedErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeUnauthorized,
		"error.unauthorized.title",
		"error.unauthorized.detail",
		http.StatusUnauthorized,
	)
}

// ForbiddenErrorResponseI18n cria uma resposta de erro 403
func ForbiddenErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeForbidden,
		"error.forbidden.title",
		"error.forbidden.detail",
		http.StatusForbidden,
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		http.StatusInternalServerError,
	)
}

// ErrorResponseFor mapeia erros de domínio para respostas RFC 7807
func ErrorResponseFor(c *gin.Context, err error) ErrorResponse {
	params := domainerrors.ParamsOf(err)

	switch {
	case errors.Is(err, domainerrors.ErrUserNotFound):
		return NotFoundErrorResponseI18n(c, "User")
	case errors.Is(err, domainerrors.ErrPermissionNotFound):
		return NotFoundErrorResponseI18n(c, "Permission")
	case errors.Is(err, domainerrors.ErrPermissionGroupNotFound):
		return NewErrorResponseI18n(
			c,
			domainerrors.ProblemTypeNotFound,
			"error.not_found.title",
			domainerrors.ErrPermissionGroupNotFound.Error(),
			http.StatusNotFound,
			params,
		)
	case errors.Is(err, domainerrors.ErrEmailAlreadyExists):
		return ConflictErrorResponseI18n(c, domainerrors.ErrEmailAlreadyExists.Error())
	case errors.Is(err, domainerrors.ErrPermissionAlreadyExists):
		return ConflictErrorResponseI18n(c, domainerrors.ErrPermissionAlreadyExists.Error(), params)
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		response := UnauthorizedErrorResponseI18n(c)
		response.Detail = T(c, domainerrors.ErrInvalidCredentials.Error())
		return response
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return UnauthorizedErrorResponseI18n(c)
	case errors.Is(err, domainerrors.ErrForbidden):
		return ForbiddenErrorResponseI18n(c)
	case errors.Is(err, domainerrors.ErrInvalidEmail):
		return BadRequestErrorResponseI18n(c, domainerrors.ErrInvalidEmail.Error())
	case errors.Is(err, domainerrors.ErrInvalidRole):
		return BadRequestErrorResponseI18n(c, domainerrors.ErrInvalidRole.Error())
	case errors.Is(err, domainerrors.ErrInvalidGrant), errors.Is(err, entities.ErrInvalidGrant):
		return BadRequestErrorResponseI18n(c, domainerrors.ErrInvalidGrant.Error())
	case errors.Is(err, domainerrors.ErrInvalidPermissionName), errors.Is(err, entities.ErrInvalidPermissionData):
		return BadRequestErrorResponseI18n(c, domainerrors.ErrInvalidPermissionName.Error())
	case errors.Is(err, domainerrors.ErrInvalidUserData), errors.Is(err, entities.ErrInvalidUserData):
		return BadRequestErrorResponseI18n(c, domainerrors.ErrInvalidUserData.Error())
	default:
		return InternalErrorResponseI18n(c)
	}
}
