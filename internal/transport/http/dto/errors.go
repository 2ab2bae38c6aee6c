package dto

// BaseError универсальный корневой формат ошибки
// Error: человеко-читаемое сообщение, его показывает витрина и админка
// Code: машинно-ориентированный код (snake_case)
// Details: дополнительная строка (пояснение / fragment)
// Fields: для валидационных ошибок (имя поля + текст)
type BaseError struct {
	Error   string       `json:"error"`
	Code    string       `json:"code"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError отдельная ошибка по конкретному полю
// Tag: required / invalid
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

func NewValidationError(msg string, fields []FieldError) BaseError {
	return BaseError{Code: "validation_error", Error: msg, Fields: fields}
}
func NewConflictError(msg string) BaseError {
	return BaseError{Code: "conflict", Error: msg}
}
func NewUnauthorizedError(msg string) BaseError {
	return BaseError{Code: "unauthorized", Error: msg}
}
func NewForbiddenError(msg string) BaseError {
	return BaseError{Code: "forbidden", Error: msg}
}
func NewNotFoundError(msg string) BaseError {
	return BaseError{Code: "not_found", Error: msg}
}
func NewRateLimitedError(msg string) BaseError {
	return BaseError{Code: "rate_limited", Error: msg}
}

// NewInternalError: сообщение хранилища отдаётся как есть, оператору нужна первопричина.
func NewInternalError(msg string) BaseError {
	return BaseError{Code: "internal_error", Error: msg}
}
