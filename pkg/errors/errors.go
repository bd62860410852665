package errors

import (
	stdErrors "errors"
	"fmt"
)

// Code classifies every failure the client can surface: local validation,
// auth problems reported by the backend, and transport-level trouble.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeRateLimit    Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code should be handled by the UI layer.
type Metadata struct {
	Retryable   bool
	UserMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:   false,
		UserMessage: "dados inválidos",
	},
	CodeUnauthorized: {
		Retryable:   false,
		UserMessage: "sessão expirada, faça login novamente",
	},
	CodeForbidden: {
		Retryable:   false,
		UserMessage: "acesso negado",
	},
	CodeNotFound: {
		Retryable:   false,
		UserMessage: "registro não encontrado",
	},
	CodeConflict: {
		Retryable:   false,
		UserMessage: "conflito com o estado atual",
	},
	CodeRateLimit: {
		Retryable:   true,
		UserMessage: "muitas requisições, aguarde um instante",
	},
	CodeInternal: {
		Retryable:   true,
		UserMessage: "erro interno",
	},
	CodeDependency: {
		Retryable:   true,
		UserMessage: "servidor indisponível, tente novamente",
	},
}

// MetadataFor resolves handling metadata, defaulting to internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is the typed error carried through the client. The message is
// what gets shown to the user; the cause keeps the transport detail for
// the logs.
type Error struct {
	code    Code
	message string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// UserMessage returns the message suited for the status bar: the typed
// message when present, otherwise the generic text for the code.
func (e *Error) UserMessage() string {
	if e == nil {
		return MetadataFor(CodeInternal).UserMessage
	}
	if e.message != "" {
		return e.message
	}
	return MetadataFor(e.code).UserMessage
}

// Retryable reports whether the UI should offer a retry.
func (e *Error) Retryable() bool {
	return MetadataFor(e.Code()).Retryable
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts a typed *Error from an error chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
