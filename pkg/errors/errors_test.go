package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "quantidade inválida")
	if err.Code() != CodeValidation {
		t.Fatalf("code = %s, want %s", err.Code(), CodeValidation)
	}
	if err.Message() != "quantidade inválida" {
		t.Fatalf("message = %q", err.Message())
	}
	if err.Error() != "VALIDATION_ERROR: quantidade inválida" {
		t.Fatalf("error string = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeDependency, cause, "falha ao consultar itens")
	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause in chain")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("code = %s", err.Code())
	}
}

func TestWrapNilCause(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, nil, "sem causa")
	if err.Unwrap() != nil {
		t.Fatalf("expected nil cause")
	}
}

func TestAs(t *testing.T) {
	t.Parallel()

	base := New(CodeNotFound, "comanda não encontrada")
	wrapped := fmt.Errorf("buscar comanda: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatalf("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("code = %s", typed.Code())
	}

	if As(fmt.Errorf("plain")) != nil {
		t.Fatalf("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	if New(CodeValidation, "").Retryable() {
		t.Fatalf("validation should not be retryable")
	}
	if !New(CodeDependency, "").Retryable() {
		t.Fatalf("dependency should be retryable")
	}
	if !New(CodeRateLimit, "").Retryable() {
		t.Fatalf("rate limit should be retryable")
	}
}

func TestUserMessageFallsBackToCode(t *testing.T) {
	t.Parallel()

	err := New(CodeUnauthorized, "")
	if err.UserMessage() != "sessão expirada, faça login novamente" {
		t.Fatalf("user message = %q", err.UserMessage())
	}

	withMessage := New(CodeUnauthorized, "credenciais incorretas")
	if withMessage.UserMessage() != "credenciais incorretas" {
		t.Fatalf("user message = %q", withMessage.UserMessage())
	}
}

func TestMetadataForUnknownCode(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("NOT_A_CODE"))
	if meta != metadataByCode[CodeInternal] {
		t.Fatalf("unknown code should map to internal metadata")
	}
}
