package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidInput indica requisição rejeitada antes de qualquer chamada externa
var ErrInvalidInput = errors.New("invalid input")

// Stage identifica qual colaborador externo falhou
type Stage string

const (
	StageLookup   Stage = "lookup"
	StageFast     Stage = "fast"
	StageThinking Stage = "thinking"
)

// inputError carrega a mensagem exibida ao cliente e casa com ErrInvalidInput
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Is(target error) bool { return target == ErrInvalidInput }

func invalidInput(msg string) error {
	return &inputError{msg: msg}
}

// DownstreamError encapsula qualquer falha de um colaborador externo.
// Error() devolve apenas a causa, que é o texto enviado ao cliente.
type DownstreamError struct {
	Stage Stage
	Err   error
}

func (e *DownstreamError) Error() string { return e.Err.Error() }

func (e *DownstreamError) Unwrap() error { return e.Err }

// String inclui o estágio, útil para logs
func (e *DownstreamError) String() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// StatusCode mapeia o erro do dispatcher para o status HTTP
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
