package classifying

import (
	"errors"
	"fmt"
)

// Erros específicos da classificação ABC
var (
	// Erros de validação
	ErrBusinessIDRequired  = errors.New("business id is required")
	ErrItemIDRequired      = errors.New("item id is required")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrCategoryNotAllowed  = errors.New("only promotion to category A is allowed")
	ErrCacheUnavailable    = errors.New("classification cache is not warm for this window")
	ErrItemNotFound        = errors.New("item not found for business")
	ErrInvalidCategoryFlag = errors.New("invalid category filter")

	// Erros de banco de dados
	ErrTransactionFailed = errors.New("classification transaction failed")
	ErrFetchHistory      = errors.New("error fetching classification history")
	ErrOverrideFailed    = errors.New("error writing manual category")

	// Erros de cache
	ErrCacheOperation = errors.New("cache operation error")
)

// ClassificationError é um erro com contexto adicional para a classificação
type ClassificationError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	ItemID  string // Item envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *ClassificationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

func NewClassificationError(err error, code string, details string) *ClassificationError {
	return &ClassificationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewClassificationErrorWithItem(err error, code string, itemID string, details string) *ClassificationError {
	return &ClassificationError{
		Err:     err,
		Code:    code,
		ItemID:  itemID,
		Details: details,
	}
}
