// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory indica um valor fora do conjunto {A, B, C}
var ErrInvalidCategory = errors.New("categoria ABC inválida")

// Category é a classificação ABC de um item de estoque
type Category string

const (
	CategoryA Category = "A"
	CategoryB Category = "B"
	CategoryC Category = "C"
)

// Categories lista as categorias na ordem de prioridade
var Categories = []Category{CategoryA, CategoryB, CategoryC}

// ParseCategory valida um valor vindo da API ou do banco
func ParseCategory(value string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(value))) {
	case CategoryA:
		return CategoryA, nil
	case CategoryB:
		return CategoryB, nil
	case CategoryC:
		return CategoryC, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, value)
}

func (c Category) Valid() bool {
	return c == CategoryA || c == CategoryB || c == CategoryC
}

func (c Category) String() string {
	return string(c)
}

// Scan implementa sql.Scanner, rejeitando valores desconhecidos persistidos
func (c *Category) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: valor nulo", ErrInvalidCategory)
	default:
		return fmt.Errorf("%w: tipo %T", ErrInvalidCategory, src)
	}

	parsed, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalText garante a validação também na decodificação de JSON
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CategoryMap associa item_id à categoria persistida
type CategoryMap map[string]Category

// PersistedCategories reúne as categorias do período exato e as mais recentes de qualquer período
type PersistedCategories struct {
	Exact  CategoryMap
	Latest CategoryMap
}

// Has indica se o item possui alguma categoria persistida (exata ou fallback)
func (p PersistedCategories) Has(itemID string) bool {
	if _, ok := p.Exact[itemID]; ok {
		return true
	}
	_, ok := p.Latest[itemID]
	return ok
}
