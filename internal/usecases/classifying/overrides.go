package classifying

//go:generate mockgen -source=overrides.go -destination=mocks/overrides_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/cache"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/database/postgres"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/repository"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/internal/streaming"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
	"github.com/vfg2006/restaurant-inventory-api/pkg/clock"
	"github.com/vfg2006/restaurant-inventory-api/pkg/metrics"
)

type OverrideService interface {
	SetManualCategory(ctx context.Context, businessID, itemID, newCategory string) (*domain.ClassificationResult, error)
	Promote(ctx context.Context, businessID, itemID string) (*domain.ClassificationResult, error)
	Reset(ctx context.Context, businessID, itemID string) (*ResetResult, error)
}

type ResetResult struct {
	ItemID      string `json:"item_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Deleted     bool   `json:"deleted"`
}

// OverrideManager grava promoções manuais sempre na janela móvel padrão.
// Toda escrita invalida o cache do negócio e publica a invalidação.
type OverrideManager struct {
	db              postgres.Transactor
	facts           repository.ConsumptionFactRepository
	classifications repository.ClassificationRepository
	aggregator      *Aggregator
	cache           cache.Store
	notifier        streaming.OutboundNotifier
	clock           clock.Clock
	windowDays      int
}

func NewOverrideManager(
	db postgres.Transactor,
	facts repository.ConsumptionFactRepository,
	classifications repository.ClassificationRepository,
	cacheStore cache.Store,
	notifier streaming.OutboundNotifier,
	clk clock.Clock,
	windowDays int,
) *OverrideManager {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &OverrideManager{
		db:              db,
		facts:           facts,
		classifications: classifications,
		aggregator:      NewAggregator(facts, clk),
		cache:           cacheStore,
		notifier:        notifier,
		clock:           clk,
		windowDays:      windowDays,
	}
}

// SetManualCategory aceita apenas o valor exato 'A', sem normalizar caixa ou espaços
func (m *OverrideManager) SetManualCategory(ctx context.Context, businessID, itemID, newCategory string) (*domain.ClassificationResult, error) {
	category := domain.Category(newCategory)
	if !category.Valid() {
		err := fmt.Errorf("%w: %q", domain.ErrInvalidCategory, newCategory)
		return nil, NewClassificationErrorWithItem(err, apiErrors.ErrInvalidCategory, itemID, "Categoria inválida: use 'A'")
	}
	if category != domain.CategoryA {
		return nil, NewClassificationErrorWithItem(ErrCategoryNotAllowed, apiErrors.ErrInvalidCategory, itemID, "Somente a promoção para a categoria 'A' é permitida")
	}

	return m.Promote(ctx, businessID, itemID)
}

func (m *OverrideManager) Promote(ctx context.Context, businessID, itemID string) (*domain.ClassificationResult, error) {
	if err := validateTarget(businessID, itemID); err != nil {
		return nil, err
	}

	window := domain.TrailingWindow(m.clock.Now(), m.windowDays)
	result := &domain.ClassificationResult{
		BusinessID:  businessID,
		ItemID:      itemID,
		PeriodStart: window.Start,
		PeriodEnd:   window.End,
		Category:    domain.CategoryA,
		CreatedAt:   m.clock.Now(),
	}

	err := m.db.RunInTransaction(ctx, func(q postgres.Queryer) error {
		if err := m.ensureItem(ctx, q, businessID, itemID); err != nil {
			return err
		}

		// snapshot do valor de consumo apenas deste item
		rows, err := m.aggregator.Aggregate(ctx, q, domain.FactFilter{BusinessID: businessID, ItemID: &itemID}, window, domain.PersistedCategories{})
		if err != nil {
			return err
		}
		for _, row := range rows {
			if row.ItemID == itemID {
				result.ItemName = row.ItemName
				result.TotalConsumptionValue = row.ConsumptionValue
			}
		}

		return m.classifications.Upsert(ctx, q, result)
	})
	if err != nil {
		return nil, m.writeError(err, businessID, itemID)
	}

	category := domain.CategoryA
	m.afterWrite(ctx, businessID, itemID, &category)

	logrus.WithFields(logrus.Fields{
		"business_id": businessID,
		"item_id":     itemID,
		"period":      formatPeriod(window),
	}).Info("Item promovido manualmente para a categoria A")

	return result, nil
}

// Reset remove a promoção da janela padrão; o próximo cálculo volta à categoria calculada ou de fallback
func (m *OverrideManager) Reset(ctx context.Context, businessID, itemID string) (*ResetResult, error) {
	if err := validateTarget(businessID, itemID); err != nil {
		return nil, err
	}

	window := domain.TrailingWindow(m.clock.Now(), m.windowDays)
	var deleted int64

	err := m.db.RunInTransaction(ctx, func(q postgres.Queryer) error {
		if err := m.ensureItem(ctx, q, businessID, itemID); err != nil {
			return err
		}

		var err error
		deleted, err = m.classifications.Delete(ctx, q, businessID, itemID, window)
		return err
	})
	if err != nil {
		return nil, m.writeError(err, businessID, itemID)
	}

	m.afterWrite(ctx, businessID, itemID, nil)

	logrus.WithFields(logrus.Fields{
		"business_id": businessID,
		"item_id":     itemID,
		"deleted":     deleted,
	}).Info("Categoria manual removida")

	return &ResetResult{
		ItemID:      itemID,
		PeriodStart: window.StartDate(),
		PeriodEnd:   window.EndDate(),
		Deleted:     deleted > 0,
	}, nil
}

// afterWrite invalida o cache e notifica sem nunca falhar a requisição
func (m *OverrideManager) afterWrite(ctx context.Context, businessID, itemID string, category *domain.Category) {
	removed, err := m.cache.DeleteBusiness(ctx, businessID)
	if err != nil {
		logrus.WithError(err).WithField("business_id", businessID).Warn("Falha ao invalidar o cache do negócio")
	} else {
		metrics.CacheEvictions.Add(float64(removed))
	}

	m.notifier.NotifyAsync(ctx, domain.InvalidationEvent{
		BusinessID:  businessID,
		ItemID:      itemID,
		NewCategory: category,
	})
}

func (m *OverrideManager) ensureItem(ctx context.Context, q postgres.Queryer, businessID, itemID string) error {
	ok, err := m.facts.ItemBelongsToBusiness(ctx, q, businessID, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return NewClassificationErrorWithItem(ErrItemNotFound, apiErrors.ErrItemNotFound, itemID, "Item não encontrado para este negócio")
	}
	return nil
}

func (m *OverrideManager) writeError(err error, businessID, itemID string) error {
	var classErr *ClassificationError
	if errors.As(err, &classErr) {
		return classErr
	}

	logrus.WithFields(logrus.Fields{
		"business_id": businessID,
		"item_id":     itemID,
		"error":       err.Error(),
	}).Error("Falha ao gravar categoria manual")
	return NewClassificationErrorWithItem(ErrOverrideFailed, apiErrors.ErrDatabaseOperation, itemID, "Falha ao gravar a categoria manual")
}

func validateTarget(businessID, itemID string) error {
	if businessID == "" {
		return NewClassificationError(ErrBusinessIDRequired, apiErrors.ErrMissingRequiredData, "businessId é obrigatório")
	}
	if itemID == "" {
		return NewClassificationError(ErrItemIDRequired, apiErrors.ErrMissingRequiredData, "itemId é obrigatório")
	}
	return nil
}
