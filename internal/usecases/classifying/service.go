package classifying

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/cache"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/database/postgres"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/repository"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
	"github.com/vfg2006/restaurant-inventory-api/pkg/clock"
	"github.com/vfg2006/restaurant-inventory-api/pkg/metrics"
	"github.com/vfg2006/restaurant-inventory-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	scopeFull = "full"
	scopeItem = "item"
)

type ClassificationService interface {
	ResolvePeriod(start, end *time.Time) (domain.Period, error)
	ComputeFullPeriod(ctx context.Context, businessID string, period domain.Period) (*domain.CachedReport, error)
	ComputeSingleItem(ctx context.Context, businessID, itemID string, period domain.Period) (*domain.CachedReport, error)
	ListCached(ctx context.Context, filter domain.ListFilter) (*domain.ListResponse, error)
	History(ctx context.Context, filter domain.HistoryFilter) ([]*domain.ClassificationResult, error)
	Recommendations(ctx context.Context, businessID string) ([]domain.Recommendation, error)
}

type Service struct {
	db              postgres.Transactor
	facts           repository.ConsumptionFactRepository
	classifications repository.ClassificationRepository
	aggregator      *Aggregator
	cache           cache.Store
	clock           clock.Clock
	windowDays      int
}

func NewService(
	db postgres.Transactor,
	facts repository.ConsumptionFactRepository,
	classifications repository.ClassificationRepository,
	cacheStore cache.Store,
	clk clock.Clock,
	windowDays int,
) *Service {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Service{
		db:              db,
		facts:           facts,
		classifications: classifications,
		aggregator:      NewAggregator(facts, clk),
		cache:           cacheStore,
		clock:           clk,
		windowDays:      windowDays,
	}
}

// ResolvePeriod completa datas ausentes com a janela móvel padrão
func (s *Service) ResolvePeriod(start, end *time.Time) (domain.Period, error) {
	if start == nil && end == nil {
		return domain.TrailingWindow(s.clock.Now(), s.windowDays), nil
	}

	var from, to time.Time
	switch {
	case start != nil && end != nil:
		from, to = *start, *end
	case start != nil:
		from, to = *start, s.clock.Now()
	default:
		to = *end
		from = domain.TrailingWindow(to, s.windowDays).Start
	}

	period, err := domain.NewPeriod(from, to)
	if err != nil {
		return domain.Period{}, NewClassificationError(ErrInvalidPeriod, apiErrors.ErrInvalidFormat, "A data inicial deve ser anterior ou igual à data final")
	}
	return period, nil
}

// ComputeFullPeriod serve do cache dentro do TTL; em caso de miss recalcula, persiste e grava o cache
func (s *Service) ComputeFullPeriod(ctx context.Context, businessID string, period domain.Period) (*domain.CachedReport, error) {
	if businessID == "" {
		return nil, NewClassificationError(ErrBusinessIDRequired, apiErrors.ErrMissingRequiredData, "businessId é obrigatório")
	}

	key := cache.NewKey(businessID, period)
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("cache_key", key.String()).Warn("Falha ao ler o cache, recalculando")
	}
	if entry != nil {
		metrics.CacheRequests.WithLabelValues(string(domain.CacheHit)).Inc()
		return &domain.CachedReport{Payload: entry.Payload, Status: domain.CacheHit}, nil
	}

	report, err := s.compute(ctx, businessID, "", period)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, NewClassificationError(err, apiErrors.ErrInternalServer, "Falha ao serializar a classificação")
	}

	if err := s.cache.Set(ctx, key, payload); err != nil {
		logrus.WithError(err).WithField("cache_key", key.String()).Warn("Falha ao gravar o cache")
	}

	metrics.CacheRequests.WithLabelValues(string(domain.CacheMiss)).Inc()
	return &domain.CachedReport{Payload: payload, Status: domain.CacheMiss}, nil
}

// ComputeSingleItem classifica o item em relação a todo o negócio, mas persiste e devolve apenas ele.
// Nunca consulta nem popula o cache.
func (s *Service) ComputeSingleItem(ctx context.Context, businessID, itemID string, period domain.Period) (*domain.CachedReport, error) {
	if businessID == "" {
		return nil, NewClassificationError(ErrBusinessIDRequired, apiErrors.ErrMissingRequiredData, "businessId é obrigatório")
	}
	if itemID == "" {
		return nil, NewClassificationError(ErrItemIDRequired, apiErrors.ErrMissingRequiredData, "itemId é obrigatório")
	}

	report, err := s.compute(ctx, businessID, itemID, period)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, NewClassificationError(err, apiErrors.ErrInternalServer, "Falha ao serializar a classificação")
	}

	metrics.CacheRequests.WithLabelValues(string(domain.CacheBypass)).Inc()
	return &domain.CachedReport{Payload: payload, Status: domain.CacheBypass}, nil
}

// compute executa agregar-classificar-persistir em uma única transação
func (s *Service) compute(ctx context.Context, businessID, itemID string, period domain.Period) (*domain.ABCReport, error) {
	scope := scopeFull
	if itemID != "" {
		scope = scopeItem
	}
	started := time.Now()
	defer func() {
		metrics.ComputeDuration.WithLabelValues(scope).Observe(time.Since(started).Seconds())
	}()

	now := s.clock.Now()
	var report *domain.ABCReport

	err := s.db.RunInTransaction(ctx, func(q postgres.Queryer) error {
		if itemID != "" {
			if err := s.ensureItem(ctx, q, businessID, itemID); err != nil {
				return err
			}
		}

		persisted, err := s.loadPersisted(ctx, q, businessID, period)
		if err != nil {
			return err
		}

		rows, err := s.aggregator.Aggregate(ctx, q, domain.FactFilter{BusinessID: businessID}, period, persisted)
		if err != nil {
			return err
		}

		items := Classify(rows, persisted)
		total := totalValue(items)

		if itemID != "" {
			items = filterItem(items, itemID)
		}

		if err := s.classifications.UpsertMany(ctx, q, toResults(businessID, period, items, now)); err != nil {
			return err
		}

		report = buildReport(businessID, period, items, total, now)
		return nil
	})
	if err != nil {
		var classErr *ClassificationError
		if errors.As(err, &classErr) {
			return nil, classErr
		}

		logrus.WithFields(logrus.Fields{
			"business_id": businessID,
			"item_id":     itemID,
			"period":      formatPeriod(period),
			"error":       err.Error(),
		}).Error("Falha na transação de classificação ABC")
		return nil, NewClassificationError(ErrTransactionFailed, apiErrors.ErrDatabaseOperation, "Falha ao calcular a classificação ABC")
	}

	logrus.WithFields(logrus.Fields{
		"business_id": businessID,
		"item_id":     itemID,
		"period":      formatPeriod(period),
		"total_items": report.TotalItems,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("Classificação ABC calculada")

	return report, nil
}

func (s *Service) ensureItem(ctx context.Context, q postgres.Queryer, businessID, itemID string) error {
	ok, err := s.facts.ItemBelongsToBusiness(ctx, q, businessID, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return NewClassificationErrorWithItem(ErrItemNotFound, apiErrors.ErrItemNotFound, itemID, "Item não encontrado para este negócio")
	}
	return nil
}

func (s *Service) loadPersisted(ctx context.Context, q postgres.Queryer, businessID string, period domain.Period) (domain.PersistedCategories, error) {
	exact, err := s.classifications.ExactCategories(ctx, q, businessID, period)
	if err != nil {
		return domain.PersistedCategories{}, err
	}

	latest, err := s.classifications.LatestCategories(ctx, q, businessID)
	if err != nil {
		return domain.PersistedCategories{}, err
	}

	return domain.PersistedCategories{Exact: exact, Latest: latest}, nil
}

// ListCached lê a classificação já aquecida por uma chamada anterior de cálculo para a mesma janela
func (s *Service) ListCached(ctx context.Context, filter domain.ListFilter) (*domain.ListResponse, error) {
	if filter.BusinessID == "" {
		return nil, NewClassificationError(ErrBusinessIDRequired, apiErrors.ErrMissingRequiredData, "businessId é obrigatório")
	}

	key := cache.NewKey(filter.BusinessID, filter.Period)
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("cache_key", key.String()).Warn("Falha ao ler o cache para listagem")
	}
	if entry == nil {
		return nil, NewClassificationError(
			ErrCacheUnavailable,
			apiErrors.ErrCacheUnavailable,
			"Nenhuma classificação em cache para esta janela. Chame /calculate com o mesmo período antes de listar",
		)
	}

	var report domain.ABCReport
	if err := json.Unmarshal(entry.Payload, &report); err != nil {
		return nil, NewClassificationError(ErrCacheOperation, apiErrors.ErrInternalServer, "Falha ao ler a classificação em cache")
	}

	items := report.Items
	if filter.Category != nil {
		items = make([]domain.ClassifiedItem, 0, len(report.Items))
		for _, item := range report.Items {
			if item.Category == *filter.Category {
				items = append(items, item)
			}
		}
	}

	return &domain.ListResponse{
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
		Category:    filter.Category,
		Items:       items,
		Total:       len(items),
	}, nil
}

func (s *Service) History(ctx context.Context, filter domain.HistoryFilter) ([]*domain.ClassificationResult, error) {
	if filter.BusinessID == "" {
		return nil, NewClassificationError(ErrBusinessIDRequired, apiErrors.ErrMissingRequiredData, "businessId é obrigatório")
	}

	var results []*domain.ClassificationResult
	err := s.db.RunInTransaction(ctx, func(q postgres.Queryer) error {
		var err error
		results, err = s.classifications.History(ctx, q, filter)
		return err
	})
	if err != nil {
		logrus.WithError(err).WithField("business_id", filter.BusinessID).Error("Falha ao buscar histórico de classificação")
		return nil, NewClassificationError(ErrFetchHistory, apiErrors.ErrDatabaseOperation, "Falha ao buscar o histórico de classificação")
	}

	return results, nil
}

func totalValue(items []domain.ClassifiedItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.ConsumptionValue
	}
	return total
}

func filterItem(items []domain.ClassifiedItem, itemID string) []domain.ClassifiedItem {
	for _, item := range items {
		if item.ItemID == itemID {
			return []domain.ClassifiedItem{item}
		}
	}
	return []domain.ClassifiedItem{}
}

func toResults(businessID string, period domain.Period, items []domain.ClassifiedItem, now time.Time) []*domain.ClassificationResult {
	results := make([]*domain.ClassificationResult, 0, len(items))
	for _, item := range items {
		results = append(results, &domain.ClassificationResult{
			BusinessID:            businessID,
			ItemID:                item.ItemID,
			ItemName:              item.ItemName,
			PeriodStart:           period.Start,
			PeriodEnd:             period.End,
			TotalConsumptionValue: item.ConsumptionValue,
			Category:              item.Category,
			CreatedAt:             now,
		})
	}
	return results
}

// buildReport usa o total do negócio inteiro, inclusive quando só um item é devolvido
func buildReport(businessID string, period domain.Period, items []domain.ClassifiedItem, total float64, now time.Time) *domain.ABCReport {
	return &domain.ABCReport{
		BusinessID:            businessID,
		PeriodStart:           period.StartDate(),
		PeriodEnd:             period.EndDate(),
		TotalConsumptionValue: utils.RoundWithTwoDecimalPlace(total),
		TotalItems:            len(items),
		Summary:               summarize(items, totalValue(items)),
		Items:                 items,
		GeneratedAt:           now,
	}
}

// Recommendations combina a categoria persistida mais recente de cada item com o estoque atual
func (s *Service) Recommendations(ctx context.Context, businessID string) ([]domain.Recommendation, error) {
	if businessID == "" {
		return nil, NewClassificationError(ErrBusinessIDRequired, apiErrors.ErrMissingRequiredData, "businessId é obrigatório")
	}

	window := domain.TrailingWindow(s.clock.Now(), s.windowDays)

	var (
		latest []*domain.ClassificationResult
		rows   []domain.ConsumptionRow
	)
	err := s.db.RunInTransaction(ctx, func(q postgres.Queryer) error {
		var err error
		if latest, err = s.classifications.LatestResults(ctx, q, businessID); err != nil {
			return err
		}

		persisted := domain.PersistedCategories{Latest: make(domain.CategoryMap, len(latest))}
		for _, r := range latest {
			persisted.Latest[r.ItemID] = r.Category
		}

		rows, err = s.aggregator.Aggregate(ctx, q, domain.FactFilter{BusinessID: businessID}, window, persisted)
		return err
	})
	if err != nil {
		logrus.WithError(err).WithField("business_id", businessID).Error("Falha ao montar recomendações")
		return nil, NewClassificationError(ErrFetchHistory, apiErrors.ErrDatabaseOperation, "Falha ao montar as recomendações")
	}

	byItem := make(map[string]domain.ConsumptionRow, len(rows))
	for _, row := range rows {
		byItem[row.ItemID] = row
	}

	recommendations := make([]domain.Recommendation, 0, len(latest))
	for _, result := range latest {
		row, ok := byItem[result.ItemID]
		if !ok {
			row = domain.ConsumptionRow{ItemID: result.ItemID, ItemName: result.ItemName, StockStatus: domain.StockStatusSufficient}
		}
		recommendations = append(recommendations, recommend(result, row))
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		pi, pj := priorityRank[recommendations[i].Priority], priorityRank[recommendations[j].Priority]
		if pi != pj {
			return pi < pj
		}
		if recommendations[i].Category != recommendations[j].Category {
			return recommendations[i].Category < recommendations[j].Category
		}
		return recommendations[i].ItemName < recommendations[j].ItemName
	})

	return recommendations, nil
}
