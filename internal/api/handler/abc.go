package handler

import (
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/internal/usecases/classifying"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
	"github.com/vfg2006/restaurant-inventory-api/pkg/log"
	"github.com/vfg2006/restaurant-inventory-api/pkg/middleware"
	"github.com/vfg2006/restaurant-inventory-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const cacheHeader = "X-Cache"

type categoryRequest struct {
	ItemID      string `json:"itemId"`
	NewCategory string `json:"newCategory"`
	BusinessID  string `json:"businessId"`
}

// Calculate classifica todo o negócio na janela pedida; com itemId devolve só o item e ignora o cache
func Calculate(service classifying.ClassificationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		itemID := strings.TrimSpace(r.URL.Query().Get("itemId"))
		serveClassification(w, r, service, itemID)
	})
}

// ItemClassification é o /calculate com o item vindo da rota
func ItemClassification(service classifying.ClassificationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		itemID := strings.TrimSpace(httprouter.ParamsFromContext(r.Context()).ByName("itemId"))
		if itemID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "itemId é obrigatório", nil)
			return
		}
		serveClassification(w, r, service, itemID)
	})
}

func serveClassification(w http.ResponseWriter, r *http.Request, service classifying.ClassificationService, itemID string) {
	logger := log.ForContext(r.Context())

	businessID, ok := resolveBusinessID(w, r, r.URL.Query().Get("businessId"))
	if !ok {
		return
	}
	period, ok := periodFromQuery(w, r, service)
	if !ok {
		return
	}

	var (
		report *domain.CachedReport
		err    error
	)
	if itemID != "" {
		report, err = service.ComputeSingleItem(r.Context(), businessID, itemID, period)
	} else {
		report, err = service.ComputeFullPeriod(r.Context(), businessID, period)
	}
	if err != nil {
		writeClassificationError(w, r, err)
		return
	}

	logger.WithFields(log.Fields{
		"business_id":  businessID,
		"item_id":      itemID,
		"cache_status": report.Status,
	}).Info("abc: classificação calculada")

	w.Header().Set(cacheHeader, string(report.Status))
	apiErrors.WriteRawData(w, http.StatusOK, report.Payload)
}

// History devolve as linhas persistidas, mais recentes primeiro
func History(service classifying.ClassificationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		startDate, err := utils.ParseDate(query.Get("startDate"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "startDate inválida, use yyyy-mm-dd", nil)
			return
		}
		endDate, err := utils.ParseDate(query.Get("endDate"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "endDate inválida, use yyyy-mm-dd", nil)
			return
		}

		businessID, ok := resolveBusinessID(w, r, query.Get("businessId"))
		if !ok {
			return
		}

		filter := domain.HistoryFilter{
			BusinessID: businessID,
			StartDate:  startDate,
			EndDate:    endDate,
		}
		if itemID := strings.TrimSpace(query.Get("itemId")); itemID != "" {
			filter.ItemID = &itemID
		}

		results, err := service.History(r.Context(), filter)
		if err != nil {
			writeClassificationError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, results)
	})
}

func Recommendations(service classifying.ClassificationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := resolveBusinessID(w, r, r.URL.Query().Get("businessId"))
		if !ok {
			return
		}

		recommendations, err := service.Recommendations(r.Context(), businessID)
		if err != nil {
			writeClassificationError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, recommendations)
	})
}

// List lê a classificação já aquecida no cache; sem /calculate prévio para a janela responde 400
func List(service classifying.ClassificationService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		businessID, ok := resolveBusinessID(w, r, query.Get("businessId"))
		if !ok {
			return
		}
		period, ok := periodFromQuery(w, r, service)
		if !ok {
			return
		}

		filter := domain.ListFilter{
			BusinessID: businessID,
			Period:     period,
		}
		if raw := query.Get("category"); raw != "" {
			category, err := domain.ParseCategory(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidCategory, "Categoria inválida. Valores aceitos: A, B, C", nil)
				return
			}
			filter.Category = &category
		}

		response, err := service.ListCached(r.Context(), filter)
		if err != nil {
			writeClassificationError(w, r, err)
			return
		}

		w.Header().Set(cacheHeader, string(domain.CacheHit))
		apiErrors.WriteSuccess(w, http.StatusOK, response)
	})
}

// ManualCategory promove o item para 'A' na janela padrão
func ManualCategory(service classifying.OverrideService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		businessID, ok := resolveBusinessID(w, r, req.BusinessID)
		if !ok {
			return
		}
		result, err := service.SetManualCategory(r.Context(), businessID, strings.TrimSpace(req.ItemID), req.NewCategory)
		if err != nil {
			writeClassificationError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, result)
	})
}

func Promote(service classifying.OverrideService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		businessID, ok := resolveBusinessID(w, r, req.BusinessID)
		if !ok {
			return
		}
		result, err := service.Promote(r.Context(), businessID, strings.TrimSpace(req.ItemID))
		if err != nil {
			writeClassificationError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, result)
	})
}

// ResetManualCategory remove a promoção manual da janela padrão
func ResetManualCategory(service classifying.OverrideService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		itemID := strings.TrimSpace(httprouter.ParamsFromContext(r.Context()).ByName("itemId"))
		businessID, ok := resolveBusinessID(w, r, r.URL.Query().Get("businessId"))
		if !ok {
			return
		}

		result, err := service.Reset(r.Context(), businessID, itemID)
		if err != nil {
			writeClassificationError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, result)
	})
}

// resolveBusinessID usa o negócio do token; um businessId explícito diferente dele responde 403.
// Sem claims (autenticação desabilitada) vale o valor explícito.
func resolveBusinessID(w http.ResponseWriter, r *http.Request, explicit string) (string, bool) {
	businessID := strings.TrimSpace(explicit)

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return businessID, true
	}
	if businessID != "" && businessID != claims.BusinessID {
		log.ForContext(r.Context()).WithFields(log.Fields{
			"business_id": businessID,
			"user_id":     claims.UserID,
		}).Warn("abc: acesso negado a outro negócio")
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Acesso negado ao negócio informado", nil)
		return "", false
	}
	return claims.BusinessID, true
}

func periodFromQuery(w http.ResponseWriter, r *http.Request, service classifying.ClassificationService) (domain.Period, bool) {
	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("startDate"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "startDate inválida, use yyyy-mm-dd", nil)
		return domain.Period{}, false
	}
	endDate, err := utils.ParseDate(query.Get("endDate"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "endDate inválida, use yyyy-mm-dd", nil)
		return domain.Period{}, false
	}

	period, err := service.ResolvePeriod(startDate, endDate)
	if err != nil {
		writeClassificationError(w, r, err)
		return domain.Period{}, false
	}
	return period, true
}

// writeClassificationError traduz o erro do caso de uso; detalhes internos ficam só no log
func writeClassificationError(w http.ResponseWriter, r *http.Request, err error) {
	var classErr *classifying.ClassificationError
	if errors.As(err, &classErr) {
		if apiErrors.StatusFor(classErr.Code) >= http.StatusInternalServerError {
			log.ForContext(r.Context()).WithError(err).Error("abc: falha ao processar requisição")
		}
		apiErrors.WriteError(w, classErr.Code, classErr.Details, nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("abc: erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
}
