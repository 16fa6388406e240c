package chi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yujingwu/knwl-platform/internal/domain"
	logpkg "github.com/yujingwu/knwl-platform/internal/logger"
	"github.com/yujingwu/knwl-platform/internal/metrics"
)

// APIKeyHeader carries the caller's API key.
const APIKeyHeader = "X-API-Key"

// Authorizer maps API keys to the tenants they may act for.
type Authorizer struct {
	tenants map[string]map[string]struct{}
}

// NewAuthorizer builds an Authorizer from key -> tenant ids. Empty keys are ignored.
// With no keys configured every tenant request is rejected.
func NewAuthorizer(apiKeys map[string][]string) *Authorizer {
	tenants := make(map[string]map[string]struct{}, len(apiKeys))
	for key, ids := range apiKeys {
		if key == "" {
			continue
		}
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		tenants[key] = set
	}
	return &Authorizer{tenants: tenants}
}

// Authorize returns nil when key may act for tenantID, ErrUnauthorized for a
// missing or unknown key and ErrForbidden for a key without access.
func (a *Authorizer) Authorize(key, tenantID string) error {
	set, ok := a.tenants[key]
	if key == "" || !ok {
		return domain.ErrUnauthorized
	}
	if _, ok := set[tenantID]; !ok {
		return domain.ErrForbidden
	}
	return nil
}

// TenantAuthMiddleware rejects requests whose X-API-Key is not mapped to the
// tenant in the route.
func TenantAuthMiddleware(a *Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := chi.URLParam(r, metrics.TenantParam)
			logpkg.AddFields(r.Context(), zap.String("tenant_id", tenantID))

			err := a.Authorize(r.Header.Get(APIKeyHeader), tenantID)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, domain.ErrForbidden):
				writeError(w, http.StatusForbidden, detailForbidden)
			default:
				writeError(w, http.StatusUnauthorized, detailInvalidAPIKey)
			}
		})
	}
}
