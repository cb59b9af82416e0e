package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettledLabels(t *testing.T) {
	before := testutil.ToFloat64(settlements.WithLabelValues("inserted", "not_found"))
	Settled(true, 0)
	after := testutil.ToFloat64(settlements.WithLabelValues("inserted", "not_found"))
	assert.Equal(t, before+1, after)

	before = testutil.ToFloat64(settlements.WithLabelValues("duplicate", "removed"))
	Settled(false, 1)
	assert.Equal(t, before+1, testutil.ToFloat64(settlements.WithLabelValues("duplicate", "removed")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/payment/{email}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/payment/{email}", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/payment/a@b.io", nil))
	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/payment/{email}", "418"))
	assert.Equal(t, before+1, after)
}

func TestMiddlewareCollapsesUnmatchedPaths(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))
	for i := 0; i < 5; i++ {
		path := fmt.Sprintf("/scan/%d", i)
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))
	assert.Equal(t, before+5, after)

	out, err := testutil.CollectAndFormat(httpRequests, expfmt.TypeTextPlain, "sports_academy_http_requests_total")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "/scan/")
}

func TestHandlerExposesRegistry(t *testing.T) {
	AuthRejected("forbidden")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sports_academy_auth_rejections_total"))
}
