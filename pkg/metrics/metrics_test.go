package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frizzly/api/pkg/repository"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", Handler())

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/items/:id", "204"))
	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/items/:id", "204"))
	assert.Equal(t, 3.0, after-before)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "frizzly_http_requests_total"))
}

func TestObserveStore_Results(t *testing.T) {
	start := time.Now()
	ObserveStore("get", "users", start, nil)
	ObserveStore("get", "users", start, repository.ErrNotFound)
	ObserveStore("get", "users", start, errors.New("boom"))

	assert.Equal(t, 3, testutil.CollectAndCount(StoreOperationDuration))
}

func TestRecordProbe(t *testing.T) {
	okBefore := testutil.ToFloat64(ProbeChecks.WithLabelValues("ok"))
	failedBefore := testutil.ToFloat64(ProbeChecks.WithLabelValues("failed"))

	RecordProbe(true)
	RecordProbe(false)
	RecordProbe(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(ProbeChecks.WithLabelValues("ok"))-okBefore)
	assert.Equal(t, 2.0, testutil.ToFloat64(ProbeChecks.WithLabelValues("failed"))-failedBefore)
}
