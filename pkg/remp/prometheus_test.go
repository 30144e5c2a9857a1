package remp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	metrics, err := remp.NewPrometheusMetrics(registry)
	require.NoError(t, err)

	chain := remp.NewInterceptorChain()
	metrics.Attach(chain)

	ctx := context.Background()
	outcomes := []*remp.Response{
		{StatusCode: 200},
		{StatusCode: 200},
		{StatusCode: 404},
		{Error: errBoom},
	}

	for _, resp := range outcomes {
		req := &remp.Request{Method: "POST", Path: "/api/v1/users/login"}
		require.NoError(t, chain.ExecuteRequestInterceptors(ctx, req))
		require.NoError(t, chain.ExecuteResponseInterceptors(ctx, req, resp))
	}

	expected := `
# HELP remp_client_requests_total Completed CRM API requests by method, path and status code.
# TYPE remp_client_requests_total counter
remp_client_requests_total{code="200",method="POST",path="/api/v1/users/login"} 2
remp_client_requests_total{code="404",method="POST",path="/api/v1/users/login"} 1
# HELP remp_client_transport_failures_total CRM API requests that failed before a status code was received.
# TYPE remp_client_transport_failures_total counter
remp_client_transport_failures_total{method="POST",path="/api/v1/users/login"} 1
`

	err = testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"remp_client_requests_total", "remp_client_transport_failures_total")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(registry, "remp_client_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheusMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	_, err := remp.NewPrometheusMetrics(registry)
	require.NoError(t, err)

	_, err = remp.NewPrometheusMetrics(registry)
	require.Error(t, err)
}
