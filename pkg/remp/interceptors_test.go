package remp_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

var errBoom = errors.New("boom")

type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, "debug:"+msg)
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, "info:"+msg)
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, "warn:"+msg)
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, "error:"+msg)
}

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	chain := remp.NewInterceptorChain()
	ctx := context.Background()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *remp.Request) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddRequestInterceptor(func(ctx context.Context, req *remp.Request) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	req := &remp.Request{
		Method: "GET",
		Path:   "/api/v1/user/info",
	}

	err := chain.ExecuteRequestInterceptors(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	chain := remp.NewInterceptorChain()
	called := false

	chain.AddRequestInterceptor(func(ctx context.Context, req *remp.Request) error {
		return errBoom
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *remp.Request) error {
		called = true

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &remp.Request{})
	require.ErrorIs(t, err, errBoom)
	assert.False(t, called)

	chain.AddResponseInterceptor(func(ctx context.Context, req *remp.Request, resp *remp.Response) error {
		return errBoom
	})

	err = chain.ExecuteResponseInterceptors(context.Background(), &remp.Request{}, &remp.Response{})
	require.ErrorIs(t, err, errBoom)
}

func TestInterceptorChain_ResponseInterceptors(t *testing.T) {
	t.Parallel()

	chain := remp.NewInterceptorChain()

	var executionOrder []string

	chain.AddResponseInterceptor(func(ctx context.Context, req *remp.Request, resp *remp.Response) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddResponseInterceptor(func(ctx context.Context, req *remp.Request, resp *remp.Response) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(), &remp.Request{Method: "GET"}, &remp.Response{StatusCode: 200})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := remp.HeaderInterceptor(map[string]string{
		"X-Custom-Header": "custom-value",
		"X-Tenant":        "dennikn",
	})

	req := &remp.Request{Method: "GET", Path: "/test"}

	err := interceptor(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "custom-value", req.Headers.Get("X-Custom-Header"))
	assert.Equal(t, "dennikn", req.Headers.Get("X-Tenant"))
}

func TestRequestIDInterceptor(t *testing.T) {
	t.Parallel()
	t.Run("generates an ID", func(t *testing.T) {
		t.Parallel()

		req := &remp.Request{Method: "GET", Path: "/test"}

		err := remp.RequestIDInterceptor()(context.Background(), req)
		require.NoError(t, err)

		id := req.Headers.Get(remp.RequestIDHeader)
		_, err = uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, req.Metadata[remp.MetadataRequestID])
	})

	t.Run("keeps caller ID", func(t *testing.T) {
		t.Parallel()

		req := &remp.Request{Headers: http.Header{remp.RequestIDHeader: {"caller-id"}}}

		err := remp.RequestIDInterceptor()(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "caller-id", req.Headers.Get(remp.RequestIDHeader))
		assert.Equal(t, "caller-id", req.Metadata[remp.MetadataRequestID])
	})
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	ctx := context.Background()
	req := &remp.Request{Method: "POST", Path: "/api/v1/users/login"}

	require.NoError(t, remp.LoggingInterceptor(logger)(ctx, req))
	require.NoError(t, remp.LoggingResponseInterceptor(logger)(ctx, req, &remp.Response{StatusCode: 200}))
	require.NoError(t, remp.LoggingResponseInterceptor(logger)(ctx, req, &remp.Response{StatusCode: 500, Error: errBoom}))

	assert.Equal(t, []string{"debug:API Request", "debug:API Response", "error:API Response Error"}, logger.entries)
}

func TestMetricsInterceptors(t *testing.T) {
	t.Parallel()

	collector := remp.NewMetricsCollector()
	requestInterceptor := remp.MetricsRequestInterceptor(collector)
	responseInterceptor := remp.MetricsResponseInterceptor(collector)

	var changes []string

	collector.SetOnChange(func(endpoint string, metrics remp.Metrics) {
		changes = append(changes, endpoint)
	})

	ctx := context.Background()

	for _, status := range []int{200, 200, 500} {
		req := &remp.Request{Method: "GET", Path: "/api/v1/user/info"}
		require.NoError(t, requestInterceptor(ctx, req))

		_, ok := req.Metadata[remp.MetadataStartTime].(time.Time)
		require.True(t, ok)

		require.NoError(t, responseInterceptor(ctx, req, &remp.Response{StatusCode: status}))
	}

	metrics, ok := collector.GetMetrics("GET /api/v1/user/info")
	require.True(t, ok)
	assert.Equal(t, int64(3), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.False(t, metrics.LastRequestTime.IsZero())
	assert.Len(t, changes, 3)

	_, ok = collector.GetMetrics("POST /unknown")
	assert.False(t, ok)
}
