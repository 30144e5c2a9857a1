package remp_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
	messages [][]byte
	err      error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subjects = append(p.subjects, subject)
	p.messages = append(p.messages, data)

	return p.err
}

func TestEventInterceptor(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{}

	chain := remp.NewInterceptorChain()
	chain.AddRequestInterceptor(remp.RequestIDInterceptor())
	chain.AddRequestInterceptor(remp.MetricsRequestInterceptor(remp.NewMetricsCollector()))
	chain.AddResponseInterceptor(remp.EventInterceptor(publisher, ""))

	ctx := context.Background()
	req := &remp.Request{Method: "POST", Path: "/api/v1/users/login"}

	require.NoError(t, chain.ExecuteRequestInterceptors(ctx, req))
	require.NoError(t, chain.ExecuteResponseInterceptors(ctx, req, &remp.Response{StatusCode: 200}))

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, remp.DefaultEventSubject, publisher.subjects[0])

	var event remp.RequestEvent
	require.NoError(t, json.Unmarshal(publisher.messages[0], &event))
	assert.Equal(t, "POST", event.Method)
	assert.Equal(t, "/api/v1/users/login", event.Path)
	assert.Equal(t, 200, event.StatusCode)
	assert.Equal(t, req.Metadata[remp.MetadataRequestID], event.RequestID)
	assert.Empty(t, event.Error)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventInterceptor_Failure(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{}
	interceptor := remp.EventInterceptor(publisher, "crm.audit")

	failure := &remp.Error{Kind: remp.KindRempFailure, Method: "GET", URL: "https://crm.example/x", Err: errBoom}

	err := interceptor(context.Background(), &remp.Request{Method: "GET", Path: "/x"}, &remp.Response{Error: failure})
	require.NoError(t, err)

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "crm.audit", publisher.subjects[0])

	var event remp.RequestEvent
	require.NoError(t, json.Unmarshal(publisher.messages[0], &event))
	assert.Equal(t, 0, event.StatusCode)
	assert.Contains(t, event.Error, "remp-failure")
}

func TestEventInterceptor_PublishError(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{err: errBoom}
	interceptor := remp.EventInterceptor(publisher, "")

	err := interceptor(context.Background(), &remp.Request{Method: "GET", Path: "/x"}, &remp.Response{StatusCode: 200})
	require.ErrorIs(t, err, errBoom)
}
