package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kostyay/basementhq/internal/model"
)

type stubSource struct {
	id   model.SourceID
	poll func(ctx context.Context) model.Report
}

func (s stubSource) ID() model.SourceID                    { return s.id }
func (s stubSource) Poll(ctx context.Context) model.Report { return s.poll(ctx) }

func TestRun_RecoversPanic(t *testing.T) {
	src := stubSource{id: model.SourceHost, poll: func(context.Context) model.Report {
		panic("boom")
	}}

	rep := Run(context.Background(), src, nil)

	assert.Equal(t, model.StatusUnavailable, rep.Status)
	assert.Contains(t, rep.Reason, "boom")
	assert.Equal(t, model.SourceHost, rep.Source)
	assert.Nil(t, rep.Payload)
}

func TestRun_AppliesSourceTimeout(t *testing.T) {
	src := stubSource{id: model.ReachabilitySource("slow"), poll: func(ctx context.Context) model.Report {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 200*time.Millisecond)
		<-ctx.Done()
		return model.Unavailable[any](ctx.Err().Error()).Report("")
	}}

	start := time.Now()
	rep := Run(context.Background(), src, nil)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, model.StatusUnavailable, rep.Status)
	assert.Equal(t, model.ReachabilitySource("slow"), rep.Source, "Run stamps the source id")
}

func TestTransportReason(t *testing.T) {
	assert.Equal(t, "timeout", transportReason(context.DeadlineExceeded))
	assert.Equal(t, "canceled", transportReason(context.Canceled))
	assert.Equal(t, "unreachable: nope", transportReason(errors.New("nope")))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://h:1/Sessions", joinURL("http://h:1/", "/Sessions"))
	assert.Equal(t, "http://h:1/Sessions", joinURL("http://h:1", "/Sessions"))
}
