package notifier

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePlatform struct {
	name  string
	err   error
	calls atomic.Int64
}

func (p *fakePlatform) Name() string { return p.name }

func (p *fakePlatform) Post(ctx context.Context, text string, links []string) error {
	p.calls.Add(1)
	return p.err
}

func TestBroadcaster_AllPlatformsPosted(t *testing.T) {
	a := &fakePlatform{name: "a"}
	b := &fakePlatform{name: "b"}
	broadcaster := NewBroadcaster(a, b)

	report := broadcaster.Broadcast(context.Background(), "hello", nil)

	assert.True(t, report.Posted())
	assert.True(t, report.Platforms["a"])
	assert.True(t, report.Platforms["b"])
	assert.Empty(t, report.Errors)
	assert.Equal(t, int64(1), a.calls.Load())
	assert.Equal(t, int64(1), b.calls.Load())
}

func TestBroadcaster_FailureIsolatedPerPlatform(t *testing.T) {
	healthy := &fakePlatform{name: "healthy"}
	broken := &fakePlatform{name: "broken", err: errors.New("api down")}
	broadcaster := NewBroadcaster(healthy, broken)

	report := broadcaster.Broadcast(context.Background(), "hello", nil)

	assert.True(t, report.Posted())
	assert.True(t, report.Platforms["healthy"])
	assert.False(t, report.Platforms["broken"])
	assert.Equal(t, "api down", report.Errors["broken"])
}

func TestBroadcaster_AllFail(t *testing.T) {
	a := &fakePlatform{name: "a", err: errors.New("down")}
	b := &fakePlatform{name: "b", err: errors.New("down")}
	broadcaster := NewBroadcaster(a, b)

	report := broadcaster.Broadcast(context.Background(), "hello", nil)

	assert.False(t, report.Posted())
	assert.Len(t, report.Errors, 2)
}

func TestBroadcaster_SkipsNilPlatforms(t *testing.T) {
	a := &fakePlatform{name: "a"}
	broadcaster := NewBroadcaster(nil, a, nil)

	report := broadcaster.Broadcast(context.Background(), "hello", nil)

	assert.Len(t, report.Platforms, 1)
	assert.True(t, report.Platforms["a"])
}
