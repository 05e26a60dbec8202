package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"tujitume_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationService struct {
	services.NotificationService

	mu         sync.Mutex
	calls      int
	retentions []time.Duration
}

func (f *fakeNotificationService) CleanOldNotifications(_ *gorm.DB, retention time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.retentions = append(f.retentions, retention)
	return 3, nil
}

func (f *fakeNotificationService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNotificationWorker_RunOnce(t *testing.T) {
	svc := &fakeNotificationService{}
	w := NewNotificationWorker(nil, svc, time.Hour, 30*24*time.Hour)

	deleted := w.RunOnce()

	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, []time.Duration{30 * 24 * time.Hour}, svc.retentions)
}

func TestNotificationWorker_RunStopsOnCancel(t *testing.T) {
	svc := &fakeNotificationService{}
	w := NewNotificationWorker(nil, svc, 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return svc.callCount() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestNotificationWorker_RunRejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Minute} {
		svc := &fakeNotificationService{}
		w := NewNotificationWorker(nil, svc, interval, time.Hour)

		err := w.Run(context.Background())
		assert.Error(t, err, interval)
		assert.Zero(t, svc.callCount())
	}
}
