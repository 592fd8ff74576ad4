package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockReservationCleaner struct {
	mock.Mock
}

func (m *MockReservationCleaner) ClearExpiredReservations(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockShowScheduler struct {
	mock.Mock
}

func (m *MockShowScheduler) ScheduleShows(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewExpiredReservationCleaner(t *testing.T) {
	cleaner := NewExpiredReservationCleaner(new(MockReservationCleaner), time.Minute, zap.NewNop())

	assert.NotNil(t, cleaner)
	assert.Equal(t, time.Minute, cleaner.interval)
	assert.False(t, cleaner.eager)
	assert.NotNil(t, cleaner.stopCh)
	assert.NotNil(t, cleaner.doneCh)
}

func TestExpiredReservationCleaner_Tick(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		service := new(MockReservationCleaner)
		service.On("ClearExpiredReservations", mock.Anything).Return(int64(5), nil)
		cleaner := NewExpiredReservationCleaner(service, time.Minute, zap.NewNop())

		cleaner.tick(context.Background())

		service.AssertExpectations(t)
	})

	t.Run("error is logged", func(t *testing.T) {
		service := new(MockReservationCleaner)
		service.On("ClearExpiredReservations", mock.Anything).Return(int64(0), assert.AnError)
		cleaner := NewExpiredReservationCleaner(service, time.Minute, zap.NewNop())

		assert.NotPanics(t, func() { cleaner.tick(context.Background()) })
		service.AssertExpectations(t)
	})
}

func TestExpiredReservationCleaner_StartStop(t *testing.T) {
	service := new(MockReservationCleaner)
	service.On("ClearExpiredReservations", mock.Anything).Return(int64(0), nil).Maybe()
	cleaner := NewExpiredReservationCleaner(service, 10*time.Millisecond, zap.NewNop())

	go cleaner.Start(context.Background())
	time.Sleep(35 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		cleaner.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop")
	}

	// a second Stop must not block or panic
	assert.NotPanics(t, cleaner.Stop)
}

func TestExpiredReservationCleaner_ContextCancel(t *testing.T) {
	service := new(MockReservationCleaner)
	service.On("ClearExpiredReservations", mock.Anything).Return(int64(0), nil).Maybe()
	cleaner := NewExpiredReservationCleaner(service, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		cleaner.Start(ctx)
		close(finished)
	}()

	cancel()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("cleaner ignored context cancellation")
	}
}

func TestDailyShowScheduler_RunsOnStart(t *testing.T) {
	service := new(MockShowScheduler)
	called := make(chan struct{}, 1)
	service.On("ScheduleShows", mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case called <- struct{}{}:
			default:
			}
		}).
		Return(int64(3), nil)
	scheduler := NewDailyShowScheduler(service, time.Hour, zap.NewNop())

	go scheduler.Start(context.Background())

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not run on start")
	}
	scheduler.Stop()
	service.AssertNumberOfCalls(t, "ScheduleShows", 1)
}

func TestDailyShowScheduler_Error(t *testing.T) {
	service := new(MockShowScheduler)
	service.On("ScheduleShows", mock.Anything).Return(int64(0), errors.New("lock lost"))
	scheduler := NewDailyShowScheduler(service, time.Hour, zap.NewNop())

	assert.NotPanics(t, func() { scheduler.tick(context.Background()) })
	service.AssertExpectations(t)
}
