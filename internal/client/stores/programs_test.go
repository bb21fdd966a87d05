package stores

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func programList(enrolled bool, count int) []models.Program {
	return []models.Program{
		{ProgramID: "p1", Title: "Mindfulness", Capacity: 10, EnrolledCount: count, IsEnrolled: enrolled},
		{ProgramID: "p2", Title: "Sleep", Capacity: 5},
	}
}

func findProgram(t *testing.T, list []models.Program, id string) models.Program {
	t.Helper()
	for _, p := range list {
		if p.ProgramID == id {
			return p
		}
	}
	t.Fatalf("program %s not found", id)
	return models.Program{}
}

// serverPrograms is a fake API whose list reflects enrollments it accepted.
type serverPrograms struct {
	mu       sync.Mutex
	enrolled bool
	count    int
}

func (s *serverPrograms) api() *fakePrograms {
	return &fakePrograms{
		list: func() ([]models.Program, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return programList(s.enrolled, s.count), nil
		},
		enroll: func(string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.enrolled, s.count = true, s.count+1
			return nil
		},
		cancel: func(string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.enrolled, s.count = false, s.count-1
			return nil
		},
	}
}

func TestPrograms_FetchAll(t *testing.T) {
	srv := &serverPrograms{count: 3}
	s := NewPrograms(srv.api())

	got, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	assert.Equal(t, programList(false, 3), snap.Programs)
}

func TestPrograms_EnrollIsOptimisticThenReconciled(t *testing.T) {
	srv := &serverPrograms{count: 3}
	api := srv.api()
	release := make(chan struct{})
	accept := api.enroll
	api.enroll = func(id string) error {
		<-release
		return accept(id)
	}
	api.enrolled = func() ([]models.Program, error) {
		return programList(true, 4)[:1], nil
	}

	s := NewPrograms(api)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Enroll(context.Background(), "p1") }()

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		_, pending := snap.Pending["p1"]
		return pending && snap.Loading
	}, time.Second, time.Millisecond)

	snap := s.Snapshot()
	p1 := findProgram(t, snap.Programs, "p1")
	assert.True(t, p1.IsEnrolled, "applied before the API answered")
	assert.Equal(t, 4, p1.EnrolledCount)

	close(release)
	require.NoError(t, <-done)
	s.Wait()

	snap = s.Snapshot()
	assert.Empty(t, snap.Pending)
	assert.False(t, snap.Loading)
	assert.Equal(t, programList(true, 4), snap.Programs)
	require.Len(t, snap.Enrolled, 1)
	assert.Equal(t, "p1", snap.Enrolled[0].ProgramID)
}

func TestPrograms_ServerWinsOnReconcile(t *testing.T) {
	api := &fakePrograms{
		list:   func() ([]models.Program, error) { return programList(false, 3), nil },
		enroll: func(string) error { return nil },
	}
	s := NewPrograms(api)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Enroll(context.Background(), "p1"))
	s.Wait()

	p1 := findProgram(t, s.Snapshot().Programs, "p1")
	assert.False(t, p1.IsEnrolled)
	assert.Equal(t, 3, p1.EnrolledCount)
}

func TestPrograms_EnrollFailureRollsBack(t *testing.T) {
	api := &fakePrograms{
		list:   func() ([]models.Program, error) { return programList(false, 10), nil },
		enroll: func(string) error { return &client.APIError{StatusCode: 409, Message: "program is full"} },
	}
	s := NewPrograms(api)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	err = s.Enroll(context.Background(), "p1")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	s.Wait()

	snap := s.Snapshot()
	assert.Equal(t, "program is full", snap.Error)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Pending)
	assert.Empty(t, snap.Enrolled)
	assert.Equal(t, programList(false, 10), snap.Programs)
}

func TestPrograms_CancelEnrollment(t *testing.T) {
	srv := &serverPrograms{enrolled: true, count: 4}
	api := srv.api()
	api.enrolled = func() ([]models.Program, error) { return nil, nil }
	s := NewPrograms(api)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.CancelEnrollment(context.Background(), "p1"))
	s.Wait()

	snap := s.Snapshot()
	assert.Equal(t, programList(false, 3), snap.Programs)
	assert.Empty(t, snap.Enrolled)
}

func TestPrograms_StaleFetchIsDiscarded(t *testing.T) {
	first := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	api := &fakePrograms{list: func() ([]models.Program, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			<-first
			return []models.Program{{ProgramID: "old", Title: "Old"}}, nil
		}
		return []models.Program{{ProgramID: "new", Title: "New"}}, nil
	}}
	s := NewPrograms(api)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.FetchAll(context.Background())
	}()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, time.Millisecond)

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	close(first)
	<-done

	snap := s.Snapshot()
	require.Len(t, snap.Programs, 1)
	assert.Equal(t, "new", snap.Programs[0].ProgramID)
}

func TestPrograms_FetchKeepsNewerTentativeChange(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	api := &fakePrograms{
		list: func() ([]models.Program, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 2 {
				<-release
			}
			return programList(false, 3), nil
		},
		enroll: func(string) error { return errors.New("unreachable") },
	}
	s := NewPrograms(api)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.FetchAll(context.Background())
	}()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 2
	}, time.Second, time.Millisecond)

	api.enroll = func(string) error { return nil }
	api.list = func() ([]models.Program, error) { return nil, errors.New("offline") }
	require.NoError(t, s.Enroll(context.Background(), "p1"))
	s.Wait()

	close(release)
	<-done

	snap := s.Snapshot()
	assert.True(t, findProgram(t, snap.Programs, "p1").IsEnrolled, "fetch started before enroll must not undo it")
	assert.Contains(t, snap.Pending, "p1")
}

func TestPrograms_ReconcileFailureIsRecorded(t *testing.T) {
	srv := &serverPrograms{count: 3}
	api := srv.api()
	s := NewPrograms(api)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	api.list = func() ([]models.Program, error) { return nil, errors.New("server unavailable") }
	require.NoError(t, s.Enroll(context.Background(), "p1"))
	s.Wait()

	snap := s.Snapshot()
	assert.Equal(t, "server unavailable", snap.Error)
	assert.False(t, snap.Loading)
	assert.Contains(t, snap.Pending, "p1")
	assert.True(t, findProgram(t, snap.Programs, "p1").IsEnrolled)
}

func TestPrograms_ReconcileEnrolledFailureIsRecorded(t *testing.T) {
	srv := &serverPrograms{count: 3}
	api := srv.api()
	api.enrolled = func() ([]models.Program, error) { return nil, errors.New("enrollments unavailable") }
	s := NewPrograms(api)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Enroll(context.Background(), "p1"))
	s.Wait()

	snap := s.Snapshot()
	assert.Equal(t, "enrollments unavailable", snap.Error)
	assert.Empty(t, snap.Pending)
	assert.Equal(t, programList(true, 4), snap.Programs)
}

func TestPrograms_FetchStartedBeforeResetIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakePrograms{list: func() ([]models.Program, error) {
		close(started)
		<-release
		return programList(false, 1), nil
	}}
	s := NewPrograms(api)

	done := make(chan error, 1)
	go func() {
		_, err := s.FetchAll(context.Background())
		done <- err
	}()
	<-started

	s.reset()
	close(release)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.Empty(t, snap.Programs)
	assert.False(t, snap.Loading)
}

func TestPrograms_CreateAndUpdate(t *testing.T) {
	api := &fakePrograms{
		create: func(req models.ProgramRequest) (*models.Program, error) {
			return &models.Program{ProgramID: "p9", Title: req.Title, Capacity: req.Capacity}, nil
		},
		update: func(id string, req models.ProgramRequest) (*models.Program, error) {
			return &models.Program{ProgramID: id, Title: req.Title, Capacity: req.Capacity}, nil
		},
		get: func(id string) (*models.Program, error) {
			return &models.Program{ProgramID: id, Title: "Yoga"}, nil
		},
	}
	s := NewPrograms(api)
	ctx := context.Background()

	_, err := s.Create(ctx, models.ProgramRequest{Title: "Yoga", Capacity: 5})
	require.NoError(t, err)
	_, err = s.FetchByID(ctx, "p9")
	require.NoError(t, err)
	_, err = s.Update(ctx, "p9", models.ProgramRequest{Title: "Yoga+", Capacity: 8})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Programs, 1)
	assert.Equal(t, "Yoga+", snap.Programs[0].Title)
	assert.Equal(t, "Yoga+", snap.Current.Title)
}
