package stores

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

type ProgramsState struct {
	Status
	Programs []models.Program
	Enrolled []models.Program
	Current  *models.Program
	// Pending maps program IDs with a tentative local change to the local
	// version that produced it. Entries disappear once the server confirms.
	Pending map[string]int64
}

func clonePrograms(s ProgramsState) ProgramsState {
	s.Programs = slices.Clone(s.Programs)
	s.Enrolled = slices.Clone(s.Enrolled)
	s.Current = ptrClone(s.Current)
	s.Pending = maps.Clone(s.Pending)
	return s
}

func programID(p models.Program) string { return p.ProgramID }

type tentative struct {
	version int64
	program models.Program
}

// Programs applies enroll and cancel optimistically: the local state changes
// at once and a background fetch later replaces it with the server's view.
// Fetches are numbered; a result older than the last applied one is dropped.
type Programs struct {
	*store[ProgramsState]
	api client.Programs

	// guarded by store.mu
	version    int64
	generation int64
	applied    int64
	tentative  map[string]tentative

	wg sync.WaitGroup
}

func NewPrograms(api client.Programs) *Programs {
	return &Programs{
		store:     newStore(clonePrograms),
		api:       api,
		tentative: make(map[string]tentative),
	}
}

func (s *Programs) Snapshot() ProgramsState {
	st, status := s.snapshot()
	st.Status = status
	return st
}

// Wait blocks until background reconciliations finish.
func (s *Programs) Wait() {
	s.wg.Wait()
}

func (s *Programs) reset() {
	s.wg.Wait()
	s.mu.Lock()
	s.state = ProgramsState{}
	s.err = ""
	s.tentative = make(map[string]tentative)
	// fetches started before the reset must not repopulate the store
	s.generation++
	s.applied = s.generation
	s.mu.Unlock()
	s.notify()
}

// FetchAll loads all programs. The result is discarded when a fetch started
// later has already been applied.
func (s *Programs) FetchAll(ctx context.Context) ([]models.Program, error) {
	s.mu.Lock()
	s.generation++
	gen, since := s.generation, s.version
	s.mu.Unlock()

	return act(s.store, func() ([]models.Program, error) {
		return s.api.List(ctx)
	}, func(st *ProgramsState, v []models.Program) {
		s.applyList(st, gen, since, v)
	})
}

// applyList runs under s.mu. Tentative changes made after the fetch started
// stay on top of the server's list until their own reconciliation lands.
func (s *Programs) applyList(st *ProgramsState, gen, since int64, list []models.Program) {
	if gen < s.applied {
		return
	}
	s.applied = gen

	programs := slices.Clone(list)
	for id, t := range s.tentative {
		if t.version > since {
			programs = replaceByID(programs, programID, t.program)
			continue
		}
		delete(s.tentative, id)
	}
	st.Programs = programs
	st.Pending = s.pendingLocked()

	if st.Current != nil {
		for _, p := range programs {
			if p.ProgramID == st.Current.ProgramID {
				p := p
				st.Current = &p
				break
			}
		}
	}
}

func (s *Programs) pendingLocked() map[string]int64 {
	if len(s.tentative) == 0 {
		return nil
	}
	out := make(map[string]int64, len(s.tentative))
	for id, t := range s.tentative {
		out[id] = t.version
	}
	return out
}

func (s *Programs) FetchByID(ctx context.Context, id string) (*models.Program, error) {
	return act(s.store, func() (*models.Program, error) {
		return s.api.Get(ctx, id)
	}, func(st *ProgramsState, v *models.Program) {
		st.Current = v
	})
}

// FetchEnrolled loads the programs the logged-in user is enrolled in.
func (s *Programs) FetchEnrolled(ctx context.Context) ([]models.Program, error) {
	return act(s.store, func() ([]models.Program, error) {
		return s.api.Enrolled(ctx)
	}, func(st *ProgramsState, v []models.Program) {
		st.Enrolled = v
	})
}

// Enroll marks the program as enrolled locally, calls the API and schedules
// a reconciliation. A failed call rolls the tentative change back.
func (s *Programs) Enroll(ctx context.Context, id string) error {
	return s.optimistic(ctx, id, true, s.api.Enroll)
}

// CancelEnrollment is the inverse of Enroll.
func (s *Programs) CancelEnrollment(ctx context.Context, id string) error {
	return s.optimistic(ctx, id, false, s.api.CancelEnrollment)
}

func (s *Programs) optimistic(ctx context.Context, id string, enroll bool, call func(context.Context, string) error) error {
	s.mu.Lock()
	s.version++
	version := s.version
	prevTentative, hadTentative := s.tentative[id]
	var prevEnrolled *models.Program
	for _, p := range s.state.Enrolled {
		if p.ProgramID == id {
			p := p
			prevEnrolled = &p
		}
	}

	for i := range s.state.Programs {
		p := &s.state.Programs[i]
		if p.ProgramID != id {
			continue
		}
		applyEnrollment(p, enroll)
		s.tentative[id] = tentative{version: version, program: *p}
		if enroll {
			s.state.Enrolled = replaceByID(s.state.Enrolled, programID, *p)
		}
	}
	if !enroll {
		s.state.Enrolled = removeByID(s.state.Enrolled, programID, id)
	}
	if s.state.Current != nil && s.state.Current.ProgramID == id {
		applyEnrollment(s.state.Current, enroll)
	}
	s.state.Pending = s.pendingLocked()
	s.mu.Unlock()
	s.notify()

	err := act0(s.store, func() error { return call(ctx, id) }, nil)
	if err != nil {
		s.update(func(st *ProgramsState) {
			// a newer local change owns the entry now
			if t, ok := s.tentative[id]; !ok || t.version != version {
				return
			}
			for i := range st.Programs {
				if st.Programs[i].ProgramID == id {
					applyEnrollment(&st.Programs[i], !enroll)
				}
			}
			if st.Current != nil && st.Current.ProgramID == id {
				applyEnrollment(st.Current, !enroll)
			}
			st.Enrolled = removeByID(st.Enrolled, programID, id)
			if prevEnrolled != nil {
				st.Enrolled = append(st.Enrolled, *prevEnrolled)
			}
			if hadTentative {
				s.tentative[id] = prevTentative
			} else {
				delete(s.tentative, id)
			}
			st.Pending = s.pendingLocked()
		})
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.reconcile(context.WithoutCancel(ctx))
	}()
	return nil
}

// reconcile replaces the collection with the server's state. A failure is
// recorded as the store error and keeps the tentative state; the next fetch
// settles it.
func (s *Programs) reconcile(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen, since := s.generation, s.version
	s.mu.Unlock()

	list, err := s.api.List(ctx)
	if err != nil {
		_ = s.fail(err)
		return
	}
	s.update(func(st *ProgramsState) {
		s.applyList(st, gen, since, list)
	})

	enrolled, err := s.api.Enrolled(ctx)
	if err != nil {
		_ = s.fail(err)
		return
	}
	s.update(func(st *ProgramsState) {
		if s.version == since {
			st.Enrolled = enrolled
		}
	})
}

func applyEnrollment(p *models.Program, enroll bool) {
	if p.IsEnrolled == enroll {
		return
	}
	p.IsEnrolled = enroll
	if enroll {
		p.EnrolledCount++
	} else if p.EnrolledCount > 0 {
		p.EnrolledCount--
	}
}

// Create adds a program (managers only).
func (s *Programs) Create(ctx context.Context, req models.ProgramRequest) (*models.Program, error) {
	return act(s.store, func() (*models.Program, error) {
		return s.api.Create(ctx, req)
	}, func(st *ProgramsState, v *models.Program) {
		st.Programs = append(st.Programs, *v)
	})
}

func (s *Programs) Update(ctx context.Context, id string, req models.ProgramRequest) (*models.Program, error) {
	return act(s.store, func() (*models.Program, error) {
		return s.api.Update(ctx, id, req)
	}, func(st *ProgramsState, v *models.Program) {
		st.Programs = replaceByID(st.Programs, programID, *v)
		if st.Current != nil && st.Current.ProgramID == id {
			st.Current = v
		}
	})
}
