package stores

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

type UsersState struct {
	Status
	Users    []models.User
	Selected *models.User
}

func cloneUsers(s UsersState) UsersState {
	s.Users = slices.Clone(s.Users)
	s.Selected = ptrClone(s.Selected)
	return s
}

func userID(u models.User) string { return u.UserID }

type Users struct {
	*store[UsersState]
	api client.Users
}

func NewUsers(api client.Users) *Users {
	return &Users{store: newStore(cloneUsers), api: api}
}

func (s *Users) Snapshot() UsersState {
	st, status := s.snapshot()
	st.Status = status
	return st
}

// CountByRole tallies the loaded users.
func (s *Users) CountByRole() map[models.Role]int {
	st, _ := s.snapshot()
	out := make(map[models.Role]int, len(models.AllRoles))
	for _, u := range st.Users {
		out[u.Role]++
	}
	return out
}

// FetchAll lists every account (managers only).
func (s *Users) FetchAll(ctx context.Context) ([]models.User, error) {
	return act(s.store, func() ([]models.User, error) {
		return s.api.List(ctx)
	}, func(st *UsersState, v []models.User) {
		st.Users = v
	})
}

func (s *Users) FetchByID(ctx context.Context, id string) (*models.User, error) {
	return act(s.store, func() (*models.User, error) {
		return s.api.Get(ctx, id)
	}, func(st *UsersState, v *models.User) {
		st.Selected = v
	})
}

func (s *Users) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	return act(s.store, func() (*models.User, error) {
		return s.api.UpdateProfile(ctx, id, req)
	}, func(st *UsersState, v *models.User) {
		for i := range st.Users {
			if st.Users[i].UserID == id {
				st.Users[i] = *v
			}
		}
		if st.Selected != nil && st.Selected.UserID == id {
			st.Selected = v
		}
	})
}

// Delete removes an account (managers only).
func (s *Users) Delete(ctx context.Context, id string) error {
	return act0(s.store, func() error {
		return s.api.Delete(ctx, id)
	}, func(st *UsersState) {
		st.Users = removeByID(st.Users, userID, id)
		if st.Selected != nil && st.Selected.UserID == id {
			st.Selected = nil
		}
	})
}
