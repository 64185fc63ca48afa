package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var _ repository.LaunchRepository = (*LaunchRepo)(nil)

// LaunchRepo lanzamientos en memoria.
type LaunchRepo struct {
	s  *Store
	tx bool
}

func (r *LaunchRepo) Create(ctx context.Context, l *entity.Launch) error {
	return r.s.do(r.tx, "launch.create", func(st *state) error {
		if _, ok := st.launches[l.ID]; ok {
			return domain.NewDependencyError("launch.create", errDuplicate(l.ID))
		}
		st.launches[l.ID] = *l
		return nil
	})
}

func (r *LaunchRepo) GetByID(ctx context.Context, id string) (*entity.Launch, error) {
	var out *entity.Launch
	err := r.s.do(r.tx, "launch.get", func(st *state) error {
		if l, ok := st.launches[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LaunchRepo) Update(ctx context.Context, l *entity.Launch) error {
	return r.s.do(r.tx, "launch.update", func(st *state) error {
		cur, ok := st.launches[l.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *l
		next.CreatedAt = cur.CreatedAt
		st.launches[l.ID] = next
		return nil
	})
}

func (r *LaunchRepo) Delete(ctx context.Context, id string) error {
	return r.s.do(r.tx, "launch.delete", func(st *state) error {
		if _, ok := st.launches[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.launches, id)
		delete(st.launchItems, id)
		return nil
	})
}

func (r *LaunchRepo) List(ctx context.Context, filter repository.LaunchFilter, limit, offset int) ([]*entity.Launch, error) {
	var out []*entity.Launch
	err := r.s.do(r.tx, "launch.list", func(st *state) error {
		all := make([]*entity.Launch, 0, len(st.launches))
		for _, l := range st.launches {
			if filter.Type != "" && !inventory.SameKind(l.Type, filter.Type) {
				continue
			}
			l := l
			all = append(all, &l)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.After(all[j].CreatedAt)
			}
			return all[i].ID > all[j].ID
		})
		lo, hi := page(len(all), limit, offset)
		out = all[lo:hi]
		return nil
	})
	return out, err
}

func (r *LaunchRepo) CreateItems(ctx context.Context, launchID string, items []entity.LaunchItem) error {
	return r.s.do(r.tx, "launch.create_items", func(st *state) error {
		if _, ok := st.launches[launchID]; !ok {
			return domain.NewDependencyError("launch.create_items", errMissingParent("launch", launchID))
		}
		for _, it := range items {
			it.LaunchID = launchID
			st.launchItems[launchID] = append(st.launchItems[launchID], it)
		}
		return nil
	})
}

func (r *LaunchRepo) ListItems(ctx context.Context, launchID string) ([]entity.LaunchItem, error) {
	var out []entity.LaunchItem
	err := r.s.do(r.tx, "launch.list_items", func(st *state) error {
		out = append(out, st.launchItems[launchID]...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
		return nil
	})
	return out, err
}

func (r *LaunchRepo) DeleteItems(ctx context.Context, launchID string) error {
	return r.s.do(r.tx, "launch.delete_items", func(st *state) error {
		delete(st.launchItems, launchID)
		return nil
	})
}
