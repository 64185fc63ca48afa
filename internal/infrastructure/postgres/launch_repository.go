package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var _ repository.LaunchRepository = (*LaunchRepo)(nil)

const launchColumns = `id, type, status, emission_date, reception_date, COALESCE(provider_id, ''), COALESCE(unit_id, ''),
	COALESCE(note_number, ''), COALESCE(notes, ''), total_value, created_at, updated_at`

// LaunchRepo cabeceras e ítems de lanzamientos sobre PostgreSQL.
type LaunchRepo struct {
	q Querier
}

// NewLaunchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLaunchRepository(q Querier) *LaunchRepo {
	return &LaunchRepo{q: q}
}

func (r *LaunchRepo) Create(ctx context.Context, l *entity.Launch) error {
	query := `
		INSERT INTO launches (id, type, status, emission_date, reception_date, provider_id, unit_id, note_number, notes, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Type, l.Status, timeOrNil(l.EmissionDate), timeOrNil(l.ReceptionDate),
		nullIfEmpty(l.ProviderID), nullIfEmpty(l.UnitID), nullIfEmpty(l.NoteNumber), nullIfEmpty(l.Notes),
		l.TotalValue, l.CreatedAt, l.UpdatedAt,
	)
	return wrap("insert launch", err)
}

func (r *LaunchRepo) GetByID(ctx context.Context, id string) (*entity.Launch, error) {
	l, err := scanLaunch(r.q.QueryRow(ctx, `SELECT `+launchColumns+` FROM launches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get launch", err)
	}
	return l, nil
}

// Update sobrescribe la cabecera completa (created_at se conserva).
func (r *LaunchRepo) Update(ctx context.Context, l *entity.Launch) error {
	query := `
		UPDATE launches SET type = $2, status = $3, emission_date = $4, reception_date = $5, provider_id = $6,
			unit_id = $7, note_number = $8, notes = $9, total_value = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		l.ID, l.Type, l.Status, timeOrNil(l.EmissionDate), timeOrNil(l.ReceptionDate),
		nullIfEmpty(l.ProviderID), nullIfEmpty(l.UnitID), nullIfEmpty(l.NoteNumber), nullIfEmpty(l.Notes),
		l.TotalValue, l.UpdatedAt,
	)
	if err != nil {
		return wrap("update launch", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LaunchRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM launches WHERE id = $1`, id)
	if err != nil {
		return wrap("delete launch", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List más recientes primero; filter.Type compara sin mayúsculas ni espacios.
func (r *LaunchRepo) List(ctx context.Context, filter repository.LaunchFilter, limit, offset int) ([]*entity.Launch, error) {
	query := `SELECT ` + launchColumns + ` FROM launches
		WHERE ($1 = '' OR lower(trim(type)) = lower(trim($1)))
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, filter.Type, limitOrAll(limit), offset)
	if err != nil {
		return nil, wrap("list launches", err)
	}
	defer rows.Close()
	var list []*entity.Launch
	for rows.Next() {
		l, err := scanLaunch(rows)
		if err != nil {
			return nil, wrap("scan launch", err)
		}
		list = append(list, l)
	}
	return list, wrap("list launches", rows.Err())
}

func (r *LaunchRepo) CreateItems(ctx context.Context, launchID string, items []entity.LaunchItem) error {
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(`
			INSERT INTO launch_items (id, launch_id, position, product_id, quantity, unit_price, validity, sector_id, category_id, unit_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, launchID, it.Position, nullIfEmpty(it.ProductID), it.Quantity, it.UnitPrice,
			timeOrNil(it.Validity), nullIfEmpty(it.SectorID), nullIfEmpty(it.CategoryID), nullIfEmpty(it.UnitID),
		)
	}
	return execBatch(ctx, r.q, "insert launch items", b)
}

func (r *LaunchRepo) ListItems(ctx context.Context, launchID string) ([]entity.LaunchItem, error) {
	query := `
		SELECT id, launch_id, position, COALESCE(product_id, ''), quantity, unit_price, validity,
			COALESCE(sector_id, ''), COALESCE(category_id, ''), COALESCE(unit_id, '')
		FROM launch_items WHERE launch_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, launchID)
	if err != nil {
		return nil, wrap("list launch items", err)
	}
	defer rows.Close()
	var items []entity.LaunchItem
	for rows.Next() {
		var it entity.LaunchItem
		if err := rows.Scan(&it.ID, &it.LaunchID, &it.Position, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.Validity, &it.SectorID, &it.CategoryID, &it.UnitID); err != nil {
			return nil, wrap("scan launch item", err)
		}
		items = append(items, it)
	}
	return items, wrap("list launch items", rows.Err())
}

func (r *LaunchRepo) DeleteItems(ctx context.Context, launchID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM launch_items WHERE launch_id = $1`, launchID)
	return wrap("delete launch items", err)
}

func scanLaunch(row pgx.Row) (*entity.Launch, error) {
	var l entity.Launch
	err := row.Scan(&l.ID, &l.Type, &l.Status, &l.EmissionDate, &l.ReceptionDate, &l.ProviderID, &l.UnitID,
		&l.NoteNumber, &l.Notes, &l.TotalValue, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
