package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubapi/internal/model"
	"clubapi/internal/repository"
)

// MemberPostgres is a PostgreSQL implementation of repository.MemberRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type MemberPostgres struct {
	db *sql.DB
}

// NewMemberPostgres creates a new MemberPostgres repository.
func NewMemberPostgres(db *sql.DB) *MemberPostgres {
	return &MemberPostgres{db: db}
}

var _ repository.MemberRepository = (*MemberPostgres)(nil)

const memberColumns = "id, first_name, last_name, gender, birth_date, country, consent, photo_path, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(rs rowScanner) (*model.Member, error) {
	var m model.Member
	if err := rs.Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.Gender,
		&m.BirthDate,
		&m.Country,
		&m.Consent,
		&m.PhotoPath,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new member row and returns the stored record.
func (r *MemberPostgres) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	const q = `
		INSERT INTO members (first_name, last_name, gender, birth_date, country, consent, photo_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + memberColumns + `
	`
	row := r.db.QueryRowContext(ctx, q,
		m.FirstName,
		m.LastName,
		m.Gender,
		m.BirthDate,
		m.Country,
		m.Consent,
		m.PhotoPath,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return scanMember(row)
}

// FindByID fetches a single member by its ID.
func (r *MemberPostgres) FindByID(ctx context.Context, id int64) (*model.Member, error) {
	const q = `
		SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1
	`
	return scanMember(r.db.QueryRowContext(ctx, q, id))
}

// List returns members matching the filter using LIMIT/OFFSET pagination and a total count.
// The COUNT and page queries share one WHERE clause so Total always matches the filter.
func (r *MemberPostgres) List(ctx context.Context, f repository.MemberFilter, order repository.Order, pq repository.PageQuery) (*repository.PageResult[model.Member], error) {
	where, args := buildMemberWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM members"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	orderClause, err := memberOrderClause(order)
	if err != nil {
		return nil, err
	}

	q := "SELECT " + memberColumns + " FROM members" + where + orderClause +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Member]{
		Items: items,
		Total: total,
	}, nil
}

// Update rewrites the mutable columns of an existing member and returns the stored record.
// photo_path is managed separately by UpdatePhotoPath.
func (r *MemberPostgres) Update(ctx context.Context, m *model.Member) (*model.Member, error) {
	const q = `
		UPDATE members
		SET first_name = $2, last_name = $3, gender = $4, birth_date = $5, country = $6, consent = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + memberColumns + `
	`
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.FirstName,
		m.LastName,
		m.Gender,
		m.BirthDate,
		m.Country,
		m.Consent,
		m.UpdatedAt,
	)
	return scanMember(row)
}

// UpdatePhotoPath sets the photo_path column for a member.
func (r *MemberPostgres) UpdatePhotoPath(ctx context.Context, id int64, photoPath string) error {
	const q = `UPDATE members SET photo_path = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, photoPath)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a member by ID. It reports sql.ErrNoRows when no row matched,
// so callers can distinguish a missing record.
func (r *MemberPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM members WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// buildMemberWhere translates a MemberFilter into a WHERE clause and its arguments.
func buildMemberWhere(f repository.MemberFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Gender != "" {
		args = append(args, f.Gender)
		conds = append(conds, fmt.Sprintf("gender = $%d", len(args)))
	}
	if f.Country != "" {
		args = append(args, f.Country)
		conds = append(conds, fmt.Sprintf("country = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n))
	}
	if f.ConsentOnly {
		conds = append(conds, "consent = TRUE")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// memberOrderClause builds the ORDER BY clause. Field names pass through the
// shared whitelist before interpolation; the ID tiebreaker keeps pages stable.
func memberOrderClause(o repository.Order) (string, error) {
	if o.Field == "" {
		return " ORDER BY created_at DESC, id DESC", nil
	}
	if !repository.IsMemberOrderField(o.Field) {
		return "", fmt.Errorf("unsupported order field %q", o.Field)
	}
	dir := o.Direction
	if dir == "" {
		dir = repository.ASC
	}
	if dir != repository.ASC && dir != repository.DESC {
		return "", fmt.Errorf("unsupported order direction %q", dir)
	}
	return " ORDER BY " + o.Field + " " + dir + ", id " + dir, nil
}
