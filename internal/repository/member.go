package repository

import (
	"context"

	"clubapi/internal/model"
)

// MemberRepository defines data access for membership records using SQL queries only.
// No business logic here, strictly persistence operations.
type MemberRepository interface {
	// Create inserts a new member row and returns the stored record,
	// including the DB-assigned numeric ID.
	Create(ctx context.Context, m *model.Member) (*model.Member, error)

	// FindByID returns a member by its ID.
	FindByID(ctx context.Context, id int64) (*model.Member, error)

	// List returns one page of members and the total row count for the given filter.
	List(ctx context.Context, f MemberFilter, order Order, pq PageQuery) (*PageResult[model.Member], error)

	// Update rewrites every mutable column of an existing member except photo_path.
	// It returns sql.ErrNoRows when the member does not exist.
	Update(ctx context.Context, m *model.Member) (*model.Member, error)

	// UpdatePhotoPath sets only the photo_path column.
	// It returns sql.ErrNoRows when the member does not exist.
	UpdatePhotoPath(ctx context.Context, id int64, photoPath string) error

	// Delete removes a member by ID.
	// It returns sql.ErrNoRows when the member does not exist.
	Delete(ctx context.Context, id int64) error
}

// MemberFilter narrows list queries. Zero values mean "no constraint".
type MemberFilter struct {
	Gender      model.Gender
	Country     string
	Search      string // case-insensitive match against first or last name
	ConsentOnly bool
}

// memberOrderFields are the fields list callers may order by. They match the
// column names of the members table, so implementations can interpolate them
// directly once whitelisted.
var memberOrderFields = map[string]struct{}{
	"id":         {},
	"first_name": {},
	"last_name":  {},
	"birth_date": {},
	"country":    {},
	"created_at": {},
}

// IsMemberOrderField reports whether f may be used in Order.Field for member lists.
func IsMemberOrderField(f string) bool {
	_, ok := memberOrderFields[f]
	return ok
}
