package admin

import (
	"context"
	"strconv"

	"clubapi/internal/model"
	"clubapi/internal/repository"
	"clubapi/internal/service"
)

// MemberResource exposes the member roster to the admin site.
type MemberResource struct {
	svc service.MemberService
}

// NewMemberResource wraps the member service as an admin resource.
func NewMemberResource(svc service.MemberService) *MemberResource {
	return &MemberResource{svc: svc}
}

func (r *MemberResource) Name() string { return "Members" }

func (r *MemberResource) Slug() string { return "members" }

func (r *MemberResource) Columns() []string {
	return []string{"ID", "Name", "Gender", "Birth date", "Country", "Consent"}
}

// ListRows pages through members ordered by newest first, the same default the
// JSON API uses.
func (r *MemberResource) ListRows(ctx context.Context, limit, offset int) ([][]string, int, error) {
	res, err := r.svc.List(ctx, service.ListParams{
		Limit:  limit,
		Offset: offset,
		Order:  repository.Order{Field: "created_at", Direction: repository.DESC},
	})
	if err != nil {
		return nil, 0, err
	}

	rows := make([][]string, 0, len(res.Items))
	for i := range res.Items {
		m := &res.Items[i]
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.FullName(),
			m.Gender.String(),
			m.BirthDate.Format(model.DateLayout),
			m.Country,
			strconv.FormatBool(m.Consent),
		})
	}
	return rows, res.Total, nil
}
