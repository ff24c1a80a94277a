package queries

import (
	"context"
	"errors"

	"depot/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListSchoolsQueryIsNotConstructed = errors.New("ListSchoolsQuery must be created via NewListSchoolsQuery constructor")

// ListSchoolsQuery lists schools by name. Inactive schools are left out
// unless asked for.
type ListSchoolsQuery struct { //nolint:recvcheck //using for validation
	includeInactive bool

	guard guard.ConstructorGuard
}

func NewListSchoolsQuery(includeInactive bool) ListSchoolsQuery {
	return ListSchoolsQuery{includeInactive: includeInactive, guard: guard.NewConstructorGuard()}
}

func (q ListSchoolsQuery) Validate() error {
	return q.guard.Validate(ErrListSchoolsQueryIsNotConstructed)
}

type ListSchoolsQueryHandler struct {
	db *gorm.DB
}

func NewListSchoolsQueryHandler(db *gorm.DB) ListSchoolsQueryHandler {
	return ListSchoolsQueryHandler{db: db}
}

func (h ListSchoolsQueryHandler) Handle(ctx context.Context, query ListSchoolsQuery) ([]SchoolView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			s.inep_code,
			s.kind,
			s.level,
			s.street,
			s.district,
			s.city,
			s.state,
			s.active,
			(SELECT count(*) FROM orders o WHERE o.school_id = s.id AND o.status IN ?)
		FROM schools s
		WHERE s.active OR ?
		ORDER BY s.name, s.id
	`, nonTerminalStatuses(), query.includeInactive).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schools := make([]SchoolView, 0)
	for rows.Next() {
		view, scanErr := scanSchool(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		schools = append(schools, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return schools, nil
}
