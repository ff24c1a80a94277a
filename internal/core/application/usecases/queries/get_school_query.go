package queries

import (
	"context"
	"database/sql"
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/school"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetSchoolQueryIsNotConstructed = errors.New("GetSchoolQuery must be created via NewGetSchoolQuery constructor")

type GetSchoolQuery struct { //nolint:recvcheck //using for validation
	schoolID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSchoolQuery(schoolID kernel.UUID) (GetSchoolQuery, error) {
	if err := schoolID.Validate(); err != nil {
		return GetSchoolQuery{}, errs.NewValueIsRequiredErrorWithCause("school id", err)
	}
	return GetSchoolQuery{schoolID: schoolID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSchoolQuery) Validate() error {
	return q.guard.Validate(ErrGetSchoolQueryIsNotConstructed)
}

// SchoolView describes a school together with how many of its orders are
// still open.
type SchoolView struct {
	ID         kernel.UUID
	Name       string
	INEPCode   string
	Kind       school.Kind
	Level      school.Level
	Address    school.Address
	Active     bool
	OpenOrders int
}

type GetSchoolQueryHandler struct {
	db *gorm.DB
}

func NewGetSchoolQueryHandler(db *gorm.DB) GetSchoolQueryHandler {
	return GetSchoolQueryHandler{db: db}
}

func (h GetSchoolQueryHandler) Handle(ctx context.Context, query GetSchoolQuery) (SchoolView, error) {
	if err := query.Validate(); err != nil {
		return SchoolView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
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
		WHERE s.id = ?
	`, nonTerminalStatuses(), query.schoolID.Value()).Row()

	view, err := scanSchool(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SchoolView{}, errs.NewObjectNotFoundError("school", query.schoolID.String())
		}
		return SchoolView{}, err
	}
	return view, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchool(row rowScanner) (SchoolView, error) {
	var (
		view        SchoolView
		id          uuid.UUID
		inepCode    sql.NullString
		kind, level string
	)
	if err := row.Scan(
		&id,
		&view.Name,
		&inepCode,
		&kind,
		&level,
		&view.Address.Street,
		&view.Address.District,
		&view.Address.City,
		&view.Address.State,
		&view.Active,
		&view.OpenOrders,
	); err != nil {
		return SchoolView{}, err
	}

	schoolID, err := storedUUID(id)
	if err != nil {
		return SchoolView{}, err
	}
	view.ID = schoolID
	view.INEPCode = inepCode.String
	view.Kind = school.Kind(kind)
	view.Level = school.Level(level)
	return view, nil
}
