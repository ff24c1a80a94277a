// Package schoolrepo persists schools.
package schoolrepo

import (
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/school"

	"github.com/google/uuid"
)

// SchoolDTO is a row of the schools table.
type SchoolDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	INEPCode  *string   `gorm:"column:inep_code;type:varchar(8)"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	Level     string    `gorm:"type:varchar(20);not null"`
	Street    string    `gorm:"not null"`
	District  string    `gorm:"not null"`
	City      string    `gorm:"not null"`
	State     string    `gorm:"type:char(2);not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time
}

func (SchoolDTO) TableName() string {
	return "schools"
}

func fromDomain(aggregate *school.School) SchoolDTO {
	address := aggregate.Address()
	dto := SchoolDTO{
		ID:       aggregate.ID().Value(),
		Name:     aggregate.Name(),
		Kind:     string(aggregate.Kind()),
		Level:    string(aggregate.Level()),
		Street:   address.Street,
		District: address.District,
		City:     address.City,
		State:    address.State,
		Active:   aggregate.IsActive(),
	}
	if code := aggregate.INEPCode(); code != "" {
		dto.INEPCode = &code
	}
	return dto
}

func toDomain(dto SchoolDTO) (*school.School, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var inepCode string
	if dto.INEPCode != nil {
		inepCode = *dto.INEPCode
	}

	return school.RestoreSchool(
		id,
		dto.Name,
		inepCode,
		school.Kind(dto.Kind),
		school.Level(dto.Level),
		school.Address{
			Street:   dto.Street,
			District: dto.District,
			City:     dto.City,
			State:    dto.State,
		},
		dto.Active,
	)
}
