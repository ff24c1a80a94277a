package commands

import (
	"context"
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/school"
	"depot/internal/pkg/guard"
)

var ErrCreateSchoolCommandIsNotConstructed = errors.New(
	"CreateSchoolCommand must be created via NewCreateSchoolCommand constructor",
)

// CreateSchoolCommand registers a delivery destination. Field validation is
// left to school.NewSchool, which the constructor runs eagerly.
type CreateSchoolCommand struct {
	school *school.School

	guard guard.ConstructorGuard
}

func NewCreateSchoolCommand(
	schoolID kernel.UUID,
	name, inepCode string,
	kind school.Kind,
	level school.Level,
	address school.Address,
) (CreateSchoolCommand, error) {
	s, err := school.NewSchool(schoolID, name, inepCode, kind, level, address)
	if err != nil {
		return CreateSchoolCommand{}, err
	}
	return CreateSchoolCommand{school: s, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateSchoolCommand) Validate() error {
	return c.guard.Validate(ErrCreateSchoolCommandIsNotConstructed)
}

type CreateSchoolCommandHandler struct {
	uowFactory SchoolUoWFactory
}

func NewCreateSchoolCommandHandler(uowFactory SchoolUoWFactory) CreateSchoolCommandHandler {
	return CreateSchoolCommandHandler{uowFactory: uowFactory}
}

func (h *CreateSchoolCommandHandler) Handle(ctx context.Context, cmd CreateSchoolCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SchoolRepository().Add(ctx, cmd.school); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
