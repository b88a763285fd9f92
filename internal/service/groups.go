package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_group_service.go -package=mocks -mock_names=GroupService=MockGroupService notesboard/internal/service GroupService

import (
	"context"
	"errors"
	"strings"

	"notesboard/internal/contextutil"
	"notesboard/internal/storage"
)

// GroupRequest represents a group create or rename in the domain layer.
type GroupRequest struct {
	Name string
}

// GroupService provides group management. Groups never cascade to their notes.
type GroupService interface {
	List(ctx context.Context) ([]storage.GroupRecord, error)
	Get(ctx context.Context, id int64) (*storage.GroupRecord, error)
	Create(ctx context.Context, req GroupRequest) (*storage.GroupRecord, error)
	Update(ctx context.Context, id int64, req GroupRequest) (*storage.GroupRecord, error)
	Delete(ctx context.Context, id int64) error
}

type groupService struct {
	groups storage.GroupStore
}

// NewGroupService creates a new GroupService.
func NewGroupService(groups storage.GroupStore) GroupService {
	return &groupService{groups: groups}
}

func (s *groupService) List(ctx context.Context) ([]storage.GroupRecord, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list groups")
	}
	return groups, nil
}

func (s *groupService) Get(ctx context.Context, id int64) (*storage.GroupRecord, error) {
	group, err := s.groups.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, WrapError(err, "failed to get group")
	}
	return group, nil
}

func (s *groupService) Create(ctx context.Context, req GroupRequest) (*storage.GroupRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateGroup(req.Name); err != nil {
		logger.WarnContext(ctx, "invalid group", "error", err)
		return nil, err
	}

	group := &storage.GroupRecord{Name: req.Name}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, WrapError(err, "failed to create group")
	}

	logger.InfoContext(ctx, "group created", "id", group.ID)
	return group, nil
}

func (s *groupService) Update(ctx context.Context, id int64, req GroupRequest) (*storage.GroupRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateGroup(req.Name); err != nil {
		logger.WarnContext(ctx, "invalid group update", "id", id, "error", err)
		return nil, err
	}

	group := &storage.GroupRecord{ID: id, Name: req.Name}
	if err := s.groups.Update(ctx, group); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to update group")
	}

	logger.InfoContext(ctx, "group updated", "id", id)
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, id int64) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete group")
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "group deleted", "id", id)
	return nil
}

func validateGroup(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	return nil
}
