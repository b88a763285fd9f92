package service_test

import (
	"context"
	"errors"
	"testing"

	"notesboard/internal/service"
	"notesboard/internal/storage"
	storagemocks "notesboard/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func TestGroupService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       service.GroupRequest
		mockSetup func(*storagemocks.MockGroupStore)
		wantErr   error
	}{
		{
			name: "valid name",
			req:  service.GroupRequest{Name: "Work"},
			mockSetup: func(m *storagemocks.MockGroupStore) {
				m.EXPECT().Create(gomock.Any(), &storage.GroupRecord{Name: "Work"}).
					DoAndReturn(func(_ context.Context, g *storage.GroupRecord) error {
						g.ID = 1
						return nil
					})
			},
		},
		{
			name:      "blank name",
			req:       service.GroupRequest{Name: " "},
			mockSetup: func(*storagemocks.MockGroupStore) {},
			wantErr:   service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			groups := storagemocks.NewMockGroupStore(ctrl)
			tt.mockSetup(groups)

			group, err := service.NewGroupService(groups).Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				var validationErr *service.ValidationError
				if !errors.Is(err, tt.wantErr) || !errors.As(err, &validationErr) || validationErr.Field != "name" {
					t.Errorf("Create() error = %v, want name validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if group.ID != 1 || group.Name != "Work" {
				t.Errorf("Create() = %+v", group)
			}
		})
	}
}

func TestGroupService_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groups := storagemocks.NewMockGroupStore(ctrl)
	groups.EXPECT().Get(gomock.Any(), int64(8)).Return(nil, storage.ErrNotFound)
	groups.EXPECT().Update(gomock.Any(), gomock.Any()).Return(storage.ErrNotFound)
	groups.EXPECT().Delete(gomock.Any(), int64(8)).Return(storage.ErrNotFound)

	svc := service.NewGroupService(groups)
	ctx := context.Background()

	if _, err := svc.Get(ctx, 8); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, 8, service.GroupRequest{Name: "x"}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, 8); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestGroupService_ListWrapsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groups := storagemocks.NewMockGroupStore(ctrl)
	groups.EXPECT().List(gomock.Any()).Return(nil, errors.New("db closed"))

	_, err := service.NewGroupService(groups).List(context.Background())
	if err == nil || err.Error() != "failed to list groups: db closed" {
		t.Errorf("List() error = %v", err)
	}
}
