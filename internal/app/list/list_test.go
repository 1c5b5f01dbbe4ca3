package list_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/app/list"
	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage/storagemock"
)

func TestService_List(t *testing.T) {
	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		mock      func(m *storagemock.MockRepository)
		expOrders []model.Order
		expErr    bool
	}{
		"orders should be returned as stored": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListOrders", mock.Anything).Once().Return([]model.Order{
					{ID: "id-2", Customer: "Nowak", Status: "confirmed", CreatedAt: createdAt.Add(time.Hour)},
					{ID: "id-1", Customer: "Kowalski", Status: "new", CreatedAt: createdAt},
				}, nil)
			},
			expOrders: []model.Order{
				{ID: "id-2", Customer: "Nowak", Status: "confirmed", CreatedAt: createdAt.Add(time.Hour)},
				{ID: "id-1", Customer: "Kowalski", Status: "new", CreatedAt: createdAt},
			},
		},

		"a repository failure should propagate": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListOrders", mock.Anything).Once().Return(nil, fmt.Errorf("db gone"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			m := &storagemock.MockRepository{}
			test.mock(m)

			svc, err := list.NewService(list.ServiceConfig{Repository: m, Logger: log.Noop})
			require.NoError(err)

			got, err := svc.List(context.Background())

			if test.expErr {
				require.Error(err)
			} else {
				require.NoError(err)
				assert.Equal(t, test.expOrders, got)
			}

			m.AssertExpectations(t)
		})
	}
}
