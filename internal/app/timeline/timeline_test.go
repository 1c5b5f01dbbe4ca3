package timeline_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/app/timeline"
	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config timeline.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: timeline.ServiceConfig{
				Repository: &storagemock.MockRepository{},
				Logger:     log.Noop,
			},
		},
		"missing repository should fail": {
			config: timeline.ServiceConfig{Logger: log.Noop},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := timeline.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	order := &model.Order{
		ID:        "id-1",
		Customer:  "Kowalski sp. z o.o.",
		Kind:      "installation",
		Status:    "shipping",
		NoteLog:   "a remark",
		CreatedAt: createdAt,
	}

	m := &storagemock.MockRepository{}
	m.On("GetOrder", mock.Anything, "id-1").Once().Return(order, nil)

	svc, err := timeline.NewService(timeline.ServiceConfig{Repository: m, Logger: log.Noop})
	require.NoError(err)

	resp, err := svc.Run(context.Background(), timeline.Request{OrderID: "id-1"})
	require.NoError(err)

	// The raw status is echoed back, and the entries are exactly what the
	// builder derives for this snapshot.
	assert.Equal("shipping", resp.CurrentStatus)
	assert.Equal(*order, resp.Order)
	expected := lifecycle.NewBuilder(lifecycle.BuilderConfig{}).Build(*order)
	assert.Equal(expected, resp.Entries)

	m.AssertExpectations(t)
}

func TestService_RunNotFound(t *testing.T) {
	require := require.New(t)

	m := &storagemock.MockRepository{}
	m.On("GetOrder", mock.Anything, "missing").Once().Return(nil, fmt.Errorf("order missing: %w", model.ErrNotFound))

	svc, err := timeline.NewService(timeline.ServiceConfig{Repository: m, Logger: log.Noop})
	require.NoError(err)

	_, err = svc.Run(context.Background(), timeline.Request{OrderID: "missing"})
	require.ErrorIs(err, model.ErrNotFound)

	m.AssertExpectations(t)
}
