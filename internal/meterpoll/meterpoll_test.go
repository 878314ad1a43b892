package meterpoll

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/tichaonax/electricity-tokens-sub004/internal/config"
	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/clients"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *clients.MockHTTPClientI) {
	cfg := &config.Config{MeterAddress: "http://localhost:8081", PollIntervalSecs: 1}
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	meterRepo := NewMockRepo(ctrl)
	client := clients.NewMockHTTPClientI(ctrl)
	service := New(cfg, meterRepo, client)
	return service, meterRepo, client
}

func TestService_Start(t *testing.T) {
	service, _, _ := NewMock(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
}

func TestService_poll(t *testing.T) {
	tests := []struct {
		name             string
		inFlight         bool
		mockAddTask      func(ctx context.Context, task func() error) error
		expectTask       bool
		expectedInFlight bool
	}{
		{
			name: "runs the scheduled fetch",
			mockAddTask: func(ctx context.Context, task func() error) error {
				return task()
			},
			expectTask:       true,
			expectedInFlight: false,
		},
		{
			name:             "skips while a poll is in flight",
			inFlight:         true,
			expectTask:       false,
			expectedInFlight: true,
		},
		{
			name: "worker pool rejects the task",
			mockAddTask: func(ctx context.Context, task func() error) error {
				return errors.New("failed to add task to worker pool")
			},
			expectTask:       true,
			expectedInFlight: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			meterRepo := NewMockRepo(ctrl)
			workerPool := NewMockWorkerPoolI(ctrl)
			client := clients.NewMockHTTPClientI(ctrl)
			client.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(http.StatusNoContent, nil, http.Header{}, nil).
				AnyTimes()

			service := &Service{
				meterRepo:  meterRepo,
				client:     client,
				workerPool: workerPool,
			}
			service.inFlight.Store(tt.inFlight)

			if tt.expectTask {
				workerPool.EXPECT().
					AddTask(gomock.Any(), gomock.Any()).
					DoAndReturn(tt.mockAddTask).
					Times(1)
			}

			logger := zap.NewExample()
			zap.ReplaceGlobals(logger)

			service.poll(context.Background())

			assert.Equal(t, tt.expectedInFlight, service.inFlight.Load())
		})
	}
}

func TestService_fetchReading(t *testing.T) {
	testCases := []struct {
		name          string
		httpStatus    int
		responseBody  string
		latest        *domain.MeterSnapshot
		expectSave    bool
		retryError    error
		cancelContext bool
		expectedError string
	}{
		{
			name:         "advancing reading is stored",
			httpStatus:   http.StatusOK,
			responseBody: `{"reading":6300,"recorded_at":"2024-06-20T10:00:00Z"}`,
			latest:       &domain.MeterSnapshot{Reading: 6200},
			expectSave:   true,
		},
		{
			name:         "first reading is stored",
			httpStatus:   http.StatusOK,
			responseBody: `{"reading":6300,"recorded_at":"2024-06-20T10:00:00Z"}`,
			latest:       nil,
			expectSave:   true,
		},
		{
			name:         "stale reading is dropped",
			httpStatus:   http.StatusOK,
			responseBody: `{"reading":6100,"recorded_at":"2024-06-20T10:00:00Z"}`,
			latest:       &domain.MeterSnapshot{Reading: 6200},
			expectSave:   false,
		},
		{
			name:       "gateway has no reading yet",
			httpStatus: http.StatusNoContent,
		},
		{
			name:          "unexpected status code",
			httpStatus:    http.StatusTeapot,
			expectedError: "unexpected status code 418",
		},
		{
			name:          "gateway unreachable after retries",
			retryError:    errors.New("connection refused"),
			expectedError: "meter gateway unreachable after 3 retries: connection refused",
		},
		{
			name:          "context canceled",
			cancelContext: true,
			expectedError: context.Canceled.Error(),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			service, meterRepo, client := NewMock(t)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancelContext {
				cancel()
			}

			if tt.retryError != nil {
				client.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(0, nil, http.Header{}, tt.retryError).Times(3)
			} else if !tt.cancelContext {
				client.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tt.httpStatus, []byte(tt.responseBody), http.Header{}, nil).Times(1)
			}

			if tt.httpStatus == http.StatusOK && tt.expectedError == "" {
				meterRepo.EXPECT().Latest(gomock.Any()).Return(tt.latest, nil).Times(1)
			}
			if tt.expectSave {
				meterRepo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snapshot *domain.MeterSnapshot) error {
						assert.Equal(t, 6300.0, snapshot.Reading)
						assert.Equal(t, "gateway", snapshot.Source)
						return nil
					}).
					Times(1)
			}

			err := service.fetchReading(ctx)

			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_storeReading(t *testing.T) {
	testCases := []struct {
		name        string
		respBody    []byte
		latest      *domain.MeterSnapshot
		latestErr   error
		saveErr     error
		expectSave  bool
		expectErr   bool
		checkStored func(t *testing.T, snapshot *domain.MeterSnapshot)
	}{
		{
			name:       "missing timestamp defaults to now",
			respBody:   []byte(`{"reading":6300}`),
			expectSave: true,
			checkStored: func(t *testing.T, snapshot *domain.MeterSnapshot) {
				assert.WithinDuration(t, time.Now(), snapshot.ReadingAt, time.Minute)
			},
		},
		{
			name:      "invalid payload",
			respBody:  []byte(`{invalid json}`),
			expectErr: true,
		},
		{
			name:      "error fetching latest snapshot",
			respBody:  []byte(`{"reading":6300}`),
			latestErr: errors.New("database error"),
			expectErr: true,
		},
		{
			name:       "error saving snapshot",
			respBody:   []byte(`{"reading":6300}`),
			saveErr:    errors.New("database error"),
			expectSave: true,
			expectErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, meterRepo, _ := NewMock(t)

			if tc.latestErr != nil {
				meterRepo.EXPECT().Latest(gomock.Any()).Return(nil, tc.latestErr)
			} else if !tc.expectErr || tc.expectSave {
				meterRepo.EXPECT().Latest(gomock.Any()).Return(tc.latest, nil).AnyTimes()
			}
			if tc.expectSave {
				meterRepo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snapshot *domain.MeterSnapshot) error {
						if tc.checkStored != nil {
							tc.checkStored(t, snapshot)
						}
						return tc.saveErr
					})
			}

			err := service.storeReading(context.Background(), tc.respBody)

			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
