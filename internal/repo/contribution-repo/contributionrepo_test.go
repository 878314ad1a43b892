package contributionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func contributionRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "purchase_id", "user_id", "amount", "meter_reading", "tokens_consumed", "contributed_at"})
}

func TestRepository_FindByPurchaseID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name       string
		purchaseID int
		mockSetup  func()
		expectErr  bool
		result     *domain.Contribution
	}{
		{
			name:       "Contribution exists",
			purchaseID: 1,
			mockSetup: func() {
				rows := contributionRows().
					AddRow(1, 1, 1, 250.0, 6100.0, 1000.0, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE purchase_id = $1")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Contribution{
				ID:             1,
				PurchaseID:     1,
				UserID:         1,
				Amount:         250.0,
				MeterReading:   6100.0,
				TokensConsumed: 1000.0,
				ContributedAt:  timeNow,
			},
		},
		{
			name:       "Purchase is unsettled",
			purchaseID: 2,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE purchase_id = $1")).
					WithArgs(2).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:       "Database error",
			purchaseID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE purchase_id = $1")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByPurchaseID(context.Background(), tt.purchaseID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.result == nil {
				assert.Nil(t, result)
			} else {
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.Contribution
	}{
		{
			name: "Contributions found",
			mockSetup: func() {
				rows := contributionRows().
					AddRow(1, 1, 1, 250.0, 6100.0, 1000.0, timeNow).
					AddRow(2, 2, 2, 143.0, 6200.0, 1100.0, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("ORDER BY contributed_at ASC, id ASC")).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: []domain.Contribution{
				{ID: 1, PurchaseID: 1, UserID: 1, Amount: 250.0, MeterReading: 6100.0, TokensConsumed: 1000.0, ContributedAt: timeNow},
				{ID: 2, PurchaseID: 2, UserID: 2, Amount: 143.0, MeterReading: 6200.0, TokensConsumed: 1100.0, ContributedAt: timeNow},
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("ORDER BY contributed_at ASC, id ASC")).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
		{
			name: "Scan row error",
			mockSetup: func() {
				rows := contributionRows().
					AddRow(1, 1, 1, "invalid_value", 6100.0, 1000.0, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("ORDER BY contributed_at ASC, id ASC")).
					WillReturnRows(rows)
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindAll(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    []domain.Contribution
	}{
		{
			name:   "Contributions found",
			userID: 1,
			mockSetup: func() {
				rows := contributionRows().
					AddRow(1, 1, 1, 250.0, 6100.0, 1000.0, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: []domain.Contribution{
				{ID: 1, PurchaseID: 1, UserID: 1, Amount: 250.0, MeterReading: 6100.0, TokensConsumed: 1000.0, ContributedAt: timeNow},
			},
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_Save(t *testing.T) {
	repo, mock, tx := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name         string
		contribution *domain.Contribution
		mockSetup    func()
		expectErr    bool
	}{
		{
			name: "Save contribution successfully",
			contribution: &domain.Contribution{
				PurchaseID:     1,
				UserID:         1,
				Amount:         250.0,
				MeterReading:   6100.0,
				TokensConsumed: 1000.0,
				ContributedAt:  timeNow,
			},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contributions")).
						WithArgs(1, 1, 250.0, 6100.0, 1000.0, timeNow).
						WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
					return fn(ctx)
				})
			},
			expectErr: false,
		},
		{
			name: "Unique constraint violation",
			contribution: &domain.Contribution{
				PurchaseID:     1,
				UserID:         2,
				Amount:         100.0,
				MeterReading:   6150.0,
				TokensConsumed: 0,
				ContributedAt:  timeNow,
			},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contributions")).
						WithArgs(1, 2, 100.0, 6150.0, 0.0, timeNow).
						WillReturnError(errors.New("duplicate key value violates unique constraint"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Save(context.Background(), tt.contribution)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, tt.contribution.ID)
			}
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, mock, tx := NewMock(t)

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Delete contribution successfully",
			id:   1,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contributions")).
						WithArgs(1).
						WillReturnResult(pgxmock.NewResult("DELETE", 1))
					return fn(ctx)
				})
			},
			expectErr: false,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contributions")).
						WithArgs(1).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Delete(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
