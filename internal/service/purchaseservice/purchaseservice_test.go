package purchaseservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockPurchaseRepo, *MockContributionRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	purchaseRepo := NewMockPurchaseRepo(ctrl)
	contributionRepo := NewMockContributionRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(purchaseRepo, contributionRepo, txManager)
	defer ctrl.Finish()
	return service, purchaseRepo, contributionRepo, txManager
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
}

func date(day int) time.Time {
	return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestCreate(t *testing.T) {
	existing := []domain.Purchase{
		{ID: 1, TotalTokens: 1000, TotalPayment: 250, MeterReading: 5000, PurchaseDate: date(1)},
	}

	tests := []struct {
		name          string
		purchase      *domain.Purchase
		prepareMock   func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager)
		expectedError error
		checkError    func(t *testing.T, err error)
	}{
		{
			name:     "records a purchase with a higher reading",
			purchase: &domain.Purchase{TotalTokens: 500, TotalPayment: 150, MeterReading: 6100, PurchaseDate: date(15)},
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindAll(gomock.Any()).Return(existing, nil)
				c.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:     "equal reading is accepted",
			purchase: &domain.Purchase{TotalTokens: 500, TotalPayment: 150, MeterReading: 5000, PurchaseDate: date(15)},
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindAll(gomock.Any()).Return(existing, nil)
				c.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:          "non-positive values rejected",
			purchase:      &domain.Purchase{TotalTokens: 0, TotalPayment: 150, MeterReading: 6100},
			prepareMock:   func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {},
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "token number failing the check digit",
			purchase:      &domain.Purchase{TotalTokens: 500, TotalPayment: 150, MeterReading: 6100, TokenNumber: "1234567890123"},
			prepareMock:   func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {},
			expectedError: ErrInvalidTokenNumber,
		},
		{
			name:     "reading below an earlier purchase",
			purchase: &domain.Purchase{TotalTokens: 500, TotalPayment: 150, MeterReading: 4000, PurchaseDate: date(15)},
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindAll(gomock.Any()).Return(existing, nil)
				c.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
			},
			checkError: func(t *testing.T, err error) {
				var readingErr *ReadingError
				assert.ErrorAs(t, err, &readingErr)
				assert.Equal(t, 5000.0, readingErr.Check.SuggestedMinimum)
				assert.Contains(t, readingErr.Check.Context, "previous purchase")
			},
		},
		{
			name:     "save error bubbles up",
			purchase: &domain.Purchase{TotalTokens: 500, TotalPayment: 150, MeterReading: 6100, PurchaseDate: date(15)},
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindAll(gomock.Any()).Return(existing, nil)
				c.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, purchaseRepo, contributionRepo, txManager := NewMock(t)
			tt.prepareMock(purchaseRepo, contributionRepo, txManager)

			err := service.Create(context.Background(), tt.purchase)
			switch {
			case tt.checkError != nil:
				assert.Error(t, err)
				tt.checkError(t, err)
			case tt.expectedError != nil:
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	stored := &domain.Purchase{ID: 2, TotalTokens: 500, TotalPayment: 150, MeterReading: 6100, PurchaseDate: date(15)}
	all := []domain.Purchase{
		{ID: 1, TotalTokens: 1000, TotalPayment: 250, MeterReading: 5000, PurchaseDate: date(1)},
		*stored,
	}

	tests := []struct {
		name          string
		purchase      *domain.Purchase
		prepareMock   func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager)
		expectedError error
		checkError    func(t *testing.T, err error)
	}{
		{
			name:     "edits its own reading without self-conflict",
			purchase: &domain.Purchase{ID: 2, TotalTokens: 500, TotalPayment: 150, MeterReading: 6050, PurchaseDate: date(15)},
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindByID(gomock.Any(), 2).Return(stored, nil)
				c.EXPECT().FindByPurchaseID(gomock.Any(), 2).Return(nil, nil)
				p.EXPECT().FindAll(gomock.Any()).Return(all, nil)
				c.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
				p.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:     "unknown purchase",
			purchase: &domain.Purchase{ID: 99, TotalTokens: 500, TotalPayment: 150, MeterReading: 6100, PurchaseDate: date(15)},
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindByID(gomock.Any(), 99).Return(nil, nil)
			},
			expectedError: ErrPurchaseNotFound,
		},
		{
			name:     "settled purchase is immutable",
			purchase: &domain.Purchase{ID: 2, TotalTokens: 500, TotalPayment: 150, MeterReading: 6100, PurchaseDate: date(15)},
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindByID(gomock.Any(), 2).Return(stored, nil)
				c.EXPECT().FindByPurchaseID(gomock.Any(), 2).Return(&domain.Contribution{ID: 7, PurchaseID: 2}, nil)
			},
			expectedError: ErrPurchaseSettled,
		},
		{
			name:     "edit dropping below an earlier purchase",
			purchase: &domain.Purchase{ID: 2, TotalTokens: 500, TotalPayment: 150, MeterReading: 4000, PurchaseDate: date(15)},
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindByID(gomock.Any(), 2).Return(stored, nil)
				c.EXPECT().FindByPurchaseID(gomock.Any(), 2).Return(nil, nil)
				p.EXPECT().FindAll(gomock.Any()).Return(all, nil)
				c.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
			},
			checkError: func(t *testing.T, err error) {
				var readingErr *ReadingError
				assert.ErrorAs(t, err, &readingErr)
				assert.Equal(t, 5000.0, readingErr.Check.SuggestedMinimum)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, purchaseRepo, contributionRepo, txManager := NewMock(t)
			tt.prepareMock(purchaseRepo, contributionRepo, txManager)

			err := service.Update(context.Background(), tt.purchase)
			switch {
			case tt.checkError != nil:
				assert.Error(t, err)
				tt.checkError(t, err)
			case tt.expectedError != nil:
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	stored := &domain.Purchase{ID: 1, TotalTokens: 1000, TotalPayment: 250, MeterReading: 5000, PurchaseDate: date(1)}

	tests := []struct {
		name          string
		id            int
		prepareMock   func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager)
		expectedError error
	}{
		{
			name: "deletes an unsettled purchase",
			id:   1,
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindByID(gomock.Any(), 1).Return(stored, nil)
				c.EXPECT().FindByPurchaseID(gomock.Any(), 1).Return(nil, nil)
				p.EXPECT().Delete(gomock.Any(), 1).Return(nil)
			},
		},
		{
			name: "unknown purchase",
			id:   99,
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindByID(gomock.Any(), 99).Return(nil, nil)
			},
			expectedError: ErrPurchaseNotFound,
		},
		{
			name: "settled purchase cannot be deleted",
			id:   1,
			prepareMock: func(p *MockPurchaseRepo, c *MockContributionRepo, tx *pg.MockTXManager) {
				passthroughTx(tx)
				p.EXPECT().FindByID(gomock.Any(), 1).Return(stored, nil)
				c.EXPECT().FindByPurchaseID(gomock.Any(), 1).Return(&domain.Contribution{ID: 5, PurchaseID: 1}, nil)
			},
			expectedError: ErrPurchaseSettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, purchaseRepo, contributionRepo, txManager := NewMock(t)
			tt.prepareMock(purchaseRepo, contributionRepo, txManager)

			err := service.Delete(context.Background(), tt.id)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	service, purchaseRepo, _, _ := NewMock(t)

	purchaseRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.Purchase{ID: 1}, nil)
	purchase, err := service.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, purchase.ID)

	purchaseRepo.EXPECT().FindByID(gomock.Any(), 2).Return(nil, nil)
	_, err = service.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}
