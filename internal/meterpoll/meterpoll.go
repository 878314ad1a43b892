// Package meterpoll keeps a fresh meter snapshot in storage by polling the
// meter gateway. The balance projector reads the latest snapshot; it never
// talks to the gateway itself.
package meterpoll

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tichaonax/electricity-tokens-sub004/internal/config"
	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

// Response is the gateway's current-reading payload.
type Response struct {
	Reading    float64   `json:"reading"`
	RecordedAt time.Time `json:"recorded_at"`
}

type Repo interface {
	Latest(ctx context.Context) (*domain.MeterSnapshot, error)
	Save(ctx context.Context, snapshot *domain.MeterSnapshot) error
}

type Service struct {
	url          string
	meterRepo    Repo
	client       clients.HTTPClientI
	workerPool   WorkerPoolI
	pollInterval time.Duration

	// inFlight prevents a slow gateway from stacking up polls.
	inFlight atomic.Bool
}

func New(cfg *config.Config, meterRepo Repo, client clients.HTTPClientI) *Service {
	return &Service{
		url:          cfg.MeterAddress,
		meterRepo:    meterRepo,
		client:       client,
		workerPool:   NewWorkerPool(2),
		pollInterval: time.Duration(cfg.PollIntervalSecs) * time.Second,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("meter poller started", zap.Duration("interval", s.pollInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping meter poller")
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Service) poll(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		err := s.workerPool.AddTask(ctx, func() error {
			defer s.inFlight.Store(false)
			return s.fetchReading(ctx)
		})
		if err != nil {
			s.inFlight.Store(false)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("failed to schedule meter poll", zap.Error(err))
	}
}

func (s *Service) fetchReading(ctx context.Context) error {
	url := s.url + "/api/meter/current"

	var statusCode int
	var respBody []byte
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, _, err = s.client.Get(url, nil)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("meter gateway unreachable after %d retries: %w", maxRetries, err)
			}

			switch statusCode {
			case http.StatusOK:
				return s.storeReading(ctx, respBody)
			case http.StatusNoContent:
				zap.L().Info("meter gateway has no reading yet")
				return nil
			default:
				zap.L().Error("unexpected status code from meter gateway", zap.Int("status", statusCode))
				return fmt.Errorf("unexpected status code %d", statusCode)
			}
		}
	}
	return nil
}

// storeReading persists the gateway reading when it advances on the stored
// snapshot. An older or duplicate reading is dropped, so a flapping gateway
// cannot roll the projection baseline backwards.
func (s *Service) storeReading(ctx context.Context, respBody []byte) error {
	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse meter gateway response: %w", err)
	}
	if response.RecordedAt.IsZero() {
		response.RecordedAt = time.Now()
	}

	latest, err := s.meterRepo.Latest(ctx)
	if err != nil {
		return err
	}
	if latest != nil && response.Reading <= latest.Reading {
		return nil
	}

	snapshot := &domain.MeterSnapshot{
		Reading:   response.Reading,
		ReadingAt: response.RecordedAt,
		Source:    "gateway",
	}
	if err := s.meterRepo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save meter snapshot: %w", err)
	}

	zap.L().Info("meter snapshot stored",
		zap.Float64("reading", response.Reading),
		zap.Time("recordedAt", response.RecordedAt))
	return nil
}
