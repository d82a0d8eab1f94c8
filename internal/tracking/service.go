// Package tracking resolves an order's shipment view: tracking info and
// status history fetched concurrently, plus the customer-facing
// progress fraction.
package tracking

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"storefront/internal/models"
)

var ErrInvalidOrderID = errors.New("order id must be a positive number")

// Backend is the slice of the backend client the service uses.
type Backend interface {
	GetTracking(ctx context.Context, id int64) (models.TrackingInfo, error)
	GetHistory(ctx context.Context, id int64) ([]models.StatusHistoryEntry, error)
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// ParseOrderID validates user input before any network call is made.
func ParseOrderID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidOrderID
	}
	return id, nil
}

// Result combines both reads with the derived progress. Absent tracking
// fields are nil and render as "not set" placeholders; they are not an
// error state.
type Result struct {
	Tracking models.TrackingInfo         `json:"tracking"`
	History  []models.StatusHistoryEntry `json:"history"`
	Step     int                         `json:"step"`
	Progress float64                     `json:"progress"`
}

// Lookup fetches tracking info and status history concurrently; there
// is no ordering dependency between the two reads. Either failure fails
// the lookup as a whole, which the caller reports as retryable.
func (s *Service) Lookup(ctx context.Context, orderID int64) (Result, error) {
	var (
		tracking models.TrackingInfo
		history  []models.StatusHistoryEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tracking, err = s.backend.GetTracking(gctx, orderID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.backend.GetHistory(gctx, orderID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if history == nil {
		history = []models.StatusHistoryEntry{}
	}
	return Result{
		Tracking: tracking,
		History:  history,
		Step:     tracking.Status.Step(),
		Progress: tracking.Status.Progress(),
	}, nil
}
