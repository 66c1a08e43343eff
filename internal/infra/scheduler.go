package infra

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"tradejournal/internal/service"
)

// Scheduler keeps the market snapshot warm in the background so journal
// entries never wait on the quote provider.
type Scheduler struct {
	cron   *cron.Cron
	market *service.MarketService
	spec   string
}

// NewScheduler creates a scheduler refreshing the market cache on spec.
func NewScheduler(market *service.MarketService, spec string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		market: market,
		spec:   spec,
	}
}

// Start starts the background refresh.
func (s *Scheduler) Start() error {
	log.Printf("Starting scheduler... [refresh: %s]", s.spec)

	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.market.Refresh(ctx); err != nil {
			log.Printf("ERROR: Scheduled market refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("[OK] Scheduler started successfully")
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.cron.Stop()
	log.Println("[OK] Scheduler stopped")
}
