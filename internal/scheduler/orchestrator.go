package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kraytos1/aces-analytics/internal/cache"
	"github.com/kraytos1/aces-analytics/internal/ingest/gamechanger"
)

// Orchestrator schedules the nightly scrape of the configured team schedules
// and keeps the cached views coherent with fresh data.
type Orchestrator struct {
	ingester *gamechanger.Ingester
	cache    *cache.RedisCache
	config   *Config
	cancel   context.CancelFunc

	mu      sync.Mutex
	running bool
}

// Config holds scheduler configuration
type Config struct {
	ScheduleURLs      []string      // team schedule pages to scrape
	DailyScrapeHour   int           // Default: 3 (3 AM)
	EnableDailyScrape bool          // Default: true
	MaxRetries        int           // Default: 3
	RetryDelay        time.Duration // Default: 30s
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		DailyScrapeHour:   3,
		EnableDailyScrape: true,
		MaxRetries:        3,
		RetryDelay:        30 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(ingester *gamechanger.Ingester, cache *cache.RedisCache, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		ingester: ingester,
		cache:    cache,
		config:   config,
	}
}

// Start begins the nightly scrape loop and blocks until ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Printf("Scheduler started: %d schedule URLs, daily scrape %v at %02d:00",
		len(o.config.ScheduleURLs), o.config.EnableDailyScrape, o.config.DailyScrapeHour)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableDailyScrape {
		go o.runDailyScrape(ctx)
	}

	<-ctx.Done()
	log.Println("Scheduler stopping...")
}

// Stop cancels the scheduler loop
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

// runDailyScrape sleeps until the configured hour, scrapes, repeats.
func (o *Orchestrator) runDailyScrape(ctx context.Context) {
	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.DailyScrapeHour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("Next scrape run: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("Daily scrape scheduler stopped")
			return
		case <-time.After(waitDuration):
			if _, err := o.RunAll(ctx); err != nil {
				log.Printf("[ERROR] Nightly scrape: %v", err)
			}
		}
	}
}

// RunAll scrapes every configured schedule URL, then invalidates the cached
// views. Only one run may be in flight at a time; a second caller gets an
// error instead of a concurrent scrape.
func (o *Orchestrator) RunAll(ctx context.Context) ([]*gamechanger.RunReport, error) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, fmt.Errorf("a scrape run is already in progress")
	}
	o.running = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	startTime := time.Now()
	log.Printf("Scrape run starting: %d teams", len(o.config.ScheduleURLs))

	reports := make([]*gamechanger.RunReport, 0, len(o.config.ScheduleURLs))
	for _, url := range o.config.ScheduleURLs {
		if ctx.Err() != nil {
			return reports, ctx.Err()
		}

		report, err := o.runWithRetry(ctx, url)
		if err != nil {
			log.Printf("[ERROR] Scraping %s failed after %d attempts: %v", url, o.config.MaxRetries, err)
			continue
		}
		reports = append(reports, report)
	}

	o.invalidateCache(ctx)

	log.Printf("Scrape run complete: %d/%d teams in %v",
		len(reports), len(o.config.ScheduleURLs), time.Since(startTime).Round(time.Second))
	return reports, nil
}

// RunOne scrapes a single schedule URL and invalidates the cached views.
func (o *Orchestrator) RunOne(ctx context.Context, scheduleURL string) (*gamechanger.RunReport, error) {
	report, err := o.ingester.Run(ctx, scheduleURL)
	if err != nil {
		return nil, err
	}

	o.invalidateCache(ctx)
	return report, nil
}

func (o *Orchestrator) runWithRetry(ctx context.Context, url string) (*gamechanger.RunReport, error) {
	var report *gamechanger.RunReport
	var err error

	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		report, err = o.ingester.Run(ctx, url)
		if err == nil {
			return report, nil
		}

		log.Printf("[WARN] Scrape attempt %d/%d for %s failed: %v", attempt, o.config.MaxRetries, url, err)
		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	return nil, err
}

func (o *Orchestrator) invalidateCache(ctx context.Context) {
	if o.cache == nil {
		return
	}
	if err := o.cache.InvalidateViews(ctx); err != nil {
		log.Printf("[WARN] Cache invalidation failed: %v", err)
	}
}
