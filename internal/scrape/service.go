// Package scrape drives the batch ingestion pipeline: listing pages are
// fetched per (retailer, category), queued as tasks, and persisted into the
// retailer tables by a worker pool. Failed pages land on a retry stream.
package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pcbanai/core/internal/client"
	"pcbanai/core/internal/config"
	"pcbanai/core/internal/domain"
	"pcbanai/core/internal/domain/task"
	"pcbanai/core/internal/queue"
	"pcbanai/core/internal/repository"
	"pcbanai/core/internal/state"
)

type Service struct {
	repository   repository.ComponentRepository
	client       client.RetailerClient
	queue        queue.Queue
	state        state.Manager
	retailers    []config.RetailerConfig
	saveInterval int
	groupName    string
	minIdleTime  time.Duration
}

func NewService(
	repository repository.ComponentRepository,
	retailerClient client.RetailerClient,
	q queue.Queue,
	stateManager state.Manager,
	retailers []config.RetailerConfig,
	saveInterval int,
	groupName string,
	minIdleTime int,
) *Service {
	if saveInterval <= 0 {
		saveInterval = 5
	}
	return &Service{
		repository:   repository,
		client:       retailerClient,
		queue:        q,
		state:        stateManager,
		retailers:    retailers,
		saveInterval: saveInterval,
		groupName:    groupName,
		minIdleTime:  time.Duration(minIdleTime) * time.Second,
	}
}

// ScrapeAll walks every (retailer, category) listing in parallel and queues
// one task per page. A retailer without scrape endpoints (mirror-only
// sources) is skipped.
func (s *Service) ScrapeAll(ctx context.Context) error {
	g := new(errgroup.Group)

	for _, retailer := range s.retailers {
		if retailer.BaseURL == "" || len(retailer.CategoryPaths) == 0 {
			log.Infof("Retailer %s has no scrape endpoints, skipping", retailer.ID)
			continue
		}

		for _, category := range domain.RawCategories {
			if _, ok := retailer.CategoryPaths[category.String()]; !ok {
				continue
			}

			g.Go(func() error {
				return s.scrapeCategory(ctx, retailer, category)
			})
		}
	}

	return g.Wait()
}

func (s *Service) scrapeCategory(ctx context.Context, retailer config.RetailerConfig, category domain.RawCategory) error {
	table := retailer.Retailer().TableName(domain.BaseTables[category])
	if err := s.repository.EnsureTable(ctx, table); err != nil {
		return err
	}

	startPage, err := s.state.LastScrapedPage(ctx, retailer.ID, category)
	if err != nil {
		log.Errorf("Failed to load scrape progress: %v", err)
		return err
	}
	if startPage == 0 {
		startPage = 1
	}
	if startPage > 1 {
		log.Infof("Resuming %s/%s from page %d", retailer.ID, category, startPage)
	}

	log.Infof("Scraping %s/%s", retailer.ID, category)

	page := startPage
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		listings, err := s.client.ListingPage(ctx, retailer, category, page)
		if err != nil {
			log.Errorf("Failed to fetch %s/%s page %d: %v", retailer.ID, category, page, err)
			return err
		}
		if len(listings) == 0 {
			break
		}

		_, err = s.queue.AddTask(ctx, &task.ListingPageTask{
			RetailerID: retailer.ID,
			Category:   category,
			Page:       page,
			Listings:   listings,
		})
		if err != nil {
			log.Errorf("Failed to queue %s/%s page %d: %v", retailer.ID, category, page, err)
			return err
		}

		if page%s.saveInterval == 0 {
			s.state.SetLastScrapedPage(ctx, retailer.ID, category, page)
		}
		page++
	}

	s.state.SetLastScrapedPage(ctx, retailer.ID, category, page)
	log.Infof("Finished %s/%s after %d pages", retailer.ID, category, page-startPage)
	return nil
}

// RunWorkers consumes the task streams until the context is canceled. The
// retry stream gets a smaller pool since it only sees failures.
func (s *Service) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	s.runWorkersForStream(ctx, &wg, numWorkers, queue.StreamName(task.TypeListingPage), "main")
	s.runWorkersForStream(ctx, &wg, max(1, numWorkers/2), queue.StreamName(task.TypePageRetry), "retry")

	wg.Wait()
	return nil
}

func (s *Service) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer re-assigns messages abandoned by dead consumers.
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s-%d", workerType, time.Now().UnixNano())
				claimed, err := s.queue.AutoClaim(ctx, s.groupName, consumer, streamName, s.minIdleTime)
				if err != nil {
					log.Errorf("Failed to auto-claim from %s: %v", streamName, err)
					continue
				}
				for _, msg := range claimed {
					if err := s.processMessage(ctx, &msg); err != nil {
						log.Errorf("Failed to process claimed message %s: %v", msg.ID, err)
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("Worker %s stopping", consumer)
					return
				default:
					msg, err := s.queue.GetTask(ctx, s.groupName, consumer, streamName)
					if err != nil {
						log.Errorf("Failed to get task from %s: %v", streamName, err)
						continue
					}
					if msg == nil {
						continue
					}
					if err := s.processMessage(ctx, msg); err != nil {
						log.Errorf("Failed to process message %s: %v", msg.ID, err)
					}
				}
			}
		}(i + 1)
	}
}

func (s *Service) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return fmt.Errorf("invalid task type in message %s", msg.ID)
	}
	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	switch taskType {
	case task.TypeListingPage:
		pageTask, err := task.Unmarshal[*task.ListingPageTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal listing page task: %w", err)
		}

		if err := s.persistPage(ctx, pageTask); err != nil {
			retryTask := &task.PageRetryTask{
				RetailerID: pageTask.RetailerID,
				Category:   pageTask.Category,
				Page:       pageTask.Page,
				Error:      err.Error(),
			}
			if _, addErr := s.queue.AddTask(ctx, retryTask); addErr != nil {
				log.Errorf("Failed to queue retry for %s/%s page %d: %v",
					pageTask.RetailerID, pageTask.Category, pageTask.Page, addErr)
			} else {
				log.Warnf("Page %d of %s/%s queued for retry: %v",
					pageTask.Page, pageTask.RetailerID, pageTask.Category, err)
			}
		}

	case task.TypePageRetry:
		retryTask, err := task.Unmarshal[*task.PageRetryTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal page retry task: %w", err)
		}
		if err := s.retryPage(ctx, retryTask); err != nil {
			return fmt.Errorf("failed to retry page: %w", err)
		}

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	if err := s.queue.AckTask(ctx, queue.StreamName(taskType), s.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}
	return nil
}

// persistPage upserts every listing of a page, filling in the power figure
// from the product page when the card itself carried none.
func (s *Service) persistPage(ctx context.Context, pageTask *task.ListingPageTask) error {
	retailer, ok := s.retailerByID(pageTask.RetailerID)
	if !ok {
		return fmt.Errorf("unknown retailer %s", pageTask.RetailerID)
	}
	table := retailer.Retailer().TableName(domain.BaseTables[pageTask.Category])

	var failed int
	for _, listing := range pageTask.Listings {
		if listing.PowerConsumption == 0 {
			listing.PowerConsumption = s.client.ProductPower(ctx, listing.ProductURL)
		}
		if err := s.repository.UpsertListing(ctx, table, listing); err != nil {
			log.Errorf("Failed to save listing %q: %v", listing.ProductName, err)
			failed++
		}
	}

	if failed == len(pageTask.Listings) && failed > 0 {
		return fmt.Errorf("all %d listings of page %d failed to persist", failed, pageTask.Page)
	}
	return nil
}

func (s *Service) retryPage(ctx context.Context, retryTask *task.PageRetryTask) error {
	retryTask.RetryCount++
	log.Infof("Retrying %s/%s page %d (attempt %d)",
		retryTask.RetailerID, retryTask.Category, retryTask.Page, retryTask.RetryCount)

	retailer, ok := s.retailerByID(retryTask.RetailerID)
	if !ok {
		return fmt.Errorf("unknown retailer %s", retryTask.RetailerID)
	}

	listings, err := s.client.ListingPage(ctx, retailer, retryTask.Category, retryTask.Page)
	if err != nil {
		// Re-queue with the incremented count; retried until it succeeds.
		if _, addErr := s.queue.AddTask(ctx, &task.PageRetryTask{
			RetailerID: retryTask.RetailerID,
			Category:   retryTask.Category,
			Page:       retryTask.Page,
			RetryCount: retryTask.RetryCount,
			Error:      err.Error(),
		}); addErr != nil {
			log.Errorf("Failed to re-queue retry for page %d: %v", retryTask.Page, addErr)
			return addErr
		}
		log.Warnf("Page %d of %s/%s failed again (attempt %d): %v",
			retryTask.Page, retryTask.RetailerID, retryTask.Category, retryTask.RetryCount, err)
		return nil
	}

	if _, err := s.queue.AddTask(ctx, &task.ListingPageTask{
		RetailerID: retryTask.RetailerID,
		Category:   retryTask.Category,
		Page:       retryTask.Page,
		Listings:   listings,
	}); err != nil {
		log.Errorf("Failed to queue recovered page %d: %v", retryTask.Page, err)
		return err
	}

	log.Infof("Recovered %s/%s page %d after %d attempts",
		retryTask.RetailerID, retryTask.Category, retryTask.Page, retryTask.RetryCount)
	return nil
}

func (s *Service) retailerByID(id string) (config.RetailerConfig, bool) {
	for _, r := range s.retailers {
		if r.ID == id {
			return r, true
		}
	}
	return config.RetailerConfig{}, false
}
