package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"pcbanai/core/internal/config"
	"pcbanai/core/internal/domain"
	"pcbanai/core/internal/proxy"
)

// RetailerClient fetches and parses retailer listing pages for the batch
// scrape pipeline.
type RetailerClient interface {
	// ListingPage fetches one page of a category listing. An empty slice
	// with a nil error means the pagination is exhausted.
	ListingPage(ctx context.Context, retailer config.RetailerConfig, category domain.RawCategory, page int) ([]domain.Listing, error)
	// ProductPower fetches a product page and extracts its power draw,
	// returning 0 when no plausible figure is found.
	ProductPower(ctx context.Context, productURL string) int
}

type retailerClient struct {
	rl            ratelimit.Limiter
	httpClient    *resty.Client
	parser        *listingParser
	proxySupplier proxy.Supplier
}

func NewRetailerClient(cfg config.ScraperConfig, proxySupplier proxy.Supplier) RetailerClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("Using initial proxy: %s", proxyURL)
		}
	}

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &retailerClient{
		rl:            ratelimit.New(rps),
		httpClient:    client,
		parser:        newListingParser(),
		proxySupplier: proxySupplier,
	}
}

func (c *retailerClient) ListingPage(ctx context.Context, retailer config.RetailerConfig, category domain.RawCategory, page int) ([]domain.Listing, error) {
	path, ok := retailer.CategoryPaths[category.String()]
	if !ok {
		// retailer does not carry this category
		return nil, nil
	}

	url := fmt.Sprintf("%s%s?page=%d", retailer.BaseURL, path, page)
	html, err := c.fetchHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	listings, err := c.parser.ParseListingPage(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	log.Debugf("Fetched %s %s page %d with %d listings", retailer.ID, category, page, len(listings))
	return listings, nil
}

func (c *retailerClient) ProductPower(ctx context.Context, productURL string) int {
	if productURL == "" {
		return 0
	}
	html, err := c.fetchHTML(ctx, productURL)
	if err != nil {
		log.Warnf("Could not fetch power figure from %s: %v", productURL, err)
		return 0
	}
	return c.parser.ParseProductPower(html)
}

func (c *retailerClient) fetchHTML(ctx context.Context, url string) (string, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		c.rotateProxy()
		return "", fmt.Errorf("request to %s failed: %w", url, err)
	}
	if resp.IsError() {
		c.rotateProxy()
		return "", fmt.Errorf("request to %s returned %s", url, resp.Status())
	}

	return resp.String(), nil
}

// rotateProxy switches the client to the next pool proxy after a failure.
func (c *retailerClient) rotateProxy() {
	if c.proxySupplier == nil {
		return
	}
	if proxyURL := c.proxySupplier.Get(); proxyURL != "" {
		c.httpClient.SetProxy(proxyURL)
		log.Debugf("Rotated to proxy %s", proxyURL)
	}
}
