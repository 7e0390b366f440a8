package proxy

import (
	"context"
	"crypto/tls"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Supplier hands out proxy URLs round-robin. An empty string means the
// scraper should go direct.
type Supplier interface {
	Get() string
}

type supplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewSupplier validates the configured proxies in parallel against testURL
// and keeps only the working ones.
func NewSupplier(ctx context.Context, proxies []string, testURL string) (Supplier, error) {
	if len(proxies) == 0 {
		return &supplier{}, nil
	}

	log.Infof("Validating %d proxies...", len(proxies))

	valid := make(chan string, len(proxies))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 50)

	for _, proxyURL := range proxies {
		wg.Add(1)
		go func(proxyURL string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if probeProxy(ctx, proxyURL, testURL) {
				valid <- proxyURL
			} else {
				log.Infof("Proxy %s failed validation, skipping", proxyURL)
			}
		}(proxyURL)
	}

	wg.Wait()
	close(valid)

	working := make([]string, 0, len(proxies))
	for proxyURL := range valid {
		working = append(working, proxyURL)
	}

	log.Infof("Proxy pool ready: %d of %d working", len(working), len(proxies))
	return &supplier{proxies: working}, nil
}

func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.proxies) == 0 {
		return ""
	}
	proxyURL := s.proxies[s.current]
	s.current = (s.current + 1) % len(s.proxies)
	return proxyURL
}

func probeProxy(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0).
		SetProxy(proxyURL).
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)
	if err != nil {
		return false
	}
	return !resp.IsError()
}
