package client

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"pcbanai/core/internal/domain"
)

// Product-page wattage readings outside this band are model numbers or
// amperage noise, not a power draw.
const (
	minListingWatts = 10
	maxListingWatts = 1500
)

var (
	genericWattage = regexp.MustCompile(`(\d+)\s*w`)
	leadingNumber  = regexp.MustCompile(`(\d+)`)
)

// powerLabels are the spec-table row labels checked for a direct power
// figure, in priority order.
var powerLabels = []string{"default tdp", "power consumption", "consumption"}

type listingParser struct{}

func newListingParser() *listingParser {
	return &listingParser{}
}

// ParseListingPage extracts every product card from a category listing page.
// An empty result means the pagination ran past the last page.
func (p *listingParser) ParseListingPage(html string) ([]domain.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	listings := make([]domain.Listing, 0)
	doc.Find("div.p-item").Each(func(i int, card *goquery.Selection) {
		listing, ok := p.parseCard(card)
		if !ok {
			log.Warnf("Skipping unparseable product card %d", i)
			return
		}
		listings = append(listings, listing)
	})

	return listings, nil
}

func (p *listingParser) parseCard(card *goquery.Selection) (domain.Listing, bool) {
	nameLink := card.Find("h4.p-item-name a").First()
	name := strings.TrimSpace(nameLink.Text())
	if name == "" {
		return domain.Listing{}, false
	}
	productURL, _ := nameLink.Attr("href")

	listing := domain.Listing{
		ProductName:  name,
		ProductURL:   productURL,
		Availability: strings.TrimSpace(card.Find("div.p-item-stock span").First().Text()),
	}

	listing.PriceBDT = parseListedPrice(card.Find("div.p-item-price span").First().Text())

	if img := card.Find("div.p-item-img img").First(); img.Length() > 0 {
		if src, ok := img.Attr("data-src"); ok && src != "" {
			listing.ImageURL = src
		} else if src, ok := img.Attr("src"); ok {
			listing.ImageURL = src
		}
	}

	if brand, ok := card.Find("div.p-item-brand img").First().Attr("alt"); ok {
		listing.Brand = brand
	}

	var specs []string
	card.Find("div.p-item-details ul li").Each(func(_ int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			specs = append(specs, text)
		}
	})
	listing.ShortSpecs = strings.Join(specs, " | ")

	return listing, true
}

// ParseProductPower scans a product page for a direct power figure. Labeled
// spec-table rows win over a generic wattage match in the page text.
func (p *listingParser) ParseProductPower(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0
	}

	watts := 0
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		label := strings.ToLower(strings.TrimSpace(cells.Eq(0).Text()))
		for _, known := range powerLabels {
			if !strings.Contains(label, known) {
				continue
			}
			// labeled cells carry a bare figure, no "W" suffix required
			if m := leadingNumber.FindStringSubmatch(cells.Eq(1).Text()); m != nil {
				if w, err := strconv.Atoi(m[1]); err == nil && w > minListingWatts && w < maxListingWatts {
					watts = w
					return false
				}
			}
		}
		return true
	})
	if watts > 0 {
		return watts
	}

	return plausibleWatts(strings.ToLower(doc.Text()))
}

func plausibleWatts(text string) int {
	m := genericWattage.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0
	}
	watts, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	if watts > minListingWatts && watts < maxListingWatts {
		return watts
	}
	return 0
}

func parseListedPrice(text string) int {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	price, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return price
}
