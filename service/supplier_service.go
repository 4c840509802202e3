package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Shooukoo/yesmos.com/config"
	"github.com/Shooukoo/yesmos.com/models"
	"github.com/Shooukoo/yesmos.com/pricing"
	"github.com/Shooukoo/yesmos.com/utils"

	"github.com/chromedp/chromedp"
)

// noNamePlaceholder is what the extraction script emits when a card has no <p>
const noNamePlaceholder = "Sin nombre"

// supplierCard is the raw text pulled out of one ".fly" product card
type supplierCard struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
	URL   string `json:"url"`
}

// SupplierService scrapes the supplier page into a batch of raw products
type SupplierService struct {
	cfg *config.Config
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(cfg *config.Config) *SupplierService {
	return &SupplierService{cfg: cfg}
}

// Ensure SupplierService implements SupplierServiceInterface
var _ SupplierServiceInterface = (*SupplierService)(nil)

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// newContext creates a fresh chromedp context (one browser, one tab)
func (s *SupplierService) newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.NoSandbox, // required for running in Docker/containers
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	chromedpCtx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return chromedpCtx, cancel
}

// FetchProducts loads the supplier page and extracts the product cards.
// Returns the filtered, categorized batch; an error means the whole run failed.
func (s *SupplierService) FetchProducts(ctx context.Context) ([]models.RawProduct, error) {
	log.Printf("🔍 FetchProducts: Loading supplier page %s", s.cfg.SupplierURL)

	ctx, cancelTimeout := context.WithTimeout(ctx, time.Duration(s.cfg.ScrapeTimeout)*time.Second)
	defer cancelTimeout()

	chromedpCtx, cancel := s.newContext(ctx)
	defer cancel()

	var cards []supplierCard
	err := utils.RetryWithBackoff(s.cfg.MaxRetries, func() error {
		if err := chromedp.Run(chromedpCtx,
			chromedp.Navigate(s.cfg.SupplierURL),
			chromedp.WaitReady("body"),
			chromedp.Sleep(2*time.Second), // give the product grid time to render
		); err != nil {
			return fmt.Errorf("navigate failed: %w", err)
		}

		if err := chromedp.Run(chromedpCtx, chromedp.Evaluate(extractCardsJS, &cards)); err != nil {
			return fmt.Errorf("card extraction failed: %w", err)
		}
		if len(cards) == 0 {
			return fmt.Errorf("no product cards found on supplier page")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("supplier scrape failed: %w", err)
	}

	products := buildProducts(cards, supplierOrigin(s.cfg.SupplierURL))
	log.Printf("✅ FetchProducts: %d products built from %d cards", len(products), len(cards))
	return products, nil
}

// extractCardsJS pulls name, price text, image and detail URL out of every
// ".fly" card on the supplier page
const extractCardsJS = `
	(function() {
		var cards = [];
		document.querySelectorAll('.fly').forEach(function(card) {
			var p = card.querySelector('p');
			var span = card.querySelector('span');
			var img = card.querySelector('.imgProd img');
			var link = card.querySelector('.linkDetalleProd');
			cards.push({
				name: p ? p.innerText.trim() : 'Sin nombre',
				price: span ? span.innerText.trim() : '0',
				image: img ? (img.getAttribute('src') || '') : '',
				url: link ? (link.getAttribute('data-url') || '') : ''
			});
		});
		return cards;
	})()
`

// supplierOrigin reduces the supplier URL to its scheme+host for resolving
// relative asset paths
func supplierOrigin(supplierURL string) string {
	u, err := url.Parse(supplierURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// buildProducts converts extracted cards into raw products: parses prices,
// resolves relative URLs, categorizes by name and applies the drop rules
// (placeholder name or price <= 0 means the card never enters the catalog).
func buildProducts(cards []supplierCard, origin string) []models.RawProduct {
	var products []models.RawProduct

	for _, card := range cards {
		name := strings.TrimSpace(card.Name)
		if name == "" {
			name = noNamePlaceholder
		}

		price := parsePrice(card.Price)
		if name == noNamePlaceholder || price <= 0 {
			continue
		}

		image := strings.TrimSpace(card.Image)
		if image != "" && !strings.HasPrefix(image, "http") {
			image = origin + ensureLeadingSlash(image)
		}

		productURL := "#"
		if rel := strings.TrimSpace(card.URL); rel != "" {
			productURL = origin + ensureLeadingSlash(rel)
		}

		products = append(products, models.RawProduct{
			ID:        len(products) + 1,
			Name:      name,
			Price:     price,
			Category:  pricing.Categorize(name),
			Image:     image,
			URL:       productURL,
			Available: true,
		})
	}

	return products
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// parsePrice extracts a number from a price label like "$ 1,234.50 MXN"
func parsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	val, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return val
}
