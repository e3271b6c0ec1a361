package dealer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/VBA-auto/hero-cars/config"
	"github.com/VBA-auto/hero-cars/models"
	"github.com/VBA-auto/hero-cars/utils"
)

const source = "dealer"

// Scraper drives a headless browser over a dealer site's listing pages and
// collects raw car records for the cleaner. It is the catalog acquisition
// path for sites that expose no JSON feed.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	pool       *utils.WorkerPool
	visitedURL *utils.IDSet
	retry      *utils.RetryConfig
}

// New creates a ready-to-use dealer Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		logger:     logger,
		pool:       utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visitedURL: utils.NewIDSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape is the entry point that drives pagination and detail-page scraping.
func (s *Scraper) Scrape() ([]*models.RawCar, error) {
	if s.cfg.DealerURL == "" {
		return nil, fmt.Errorf("dealer: DEALER_URL is not configured")
	}

	s.logger.Info("[dealer] Starting scrape — target: %d pages, %d cars/page",
		s.cfg.PagesToScrape, s.cfg.ListingsPerPage)

	chromeBin := findChromeBinary()
	s.logger.Info("[dealer] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	var cars []*models.RawCar
	currentURL := s.cfg.DealerURL

	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		s.logger.Info("[dealer] Scraping page %d — URL: %s", page, currentURL)

		pageCars, nextURL, err := s.scrapePage(allocCtx, currentURL, page)
		if err != nil {
			s.logger.Error("[dealer] Page %d failed: %v", page, err)
			break
		}

		if len(pageCars) == 0 {
			s.logger.Warn("[dealer] Page %d returned 0 cars — stopping", page)
			break
		}

		s.enrichCars(allocCtx, pageCars)
		cars = append(cars, pageCars...)

		s.logger.Info("[dealer] Page %d done — collected %d cars so far", page, len(cars))

		if nextURL == "" || page >= s.cfg.PagesToScrape {
			break
		}

		currentURL = nextURL
		time.Sleep(time.Duration(s.cfg.RateLimitMs) * time.Millisecond)
	}

	s.logger.Info("[dealer] Scrape complete — total raw cars: %d", len(cars))
	return cars, nil
}

// scrapePage loads one listing page and extracts the car cards plus the
// next-page link.
func (s *Scraper) scrapePage(allocCtx context.Context, pageURL string, pageNum int) ([]*models.RawCar, string, error) {
	var rawCars []*models.RawCar
	var nextURL string

	err := s.retry.Do(fmt.Sprintf("scrape-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		type cardData struct {
			Title   string   `json:"title"`
			Price   string   `json:"price"`
			Mileage string   `json:"mileage"`
			Year    string   `json:"year"`
			Fuel    string   `json:"fuel"`
			Gearbox string   `json:"gearbox"`
			City    string   `json:"city"`
			Images  []string `json:"images"`
			URL     string   `json:"url"`
		}

		var cards []cardData
		var nextPageURL string

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(4*time.Second),

			// Scroll to trigger lazy-loaded cards
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),

			chromedp.Evaluate(`
				(function() {
					var results = [];
					var limit = `+fmt.Sprintf("%d", s.cfg.ListingsPerPage)+`;

					var cardSelectors = [
						'[data-testid="listing-card"]',
						'article.vehicle-card',
						'div.searchCard',
						'li[class*="listing-item"]'
					];

					var cards = [];
					for (var si = 0; si < cardSelectors.length; si++) {
						cards = document.querySelectorAll(cardSelectors[si]);
						if (cards.length > 0) break;
					}

					var seen = {};
					for (var i = 0; i < cards.length && results.length < limit; i++) {
						var card = cards[i];

						var linkEl = card.querySelector('a[href]');
						var url = linkEl ? linkEl.href : '';
						if (!url || seen[url]) continue;
						seen[url] = true;

						var titleEl = card.querySelector('h2, h3, [class*="title"]');
						var title = titleEl ? titleEl.innerText.trim() : '';

						var text = card.innerText || '';
						var lines = text.split('\n').map(function(l){return l.trim();}).filter(Boolean);

						var price = lines.find(function(l){return /€/.test(l);}) || '';
						var mileage = lines.find(function(l){return /km/i.test(l);}) || '';
						var year = lines.find(function(l){return /^(19|20)\d{2}$/.test(l);}) || '';
						var fuel = lines.find(function(l){
							return /diesel|essence|petrol|hybrid|electri/i.test(l);
						}) || '';
						var gearbox = lines.find(function(l){
							return /manu|auto/i.test(l) && l.length < 30;
						}) || '';

						var imgs = [];
						card.querySelectorAll('img[src]').forEach(function(img){
							if (img.src && imgs.length < 5) imgs.push(img.src);
						});

						results.push({
							title:   title,
							price:   price,
							mileage: mileage,
							year:    year,
							fuel:    fuel,
							gearbox: gearbox,
							city:    '',
							images:  imgs,
							url:     url
						});
					}
					return results;
				})()
			`, &cards),

			chromedp.Evaluate(`
				(function() {
					var next = document.querySelector('a[rel="next"]') ||
					           document.querySelector('a[aria-label="Next"]') ||
					           document.querySelector('[data-testid="pagination-next"]');
					return next && next.href ? next.href : '';
				})()
			`, &nextPageURL),
		)

		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}

		s.logger.Debug("[dealer] Page %d — found %d cards", pageNum, len(cards))

		for _, c := range cards {
			if c.URL == "" {
				continue
			}
			if !s.visitedURL.Add(c.URL) {
				s.logger.Debug("[dealer] Skipping duplicate: %s", c.URL)
				continue
			}

			brand, model := splitTitle(c.Title)
			rawCars = append(rawCars, &models.RawCar{
				Brand:      brand,
				Model:      model,
				Name:       c.Title,
				RawYear:    c.Year,
				RawMileage: c.Mileage,
				RawPrice:   c.Price,
				Fuel:       c.Fuel,
				Gearbox:    c.Gearbox,
				Location:   c.City,
				ImageURLs:  c.Images,
				URL:        c.URL,
				ScrapedAt:  time.Now(),
				Source:     source,
			})
		}

		nextURL = nextPageURL
		return nil
	})

	return rawCars, nextURL, err
}

// enrichCars visits detail pages for cars that are missing facet fields the
// filtering engine needs (fuel, gearbox, location).
func (s *Scraper) enrichCars(allocCtx context.Context, cars []*models.RawCar) {
	for _, car := range cars {
		c := car
		if c.URL == "" {
			continue
		}

		if c.Fuel != "" && c.Gearbox != "" && c.Location != "" {
			continue
		}

		s.pool.Submit(func() {
			enriched, err := s.scrapeDetailPage(allocCtx, c.URL)
			if err != nil {
				s.logger.Warn("[dealer] Detail page failed for %s: %v", c.URL, err)
				return
			}

			if c.Fuel == "" {
				c.Fuel = enriched.Fuel
			}
			if c.Gearbox == "" {
				c.Gearbox = enriched.Gearbox
			}
			if c.Location == "" {
				c.Location = enriched.Location
			}
			if len(c.ImageURLs) == 0 {
				c.ImageURLs = enriched.ImageURLs
			}

			s.logger.Debug("[dealer] Enriched: %s", c.Name)
		})
	}
	s.pool.Wait()
}

// scrapeDetailPage visits a car detail page and extracts the spec table.
func (s *Scraper) scrapeDetailPage(allocCtx context.Context, url string) (*models.RawCar, error) {
	car := &models.RawCar{URL: url, Source: source}

	err := s.retry.Do("detail-page", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		type detailData struct {
			Fuel     string   `json:"fuel"`
			Gearbox  string   `json:"gearbox"`
			Location string   `json:"location"`
			Images   []string `json:"images"`
		}

		var details detailData

		err := chromedp.Run(ctx,
			chromedp.Navigate(url),
			chromedp.Sleep(3*time.Second),

			chromedp.Evaluate(`
				(function() {
					var result = { fuel: '', gearbox: '', location: '', images: [] };

					// Spec tables are usually dt/dd or label/value pairs.
					var rows = document.querySelectorAll('dt, th, [class*="spec-label"]');
					rows.forEach(function(label) {
						var key = (label.innerText || '').toLowerCase();
						var valueEl = label.nextElementSibling;
						var value = valueEl ? valueEl.innerText.trim() : '';
						if (!value) return;
						if (/energie|fuel|carburant/.test(key)) result.fuel = value;
						if (/transmission|gearbox|boite|boîte/.test(key)) result.gearbox = value;
						if (/localisation|location|ville|city/.test(key)) result.location = value;
					});

					document.querySelectorAll('[class*="gallery"] img[src], main img[src]').forEach(function(img) {
						if (img.src && result.images.length < 10) result.images.push(img.src);
					});

					return result;
				})()
			`, &details),
		)

		if err != nil {
			return fmt.Errorf("chromedp detail extract: %w", err)
		}

		car.Fuel = details.Fuel
		car.Gearbox = details.Gearbox
		car.Location = details.Location
		car.ImageURLs = details.Images
		return nil
	})

	return car, err
}

// splitTitle separates a "Renault Clio IV" style card title into brand and
// model on the first space.
func splitTitle(title string) (brand, model string) {
	for i, r := range title {
		if r == ' ' {
			return title[:i], title[i+1:]
		}
	}
	return title, ""
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
