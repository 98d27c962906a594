package park4night

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

const placePathMarker = "/fr/place/"

// Client drives a headless browser against the spot site. The site renders
// its result list client-side, Rod with a stealth page keeps it from serving
// the bot wall.
type Client struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	cfg      *config.ScraperConfig
	logger   *zap.Logger
}

func NewClient(cfg *config.ScraperConfig, logger *zap.Logger) (*Client, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(true)
	if cfg.BrowserBinPath != "" {
		l = l.Bin(cfg.BrowserBinPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	logger.Info("Scraper browser started", zap.Bool("headless", cfg.Headless))

	return &Client{
		browser:  browser,
		launcher: l,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

func (c *Client) Close() error {
	err := c.browser.Close()
	c.launcher.Cleanup()
	return err
}

// Search opens the geographic search page for a point and returns the detail
// page URLs found in the result list.
func (c *Client) Search(ctx context.Context, lat, lon float64) ([]string, error) {
	searchURL := fmt.Sprintf("%s/fr/search?lat=%s&lng=%s&z=%d",
		c.cfg.BaseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
		c.cfg.ZoomLevel,
	)

	c.logger.Debug("Opening spot search", zap.String("url", searchURL))

	page, err := c.openPage(ctx, searchURL)
	if err != nil {
		c.logger.Error("Failed to open search page", zap.String("url", searchURL), zap.Error(err))
		return nil, errors.ErrSourceUnavailable
	}
	defer page.Close()

	c.dismissCookieBanner(page)

	// Result list is rendered after the map loads.
	if _, err := page.Timeout(c.cfg.NavTimeout).Element("#searchmap-list-results"); err != nil {
		c.logger.Error("Search results did not render", zap.String("url", searchURL), zap.Error(err))
		return nil, errors.ErrSourceUnavailable
	}

	anchors, err := page.Elements(`#searchmap-list-results li a[href*="` + placePathMarker + `"]`)
	if err != nil {
		return nil, fmt.Errorf("failed to query result links: %w", err)
	}

	seen := make(map[string]bool)
	var urls []string
	for _, a := range anchors {
		href, err := a.Attribute("href")
		if err != nil || href == nil || *href == "" {
			continue
		}
		u := *href
		if strings.HasPrefix(u, "/") {
			u = c.cfg.BaseURL + u
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}

	c.logger.Info("Spot search done",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Int("results", len(urls)))

	return urls, nil
}

// ExternalID extracts the site identifier from a detail page URL, or ""
// when the URL does not point at a place page.
func (c *Client) ExternalID(url string) string {
	idx := strings.Index(url, placePathMarker)
	if idx < 0 {
		return ""
	}
	id := url[idx+len(placePathMarker):]
	if slash := strings.IndexByte(id, '/'); slash >= 0 {
		id = id[:slash]
	}
	if q := strings.IndexByte(id, '?'); q >= 0 {
		id = id[:q]
	}
	return id
}

// Detail scrapes one place page. Only the name is mandatory; every other
// field degrades to its zero value when the selector finds nothing.
func (c *Client) Detail(ctx context.Context, url string) (*domain.SpotRecord, error) {
	page, err := c.openPage(ctx, url)
	if err != nil {
		c.logger.Error("Failed to open place page", zap.String("url", url), zap.Error(err))
		return nil, errors.ErrSourceUnavailable
	}
	defer page.Close()

	nameEl, err := page.Timeout(c.cfg.NavTimeout).Element("h1.place-header-name")
	if err != nil {
		c.logger.Error("Place page has no name header", zap.String("url", url), zap.Error(err))
		return nil, errors.ErrSourceUnavailable
	}
	name, err := nameEl.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to read place name: %w", err)
	}

	record := &domain.SpotRecord{
		ExternalID: c.ExternalID(url),
		Name:       strings.TrimSpace(name),
		URL:        url,
	}

	if typeText := c.elementText(page, "span.place-specs-type.tag"); typeText != "" {
		record.Type = typeText
	}

	if ratingText := c.elementText(page, "span.rating-note"); ratingText != "" {
		if rating, err := strconv.ParseFloat(strings.ReplaceAll(ratingText, ",", "."), 64); err == nil {
			record.Rating = &rating
		}
	}

	record.Description = c.elementText(page, `div.place-info-description p[lang="fr"]`)

	record.Latitude, record.Longitude = c.coordinates(page)

	if imgs, err := page.Elements("ul.place-specs-services li img"); err == nil {
		for _, img := range imgs {
			label, err := img.Attribute("aria-label")
			if err != nil || label == nil || *label == "" {
				continue
			}
			record.Services = append(record.Services, *label)
		}
	}

	c.logger.Debug("Scraped place",
		zap.String("external_id", record.ExternalID),
		zap.String("name", record.Name),
		zap.Int("services", len(record.Services)))

	return record, nil
}

func (c *Client) openPage(ctx context.Context, url string) (*rod.Page, error) {
	page, err := stealth.Page(c.browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	nav := page.Context(ctx).Timeout(c.cfg.NavTimeout)
	if err := nav.Navigate(url); err != nil {
		page.Close()
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}
	if err := nav.WaitLoad(); err != nil {
		c.logger.Debug("Page load wait timed out", zap.String("url", url), zap.Error(err))
	}

	return page, nil
}

// elementText returns the trimmed text of the first element matching the
// selector, or "" when the element is absent or unreadable.
func (c *Client) elementText(page *rod.Page, selector string) string {
	el, err := page.Timeout(c.cfg.DetailDelay).Element(selector)
	if err != nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// dismissCookieBanner rejects the consent dialog when it shows up. Failure is
// fine, the banner does not block the result list on every visit.
func (c *Client) dismissCookieBanner(page *rod.Page) {
	el, err := page.Timeout(c.cfg.DetailDelay * 5).Element(".cc-container .cc-btn-reject")
	if err != nil {
		return
	}
	if err := el.Click("left", 1); err != nil {
		c.logger.Debug("Cookie banner click failed", zap.Error(err))
	}
}

// coordinates parses the "lat, lng" span on the place page.
func (c *Client) coordinates(page *rod.Page) (float64, float64) {
	el, err := page.Timeout(c.cfg.DetailDelay).ElementX(`//span[contains(text(), '(lat, lng)')]`)
	if err != nil {
		return 0, 0
	}
	text, err := el.Text()
	if err != nil {
		return 0, 0
	}

	// Text looks like "48.36939, -4.75968 (lat, lng)".
	if idx := strings.IndexByte(text, '('); idx >= 0 {
		text = text[:idx]
	}
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return 0, 0
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0
	}

	return lat, lon
}
