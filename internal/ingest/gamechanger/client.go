package gamechanger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

const (
	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// fetchTimeout bounds a single page load including render time
	fetchTimeout = 45 * time.Second

	// renderPause lets the SPA finish drawing after navigation
	renderPause = 2 * time.Second
)

// Client fetches GameChanger pages through a headless Chrome instance.
// Authentication is handled entirely out of band: the browser runs against a
// persistent user-data directory that already holds a logged-in session, and
// the client never sees or sends credentials. Requests are rate limited to
// stay polite with the upstream site.
type Client struct {
	limiter *rate.Limiter

	allocCtx context.Context
	cancel   context.CancelFunc
}

// ClientOptions configures the headless browser.
type ClientOptions struct {
	UserDataDir string        // persistent Chrome profile carrying the session
	ProfileDir  string        // profile name within UserDataDir
	MinInterval time.Duration // minimum spacing between fetches
}

// NewClient starts a headless Chrome allocator for page fetching.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.MinInterval <= 0 {
		opts.MinInterval = 2 * time.Second
	}

	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(UserAgent),
	)
	if opts.UserDataDir != "" {
		execOpts = append(execOpts, chromedp.UserDataDir(opts.UserDataDir))
	}
	if opts.ProfileDir != "" {
		execOpts = append(execOpts, chromedp.Flag("profile-directory", opts.ProfileDir))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), execOpts...)

	return &Client{
		limiter:  rate.NewLimiter(rate.Every(opts.MinInterval), 1),
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases the browser allocator.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Fetch loads a page and returns its rendered HTML. The schedule grid is
// lazy-loaded, so the page is scrolled to the bottom until its height stops
// growing before the HTML is captured.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, fetchTimeout)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(renderPause),
		scrollToBottom(),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error fetching %s: %w", url, err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned for %s", url)
	}

	return htmlContent, nil
}

// scrollToBottom keeps scrolling until document height stops growing, capped
// at ten rounds.
func scrollToBottom() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		lastHeight := -1
		for i := 0; i < 10; i++ {
			var height int
			if err := chromedp.Evaluate(`document.body.scrollHeight`, &height).Do(ctx); err != nil {
				return err
			}
			if height == lastHeight {
				return nil
			}
			lastHeight = height

			if err := chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight); true`, nil).Do(ctx); err != nil {
				return err
			}
			if err := chromedp.Sleep(time.Second).Do(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// ParseHTML converts raw HTML to a goquery Document for parsing
func ParseHTML(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
