package storefront

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"CorpMart/internal/catalog"
	"CorpMart/internal/selection"
	"CorpMart/internal/state"
	"CorpMart/internal/store"
	"CorpMart/internal/view"
	"CorpMart/pkg/kit"
)

const (
	priceDebounce  = 500 * time.Millisecond
	searchDebounce = 300 * time.Millisecond

	fetchErrorMessage = "Failed to load products. Please check your internet connection or try again later."
)

// Trigger classifies what caused a filter update. Input-class triggers are
// debounced; apply-class triggers cancel any pending recompute and run now.
type Trigger string

const (
	TriggerApply       Trigger = "apply"
	TriggerPriceInput  Trigger = "price-input"
	TriggerSearchInput Trigger = "search-input"
)

func ParseTrigger(s string) Trigger {
	switch Trigger(s) {
	case TriggerPriceInput, TriggerSearchInput:
		return Trigger(s)
	default:
		return TriggerApply
	}
}

// FilterUpdate carries the raw form values of one filter change. Price
// bounds that fail to parse as decimals are treated as unset.
type FilterUpdate struct {
	Categories []string
	MinPrice   string
	MaxPrice   string
	Search     string
	Sort       string
}

// Controller owns one page session: the catalog snapshot, the ephemeral
// filter state and the cached selection the grid renders from.
type Controller struct {
	SessionID string

	catalog  *catalog.Client
	limit    int
	state    *state.Manager
	renderer *view.Renderer
	log      *zap.Logger

	debounce *kit.Debouncer
	version  atomic.Uint64

	mu           sync.Mutex
	snap         *catalog.Snapshot
	fetchErr     error
	fetchGen     uint64
	installedGen uint64
	filter       selection.Filter
	selected     []catalog.Product
}

type Config struct {
	Catalog *catalog.Client
	Limit   int
	Store   store.Store
	Log     *zap.Logger
}

func NewController(cfg Config) (*Controller, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		SessionID: uuid.NewString(),
		catalog:   cfg.Catalog,
		limit:     cfg.Limit,
		renderer:  renderer,
		log:       log,
		debounce:  kit.NewDebouncer(),
	}
	c.state = state.NewManager(cfg.Store, log)
	c.state.Subscribe(func() {
		c.version.Add(1)
	})
	return c, nil
}

// Close cancels any pending recompute. The controller must not be used
// afterwards.
func (c *Controller) Close() {
	c.debounce.Stop()
}

func (c *Controller) State() *state.Manager { return c.state }

// StateVersion increases after every successful like/cart mutation; a view
// rendered after the bump reads the mutated storage state.
func (c *Controller) StateVersion() uint64 { return c.version.Load() }

// Refresh fetches a new catalog snapshot. When fetches overlap, the one
// that started last wins; an older fetch completing late is discarded
// rather than overwriting the fresher snapshot.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.fetchGen++
	gen := c.fetchGen
	c.mu.Unlock()

	products, err := c.catalog.Fetch(ctx, c.limit)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen <= c.installedGen {
		c.log.Debug("stale fetch discarded", zap.Uint64("gen", gen))
		return nil
	}
	c.installedGen = gen

	if err != nil {
		c.fetchErr = err
		c.snap = nil
		c.selected = nil
		c.log.Error("catalog fetch failed", zap.Error(err))
		return err
	}

	c.fetchErr = nil
	c.snap = catalog.NewSnapshot(products)
	c.filter.Categories = intersectCategories(c.filter.Categories, c.snap.Categories())
	c.recomputeLocked()
	c.log.Info("catalog snapshot installed",
		zap.Int("products", c.snap.Len()),
		zap.Uint64("gen", gen),
	)
	return nil
}

// UpdateFilter stores the new filter state and either recomputes the
// selection immediately or schedules a debounced recompute, superseding any
// pending one.
func (c *Controller) UpdateFilter(u FilterUpdate, trigger Trigger) {
	c.mu.Lock()
	c.filter = selection.Filter{
		Categories: c.sanitizeCategoriesLocked(u.Categories),
		MinPrice:   parsePriceBound(u.MinPrice),
		MaxPrice:   parsePriceBound(u.MaxPrice),
		Search:     u.Search,
		Sort:       selection.ParseSort(u.Sort),
	}
	c.mu.Unlock()

	switch trigger {
	case TriggerPriceInput:
		c.debounce.Schedule(priceDebounce, c.recompute)
	case TriggerSearchInput:
		c.debounce.Schedule(searchDebounce, c.recompute)
	default:
		c.debounce.Stop()
		c.recompute()
	}
}

// ResetFilters restores the default state: all categories, no bounds, no
// search, default order.
func (c *Controller) ResetFilters() {
	c.mu.Lock()
	c.filter = selection.Filter{Sort: selection.SortDefault}
	c.mu.Unlock()

	c.debounce.Stop()
	c.recompute()
}

// BestSellers resets the filters and sorts by rating, as the header
// navigation does.
func (c *Controller) BestSellers() {
	c.mu.Lock()
	c.filter = selection.Filter{Sort: selection.SortRatingDesc}
	c.mu.Unlock()

	c.debounce.Stop()
	c.recompute()
}

func (c *Controller) recompute() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recomputeLocked()
}

func (c *Controller) recomputeLocked() {
	if c.snap == nil {
		c.selected = nil
		return
	}
	c.selected = selection.Select(c.snap.Products(), c.filter)
}

// CatalogPageData assembles the catalog page view under the session lock.
func (c *Controller) CatalogPageData(ctx context.Context) (view.CatalogPage, error) {
	liked, err := c.state.LikedSet(ctx)
	if err != nil {
		return view.CatalogPage{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	page := view.CatalogPage{
		MinPrice: boundString(c.filter.MinPrice),
		MaxPrice: boundString(c.filter.MaxPrice),
		Search:   c.filter.Search,
		Sort:     string(sortOrDefault(c.filter.Sort)),
	}

	if c.fetchErr != nil || c.snap == nil {
		page.FetchError = fetchErrorMessage
		return page, nil
	}

	page.Grid = view.BuildGrid(c.selected, liked)
	page.Categories = view.BuildCategoryOptions(c.snap.Categories(), c.filter.Categories)
	return page, nil
}

// AccountPageData assembles the liked grid and cart list from the current
// storage state and snapshot.
func (c *Controller) AccountPageData(ctx context.Context) (view.AccountPage, error) {
	liked, err := c.state.LikedSet(ctx)
	if err != nil {
		return view.AccountPage{}, err
	}
	items, err := c.state.CartItems(ctx)
	if err != nil {
		return view.AccountPage{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetchErr != nil || c.snap == nil {
		return view.AccountPage{FetchError: fetchErrorMessage}, nil
	}

	return view.AccountPage{
		Liked: view.BuildLiked(c.snap.Products(), liked),
		Cart:  view.BuildCart(items, c.snap.Lookup),
	}, nil
}

func (c *Controller) RenderCatalog(ctx context.Context, w io.Writer) error {
	page, err := c.CatalogPageData(ctx)
	if err != nil {
		return err
	}
	return c.renderer.CatalogPage(w, page)
}

func (c *Controller) RenderAccount(ctx context.Context, w io.Writer) error {
	page, err := c.AccountPageData(ctx)
	if err != nil {
		return err
	}
	return c.renderer.AccountPage(w, page)
}

// ResolveProduct looks up a product in the current snapshot, for display
// and logging; mutations do not depend on resolution succeeding.
func (c *Controller) ResolveProduct(id string) (catalog.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return catalog.Product{}, false
	}
	return c.snap.Lookup(id)
}

func (c *Controller) Ready(ctx context.Context) error {
	return c.state.Ping(ctx)
}

func (c *Controller) sanitizeCategoriesLocked(cats []string) []string {
	if c.snap == nil {
		return nil
	}
	return intersectCategories(cats, c.snap.Categories())
}

func intersectCategories(cats, observed []string) []string {
	known := make(map[string]struct{}, len(observed))
	for _, c := range observed {
		known[c] = struct{}{}
	}

	out := make([]string, 0, len(cats))
	for _, c := range cats {
		if _, ok := known[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func parsePriceBound(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func boundString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func sortOrDefault(s selection.Sort) selection.Sort {
	if s == "" {
		return selection.SortDefault
	}
	return s
}
