package state

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/peakhub/storefront/models"
)

// Observer is told about every state mutation. Metrics implement it.
type Observer interface {
	CartMutated(op string)
	ViewChanged(view string)
}

type nopObserver struct{}

func (nopObserver) CartMutated(string) {}
func (nopObserver) ViewChanged(string) {}

// Cart mutation names reported to the Observer.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update"
)

// App is one shopper's application state. Screens read it through Snapshot
// and change it only through its methods, which are safe for concurrent use.
type App struct {
	mu          sync.Mutex
	cart        *Cart
	nav         *Navigator
	drawer      Drawer
	scrollEpoch int

	store     *CartStore
	preloader *Preloader
	observer  Observer
	logger    zerolog.Logger
}

type Option func(*App)

// WithCartStore loads the cart from store now and saves it after every change.
func WithCartStore(store *CartStore) Option {
	return func(a *App) { a.store = store }
}

// WithPreloader reports the preloader's state in snapshots.
func WithPreloader(p *Preloader) Option {
	return func(a *App) { a.preloader = p }
}

func WithObserver(o Observer) Option {
	return func(a *App) { a.observer = o }
}

func WithLogger(l zerolog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// StoreTimeout bounds every cart slot read and write.
var StoreTimeout = 5 * time.Second

// storeContext detaches slot I/O from the caller's cancellation so a dropped
// request cannot cut a load or save short.
func storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), StoreTimeout)
}

func newApp(opts []Option) *App {
	a := &App{
		cart:     &Cart{},
		observer: nopObserver{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.nav = NewNavigator(func() { a.scrollEpoch++ })
	return a
}

func (a *App) load(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	loadCtx, cancel := storeContext(ctx)
	defer cancel()
	lines, err := a.store.Load(loadCtx)
	if err != nil {
		return err
	}
	a.cart = NewCart(lines)
	return nil
}

// LoadApp builds an App and loads its cart. It fails when the slot cannot be
// read; an App built then would overwrite the stored cart on its first save.
func LoadApp(ctx context.Context, opts ...Option) (*App, error) {
	a := newApp(opts)
	if err := a.load(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// NewApp is LoadApp for a single shopper: an unreadable slot is logged and
// the App starts with an empty cart.
func NewApp(ctx context.Context, opts ...Option) *App {
	a := newApp(opts)
	if err := a.load(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to load cart")
	}
	return a
}

// persist must be called with a.mu held.
func (a *App) persist(ctx context.Context, op string) {
	a.observer.CartMutated(op)
	if a.store == nil {
		return
	}
	saveCtx, cancel := storeContext(ctx)
	defer cancel()
	if err := a.store.Save(saveCtx, a.cart.lines); err != nil {
		a.logger.Error().Err(err).Str("op", op).Msg("Failed to persist cart")
	}
}

// AddToCart adds qty of variant and opens the cart drawer.
func (a *App) AddToCart(ctx context.Context, product models.Product, variant models.Variant, qty int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cart.Add(product, variant, qty)
	a.persist(ctx, OpAdd)
	a.drawer.Open()
}

// QuickAdd adds one unit of the product's first variant. Products without
// variants are left out and QuickAdd reports false.
func (a *App) QuickAdd(ctx context.Context, product models.Product) bool {
	variant, ok := product.FirstVariant()
	if !ok {
		return false
	}
	a.AddToCart(ctx, product, variant, 1)
	return true
}

func (a *App) RemoveFromCart(ctx context.Context, pos int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cart.RemoveAt(pos)
	a.persist(ctx, OpRemove)
}

func (a *App) UpdateCartQty(ctx context.Context, pos, delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cart.UpdateQuantity(pos, delta)
	a.persist(ctx, OpUpdate)
}

func (a *App) SetCurrentView(v View) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nav.SetCurrentView(v)
	a.observer.ViewChanged(string(v))
}

func (a *App) SetSelectedProductID(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nav.SelectProduct(id)
}

// OpenProduct selects id and shows the product view.
func (a *App) OpenProduct(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nav.OpenProduct(id)
	a.observer.ViewChanged(string(ViewProduct))
}

func (a *App) SetCartOpen(open bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.drawer.SetOpen(open)
}

// PointerDown forwards a pointer-down event to the drawer and reports
// whether it closed the drawer.
func (a *App) PointerDown(inside bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.drawer.PointerDown(inside)
}

// Snapshot is a point-in-time copy of the application state.
type Snapshot struct {
	CurrentView       View
	SelectedProductID string
	HasSelection      bool
	Cart              []CartLine
	IsCartOpen        bool
	DrawerListening   bool
	CartTotal         decimal.Decimal
	ItemCount         int
	Shipping          ShippingProgress
	Loading           bool
	// ScrollEpoch increments on every view transition; clients scroll to the
	// top whenever it changes.
	ScrollEpoch int
}

func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, ok := a.nav.SelectedProductID()
	total := a.cart.Total()
	s := Snapshot{
		CurrentView:       a.nav.Current(),
		SelectedProductID: id,
		HasSelection:      ok,
		Cart:              a.cart.Lines(),
		IsCartOpen:        a.drawer.IsOpen(),
		DrawerListening:   a.drawer.Listening(),
		CartTotal:         total,
		ItemCount:         a.cart.ItemCount(),
		Shipping:          NewShippingProgress(total),
		ScrollEpoch:       a.scrollEpoch,
	}
	if a.preloader != nil {
		s.Loading = a.preloader.Loading()
	}
	return s
}
