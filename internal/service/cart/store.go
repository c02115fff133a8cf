package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	"storefront/internal/notify"
	cartrepo "storefront/internal/repository/cart"
)

type catalogSource interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// Options tunes persistence. Zero values fall back to DefaultSlot and no timeout.
type Options struct {
	Slot           string
	PersistTimeout time.Duration
}

const DefaultSlot = "cart"

// Store owns the cart for the lifetime of the process and mirrors it to a
// persisted slot after every change. Cart mutations are serialized; the
// catalog list is guarded separately so a slow fetch never blocks them.
type Store struct {
	mu   sync.Mutex
	cart domain.Cart

	catalogMu sync.RWMutex
	products  []domain.Product
	loading   bool
	loadGen   uint64
	inflight  int

	repo     cartrepo.Repository
	catalog  catalogSource
	notifier notify.Notifier
	logger   *log.Logger
	opts     Options

	now   func() time.Time
	newID func() string
}

// New builds an empty store. Call Init (or Hydrate and LoadCatalog) before serving.
func New(repo cartrepo.Repository, catalog catalogSource, notifier notify.Notifier, logger *log.Logger, opts Options) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if notifier == nil {
		notifier = notify.NewLog(logger)
	}
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	return &Store{
		cart:     domain.Cart{},
		products: []domain.Product{},
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Init hydrates the cart synchronously, then loads the catalog in the
// background. The returned channel is closed once the catalog load finishes.
func (s *Store) Init(ctx context.Context) <-chan struct{} {
	s.Hydrate(ctx)
	return s.RefreshCatalog(ctx)
}

// RefreshCatalog marks the catalog as loading before returning and fetches it
// in the background. The returned channel is closed when the fetch returns.
func (s *Store) RefreshCatalog(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if s.catalog == nil {
		close(done)
		return done
	}
	gen := s.beginLoad()
	go func() {
		defer close(done)
		s.fetchCatalog(ctx, gen)
	}()
	return done
}

// Hydrate replaces the cart with the persisted one. A missing, unreadable or
// malformed slot leaves the cart empty; the failure is only logged.
func (s *Store) Hydrate(ctx context.Context) {
	data, err := s.repo.Load(ctx, s.opts.Slot)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("cart store: hydrate slot=%s empty", s.opts.Slot)
		} else {
			s.logger.Printf("cart store: hydrate slot=%s load error=%v", s.opts.Slot, err)
		}
		s.replace(domain.Cart{})
		return
	}

	c, err := decodeCart(data)
	if err != nil {
		s.logger.Printf("cart store: hydrate slot=%s discarding malformed cart: %v", s.opts.Slot, err)
		s.replace(domain.Cart{})
		return
	}
	s.replace(c)
	s.logger.Printf("cart store: hydrate slot=%s lines=%d", s.opts.Slot, len(c))
}

func (s *Store) replace(c domain.Cart) {
	s.mu.Lock()
	s.cart = c
	s.mu.Unlock()
}

// LoadCatalog fetches the product list. On failure the list is emptied and a
// catalog_error notice is raised; the error is returned for logging only.
// Overlapping loads are allowed: only the most recently started one updates
// the list, and loading stays true until every load has returned.
func (s *Store) LoadCatalog(ctx context.Context) error {
	if s.catalog == nil {
		return nil
	}
	return s.fetchCatalog(ctx, s.beginLoad())
}

func (s *Store) beginLoad() uint64 {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()
	s.loadGen++
	s.inflight++
	s.loading = true
	return s.loadGen
}

func (s *Store) fetchCatalog(ctx context.Context, gen uint64) error {
	products, err := s.catalog.List(ctx)

	s.catalogMu.Lock()
	latest := gen == s.loadGen
	if latest {
		if err != nil {
			s.products = []domain.Product{}
		} else {
			s.products = append([]domain.Product{}, products...)
		}
	}
	s.inflight--
	s.loading = s.inflight > 0
	s.catalogMu.Unlock()

	if err != nil {
		s.logger.Printf("cart store: catalog load error=%v latest=%t", err, latest)
		if latest {
			s.emit(ctx, domain.NoticeCatalogError, 0, "Failed to load products")
		}
		return err
	}
	s.logger.Printf("cart store: catalog loaded count=%d latest=%t", len(products), latest)
	return nil
}

// Products returns a copy of the loaded catalog.
func (s *Store) Products() []domain.Product {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	return append([]domain.Product{}, s.products...)
}

// Product looks id up in the loaded catalog.
func (s *Store) Product(id int) (domain.Product, bool) {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Store) Loading() bool {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	return s.loading
}

// Cart returns a copy of the current line items.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// TotalPrice is derived from the line items on every call.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// AddToCart adds qty of p, merging into an existing line for p.ID.
// qty < 1 is ignored; a merge that would overflow the line is Rejected.
func (s *Store) AddToCart(ctx context.Context, p domain.Product, qty int) (domain.Cart, Outcome) {
	c, outcome := s.apply(ctx, func(c domain.Cart) (domain.Cart, Outcome) {
		return addLine(c, p, qty)
	})
	s.logger.Printf("cart store: add id=%d qty=%d outcome=%s", p.ID, qty, outcome)
	switch outcome {
	case Added:
		s.emit(ctx, domain.NoticeAdded, p.ID, "Product Added")
	case Updated:
		s.emit(ctx, domain.NoticeUpdated, p.ID, "Product Updated")
	}
	return c, outcome
}

// UpdateQuantity sets the quantity of an existing line. qty <= 0 removes the
// line; an unknown id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id, qty int) (domain.Cart, Outcome) {
	if qty <= 0 {
		return s.RemoveFromCart(ctx, id)
	}
	c, outcome := s.apply(ctx, func(c domain.Cart) (domain.Cart, Outcome) {
		return setQuantity(c, id, qty)
	})
	s.logger.Printf("cart store: update id=%d qty=%d outcome=%s", id, qty, outcome)
	return c, outcome
}

// RemoveFromCart drops the line for id if present.
func (s *Store) RemoveFromCart(ctx context.Context, id int) (domain.Cart, Outcome) {
	c, outcome := s.apply(ctx, func(c domain.Cart) (domain.Cart, Outcome) {
		return removeLine(c, id)
	})
	s.logger.Printf("cart store: remove id=%d outcome=%s", id, outcome)
	if outcome == Removed {
		s.emit(ctx, domain.NoticeRemoved, id, "Product Removed")
	}
	return c, outcome
}

// Summary is a consistent read of the cart with a shipping choice applied.
type Summary struct {
	Items         domain.Cart           `json:"items"`
	TotalQuantity int                   `json:"totalQuantity"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Shipping      domain.ShippingOption `json:"shipping"`
	Total         decimal.Decimal       `json:"total"`
}

func (s *Store) Summary(shippingKey string) (Summary, error) {
	opt, err := domain.LookupShipping(shippingKey)
	if err != nil {
		return Summary{}, err
	}
	s.mu.Lock()
	c := s.cart.Clone()
	s.mu.Unlock()

	subtotal := c.Total()
	return Summary{
		Items:         c,
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      subtotal,
		Shipping:      opt,
		Total:         subtotal.Add(opt.Price),
	}, nil
}

func (s *Store) apply(ctx context.Context, fn func(domain.Cart) (domain.Cart, Outcome)) (domain.Cart, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, outcome := fn(s.cart)
	if outcome == Unchanged || outcome == Rejected {
		return s.cart.Clone(), outcome
	}
	s.cart = next
	s.persistLocked(ctx)
	return next.Clone(), outcome
}

// persistLocked writes the cart to the slot. Failures are logged and not
// retried; the in-memory cart stays authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	payload, err := encodeCart(s.cart)
	if err != nil {
		s.logger.Printf("cart store: encode error=%v", err)
		return
	}

	ctx = context.WithoutCancel(ctx)
	if s.opts.PersistTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.PersistTimeout)
		defer cancel()
	}
	if err := s.repo.Save(ctx, s.opts.Slot, payload); err != nil {
		s.logger.Printf("cart store: persist slot=%s error=%v", s.opts.Slot, err)
	}
}

func (s *Store) emit(ctx context.Context, kind domain.NoticeKind, productID int, message string) {
	s.notifier.Notify(context.WithoutCancel(ctx), domain.Notice{
		ID:        s.newID(),
		Kind:      kind,
		ProductID: productID,
		Message:   message,
		At:        s.now().UTC(),
	})
}
