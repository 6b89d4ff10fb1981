package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/cart"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/pricing"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/wizard"
)

var (
	ErrEmptyCart = errors.New("checkout: cart is empty, nothing to submit")
	ErrWrongFlow = errors.New("checkout: session flow does not match operation")
)

// Submitter is the outbound seam of the orchestration layer, implemented by
// submit.Client.
type Submitter interface {
	SubmitOrder(ctx context.Context, sessionID string, order domain.OrderSubmission) (*domain.OrderReceipt, error)
	SubmitBooking(ctx context.Context, sessionID string, booking domain.BookingSubmission) (*domain.BookingConfirmation, error)
}

// Service composes submissions from the session, the cart and the pricing
// engine, and drives them through the submission client. All totals it emits
// come from pricing.Compute, the same code path the UI renders from.
type Service struct {
	cart   *cart.Store
	client Submitter
	tax    pricing.TaxPolicy
	origin domain.Origin
	log    *zap.Logger
}

type Option func(*Service)

func WithTaxPolicy(p pricing.TaxPolicy) Option { return func(s *Service) { s.tax = p } }

func WithOrigin(o domain.Origin) Option { return func(s *Service) { s.origin = o } }

func WithLogger(log *zap.Logger) Option { return func(s *Service) { s.log = log } }

func New(cartStore *cart.Store, client Submitter, opts ...Option) *Service {
	s := &Service{
		cart:   cartStore,
		client: client,
		tax:    pricing.ZeroTax{},
		origin: domain.OriginPOS,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Totals derives the breakdown for the current cart and discount. Displayed,
// receipt and submitted totals all come through here.
func (s *Service) Totals(spec domain.DiscountSpec) domain.PriceBreakdown {
	return pricing.Compute(s.cart.Items(), spec, s.tax)
}

// PlaceOrder submits the purchase composed from the session draft, the
// current cart and the derived breakdown. On any classified failure the
// session stays on its pre-terminal step with the draft intact; only an
// acknowledged success clears the tenant's cart slot.
func (s *Service) PlaceOrder(ctx context.Context, sess *wizard.Session, spec domain.DiscountSpec) (*domain.OrderReceipt, error) {
	if sess.Flow != wizard.FlowPurchase {
		return nil, ErrWrongFlow
	}
	// Refuse before composing anything: an unready session must never
	// produce an outbound request the backend could commit.
	if err := sess.ReadyToSubmit(); err != nil {
		return nil, err
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	breakdown := pricing.Compute(items, spec, s.tax)
	order := composeOrder(sess.Draft, items, breakdown, s.origin)

	receipt, err := s.client.SubmitOrder(ctx, sess.ID, order)
	if err != nil {
		s.log.Warn("order submission failed",
			zap.String("session", sess.ID),
			zap.String("local_ref", order.LocalRef),
			zap.Error(err))
		return nil, err
	}

	if err := sess.MarkSubmitted(); err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.String("session", sess.ID),
		zap.String("receipt", receipt.ReceiptNumber),
		zap.String("total", order.Total.String()))
	return receipt, nil
}

// AcknowledgeReceipt clears the tenant's persisted cart slot once the user
// has seen the receipt. Kept separate from PlaceOrder so a crash between
// response and acknowledgement cannot lose an un-presented cart.
func (s *Service) AcknowledgeReceipt(ctx context.Context) error {
	return s.cart.Clear(ctx)
}

// BookService submits the booking composed from the session draft. Bookings
// do not touch the cart.
func (s *Service) BookService(ctx context.Context, sess *wizard.Session) (*domain.BookingConfirmation, error) {
	if sess.Flow != wizard.FlowBooking {
		return nil, ErrWrongFlow
	}
	if err := sess.ReadyToSubmit(); err != nil {
		return nil, err
	}

	booking := domain.BookingSubmission{
		LocalRef:   uuid.NewString(),
		TenantRef:  sess.Tenant,
		ServiceRef: sess.Draft.ServiceRef,
		Customer:   sess.Draft.Customer,
		Date:       sess.Draft.Date,
		Time:       sess.Draft.Time,
		Preference: sess.Draft.StaffPreference,
		StaffRef:   sess.Draft.StaffRef,
		Notes:      sess.Draft.Notes,
	}

	conf, err := s.client.SubmitBooking(ctx, sess.ID, booking)
	if err != nil {
		s.log.Warn("booking submission failed",
			zap.String("session", sess.ID),
			zap.Error(err))
		return nil, err
	}

	if err := sess.MarkSubmitted(); err != nil {
		return nil, err
	}

	s.log.Info("booking placed",
		zap.String("session", sess.ID),
		zap.String("booking", conf.BookingID))
	return conf, nil
}

// composeOrder freezes one immutable submission payload. The payment status
// is resolved here, exactly once, from the method current at this instant.
func composeOrder(draft wizard.Draft, items []domain.LineItem, bd domain.PriceBreakdown, origin domain.Origin) domain.OrderSubmission {
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		oi := domain.OrderItem{
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		}
		switch it.Kind {
		case domain.ItemKindService:
			oi.ServiceRef = it.CatalogRef()
		default:
			oi.ProductRef = it.CatalogRef()
		}
		orderItems = append(orderItems, oi)
	}

	return domain.OrderSubmission{
		LocalRef:      uuid.NewString(),
		Customer:      draft.Customer,
		Items:         orderItems,
		Subtotal:      bd.Subtotal,
		Tax:           bd.Tax,
		Discount:      bd.Discount,
		Total:         bd.Total,
		PaymentMethod: draft.PaymentMethod,
		PaymentStatus: domain.ResolveStatus(draft.PaymentMethod),
		Origin:        origin,
		Notes:         draft.Notes,
	}
}
