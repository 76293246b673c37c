package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/projektikatalog/jeftinoRS/internal/domain/cart"
	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
	"github.com/projektikatalog/jeftinoRS/internal/domain/order"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
)

type fakeCartStore struct {
	state   *cart.State
	cleared bool
}

func (f *fakeCartStore) Load(ctx context.Context, sessionID string) *cart.State {
	return f.state
}

func (f *fakeCartStore) Save(ctx context.Context, sessionID string, state *cart.State) {}

func (f *fakeCartStore) Clear(ctx context.Context, sessionID string) {
	f.cleared = true
	f.state = cart.NewState()
}

type fakeOrderCreator struct {
	created *order.Order
	err     error
}

func (f *fakeOrderCreator) Create(o *order.Order) error {
	if f.err != nil {
		return f.err
	}
	o.ID = "order-1"
	o.OrderCode = "JR-20250101-ABC123"
	f.created = o
	return nil
}

type fakeNotifier struct {
	notified chan *order.Order
}

func (f *fakeNotifier) NotifyNewOrder(o *order.Order) {
	f.notified <- o
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func cartWithItem() *cart.State {
	s := cart.NewState()
	s.AddLine(catalog.Product{ID: "p1", Name: "Majica", BasePrice: 1200, Available: true}, "L", 2, nil, nil)
	return s
}

func TestSubmitHappyPath(t *testing.T) {
	store := &fakeCartStore{state: cartWithItem()}
	creator := &fakeOrderCreator{}
	notifier := &fakeNotifier{notified: make(chan *order.Order, 1)}
	svc := NewService(store, creator, notifier, testLogger())

	o, err := svc.Submit(context.Background(), "sess", validInfo())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if creator.created == nil {
		t.Fatal("expected order to be persisted")
	}
	if o.TotalPrice != 2400 || o.ShippingCost != 500 {
		t.Errorf("unexpected totals: items %d shipping %d", o.TotalPrice, o.ShippingCost)
	}
	if !store.cleared {
		t.Error("expected cart cleared after successful submit")
	}

	notified := <-notifier.notified
	if notified.ID != "order-1" {
		t.Errorf("expected notification for order-1, got %s", notified.ID)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	store := &fakeCartStore{state: cart.NewState()}
	svc := NewService(store, &fakeOrderCreator{}, &fakeNotifier{notified: make(chan *order.Order, 1)}, testLogger())

	if _, err := svc.Submit(context.Background(), "sess", validInfo()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitBlockedWhileBundleIncomplete(t *testing.T) {
	state := cartWithItem()
	state.ActivePromotion = &promotion.Promotion{
		ID:                "promo1",
		RequiredItemCount: 3,
		FixedPrice:        3000,
		Mode:              promotion.ModeQuantity,
	}
	bid := "promo1"
	state.PromoItems = []cart.Line{
		{Product: catalog.Product{ID: "p2", BasePrice: 900}, Quantity: 1, BundleID: &bid, IsPromo: true},
	}

	store := &fakeCartStore{state: state}
	creator := &fakeOrderCreator{}
	svc := NewService(store, creator, &fakeNotifier{notified: make(chan *order.Order, 1)}, testLogger())

	_, err := svc.Submit(context.Background(), "sess", validInfo())
	if !errors.Is(err, ErrBundleIncomplete) {
		t.Fatalf("expected ErrBundleIncomplete, got %v", err)
	}
	if creator.created != nil {
		t.Error("incomplete bundle must never reach the order gateway")
	}
	if store.cleared {
		t.Error("cart must survive a blocked submit")
	}
}

func TestSubmitValidationFailurePreservesCart(t *testing.T) {
	store := &fakeCartStore{state: cartWithItem()}
	creator := &fakeOrderCreator{}
	svc := NewService(store, creator, &fakeNotifier{notified: make(chan *order.Order, 1)}, testLogger())

	info := validInfo()
	info.Phone = "abc"

	_, err := svc.Submit(context.Background(), "sess", info)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["telefon_kupca"]; !ok {
		t.Errorf("expected phone field error, got %v", verr.Fields)
	}
	if creator.created != nil || store.cleared {
		t.Error("failed validation must leave cart and gateway untouched")
	}
}

func TestSubmitGatewayFailurePreservesCart(t *testing.T) {
	store := &fakeCartStore{state: cartWithItem()}
	creator := &fakeOrderCreator{err: errors.New("database down")}
	svc := NewService(store, creator, &fakeNotifier{notified: make(chan *order.Order, 1)}, testLogger())

	if _, err := svc.Submit(context.Background(), "sess", validInfo()); err == nil {
		t.Fatal("expected gateway error to surface")
	}
	if store.cleared {
		t.Error("cart must survive gateway failure")
	}
}

func TestBuildOrderPayload(t *testing.T) {
	state := cartWithItem()
	state.ActivePromotion = &promotion.Promotion{
		ID:                "promo1",
		Title:             "3 za 3000",
		RequiredItemCount: 1,
		FixedPrice:        3000,
		Mode:              promotion.ModeQuantity,
	}
	bid := "promo1"
	state.PromoItems = []cart.Line{
		{Product: catalog.Product{ID: "p2", Name: "Duks", BasePrice: 900}, Quantity: 1, BundleID: &bid, IsPromo: true},
	}

	info := validInfo()
	info.Email = "   "
	info.FirstName = "  Marko "
	info.LastName = " Marković  "
	info.Phone = "+381 64 123 4567"

	o := BuildOrder(state, info)

	if o.Email != "N/A" {
		t.Errorf("blank email should map to N/A, got %q", o.Email)
	}
	if o.CustomerName != "Marko Marković" {
		t.Errorf("name should be trimmed, got %q", o.CustomerName)
	}
	if o.Phone != "+381641234567" {
		t.Errorf("phone should be whitespace-stripped, got %q", o.Phone)
	}
	if len(o.Items) != 2 {
		t.Fatalf("expected 2 lines in payload, got %d", len(o.Items))
	}
	if o.Items[0].IsPromo || !o.Items[1].IsPromo {
		t.Error("regular lines must precede promo lines")
	}
	if o.PromoTitle != "3 za 3000" || o.PromoPrice != 3000 || o.PromotionID != "promo1" {
		t.Errorf("promo fields not carried: %+v", o)
	}
	if o.Status != order.StatusReceived {
		t.Errorf("new order must start as %q, got %q", order.StatusReceived, o.Status)
	}
	// 2400 regular + 3000 bundle
	if o.TotalPrice != 5400 || o.ShippingCost != 700 {
		t.Errorf("unexpected totals: %d / %d", o.TotalPrice, o.ShippingCost)
	}
}

func TestBuildOrderWithoutPromo(t *testing.T) {
	o := BuildOrder(cartWithItem(), validInfo())
	if o.PromoTitle != "" || o.PromotionID != "" || o.PromoPrice != 0 {
		t.Errorf("promo fields must stay empty without promo lines: %+v", o)
	}
}
