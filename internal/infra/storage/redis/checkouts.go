package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/go-redis/redis/v8"

	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	"rukorent/internal/infra/storage/checkoutdoc"
)

const keyPrefix = "rukorent:checkout:"

// CheckoutStore keeps checkouts as JSON values that redis expires after ttl.
type CheckoutStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
	now    func() time.Time
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
}

func NewCheckoutStore(client goredis.UniversalClient, ttl time.Duration) *CheckoutStore {
	return &CheckoutStore{client: client, ttl: ttl, now: time.Now}
}

func (s *CheckoutStore) Save(ctx context.Context, c *checkout.Checkout) error {
	var expires time.Time
	if s.ttl > 0 {
		expires = s.now().UTC().Add(s.ttl)
	}
	data, err := json.Marshal(checkoutdoc.FromDomain(c, expires))
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(c.BookingID), data, s.ttl).Err()
}

func (s *CheckoutStore) Get(ctx context.Context, id domainbooking.BookingID) (*checkout.Checkout, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, checkout.ErrCheckoutNotFound
		}
		return nil, err
	}
	var doc checkoutdoc.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (s *CheckoutStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func key(id domainbooking.BookingID) string {
	return keyPrefix + string(id)
}

var _ checkout.Store = (*CheckoutStore)(nil)
