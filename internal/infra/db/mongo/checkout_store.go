package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	"rukorent/internal/infra/storage/checkoutdoc"
)

// CheckoutStore persists checkouts in mongo. A TTL index on expires_at lets
// the server drop stale checkouts; reads also ignore expired documents since
// the TTL monitor only runs periodically.
type CheckoutStore struct {
	col *mongo.Collection
	ttl time.Duration
	now func() time.Time
}

func NewCheckoutStore(ctx context.Context, db *mongo.Database, ttl time.Duration) (*CheckoutStore, error) {
	col := db.Collection("checkouts")
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutStore{col: col, ttl: ttl, now: time.Now}, nil
}

func (s *CheckoutStore) Save(ctx context.Context, c *checkout.Checkout) error {
	expires := s.expiry()
	doc := checkoutdoc.FromDomain(c, expires)
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": doc.BookingID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *CheckoutStore) Get(ctx context.Context, id domainbooking.BookingID) (*checkout.Checkout, error) {
	filter := bson.M{"_id": string(id)}
	if s.ttl > 0 {
		filter["expires_at"] = bson.M{"$gt": s.now().UTC()}
	}
	var doc checkoutdoc.Document
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, checkout.ErrCheckoutNotFound
		}
		return nil, err
	}
	return doc.ToDomain(), nil
}

// expiry is far in the future when ttl is disabled so the TTL index never fires.
func (s *CheckoutStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return s.now().UTC().Add(s.ttl)
}

var _ checkout.Store = (*CheckoutStore)(nil)
