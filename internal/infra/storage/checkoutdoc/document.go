// Package checkoutdoc is the persisted shape of a checkout shared by the
// redis and mongo stores.
package checkoutdoc

import (
	"time"

	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	"rukorent/internal/domain/payment"
	"rukorent/internal/domain/pricing"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/money"
)

type Money struct {
	Amount   int64  `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
}

type Ruko struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Price       Money  `json:"price" bson:"price"`
	RentalType  string `json:"rental_type" bson:"rental_type"`
	Size        string `json:"size,omitempty" bson:"size,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
	OwnerID     string `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
}

type Draft struct {
	StartDate       time.Time `json:"start_date" bson:"start_date"`
	EndDate         time.Time `json:"end_date" bson:"end_date"`
	DiscountCode    string    `json:"discount_code,omitempty" bson:"discount_code,omitempty"`
	FullName        string    `json:"full_name" bson:"full_name"`
	Email           string    `json:"email" bson:"email"`
	Phone           string    `json:"phone" bson:"phone"`
	SpecialRequests string    `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	PaymentMethod   string    `json:"payment_method" bson:"payment_method"`
}

type Price struct {
	Months          int    `json:"months" bson:"months"`
	RentalType      string `json:"rental_type" bson:"rental_type"`
	BasePrice       Money  `json:"base_price" bson:"base_price"`
	Subtotal        Money  `json:"subtotal" bson:"subtotal"`
	Tax             Money  `json:"tax" bson:"tax"`
	Discount        Money  `json:"discount" bson:"discount"`
	Total           Money  `json:"total" bson:"total"`
	DiscountApplied bool   `json:"discount_applied" bson:"discount_applied"`
}

type Payment struct {
	MethodID      string `json:"method_id" bson:"method_id"`
	MethodName    string `json:"method_name" bson:"method_name"`
	MethodKind    string `json:"method_kind" bson:"method_kind"`
	AccountNumber string `json:"account_number" bson:"account_number"`
	Amount        Money  `json:"amount" bson:"amount"`
}

type Document struct {
	BookingID string    `json:"booking_id" bson:"_id"`
	TenantID  string    `json:"tenant_id" bson:"tenant_id"`
	Status    string    `json:"status" bson:"status"`
	Ruko      Ruko      `json:"ruko" bson:"ruko"`
	Draft     Draft     `json:"draft" bson:"draft"`
	Price     Price     `json:"price" bson:"price"`
	Payment   *Payment  `json:"payment,omitempty" bson:"payment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// FromDomain snapshots c; pending events are not persisted.
func FromDomain(c *checkout.Checkout, expiresAt time.Time) Document {
	doc := Document{
		BookingID: string(c.BookingID),
		TenantID:  c.TenantID,
		Status:    string(c.Status),
		Ruko: Ruko{
			ID:          string(c.Ruko.ID),
			Name:        c.Ruko.Name,
			Price:       fromMoney(c.Ruko.Price),
			RentalType:  string(c.Ruko.RentalType),
			Size:        c.Ruko.Size,
			Location:    c.Ruko.Location,
			Description: c.Ruko.Description,
			Image:       c.Ruko.Image,
			OwnerID:     c.Ruko.OwnerID,
		},
		Draft: Draft{
			StartDate:       c.Draft.Start,
			EndDate:         c.Draft.End,
			DiscountCode:    c.Draft.DiscountCode,
			FullName:        c.Draft.Tenant.FullName,
			Email:           c.Draft.Tenant.Email,
			Phone:           c.Draft.Tenant.Phone,
			SpecialRequests: c.Draft.SpecialRequests,
			PaymentMethod:   string(c.Draft.PaymentMethod),
		},
		Price: Price{
			Months:          c.Price.Months,
			RentalType:      string(c.Price.RentalType),
			BasePrice:       fromMoney(c.Price.BasePrice),
			Subtotal:        fromMoney(c.Price.Subtotal),
			Tax:             fromMoney(c.Price.Tax),
			Discount:        fromMoney(c.Price.Discount),
			Total:           fromMoney(c.Price.Total),
			DiscountApplied: c.Price.DiscountApplied,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: expiresAt,
	}
	if c.Payment != nil {
		doc.Payment = &Payment{
			MethodID:      c.Payment.Method.ID,
			MethodName:    c.Payment.Method.Name,
			MethodKind:    string(c.Payment.Method.Kind),
			AccountNumber: c.Payment.AccountNumber,
			Amount:        fromMoney(c.Payment.Amount),
		}
	}
	return doc
}

func (d Document) ToDomain() *checkout.Checkout {
	c := &checkout.Checkout{
		BookingID: domainbooking.BookingID(d.BookingID),
		TenantID:  d.TenantID,
		Status:    checkout.Status(d.Status),
		Ruko: ruko.Ruko{
			ID:          ruko.RukoID(d.Ruko.ID),
			Name:        d.Ruko.Name,
			Price:       d.Ruko.Price.toDomain(),
			RentalType:  ruko.RentalType(d.Ruko.RentalType),
			Size:        d.Ruko.Size,
			Location:    d.Ruko.Location,
			Description: d.Ruko.Description,
			Image:       d.Ruko.Image,
			OwnerID:     d.Ruko.OwnerID,
		},
		Draft: domainbooking.Draft{
			RukoID:          ruko.RukoID(d.Ruko.ID),
			Start:           d.Draft.StartDate.UTC(),
			End:             d.Draft.EndDate.UTC(),
			DiscountCode:    d.Draft.DiscountCode,
			SpecialRequests: d.Draft.SpecialRequests,
			PaymentMethod:   domainbooking.PaymentMethod(d.Draft.PaymentMethod),
			Tenant: domainbooking.Tenant{
				FullName: d.Draft.FullName,
				Email:    d.Draft.Email,
				Phone:    d.Draft.Phone,
			},
		},
		Price: pricing.PriceBreakdown{
			Months:          d.Price.Months,
			RentalType:      ruko.RentalType(d.Price.RentalType),
			BasePrice:       d.Price.BasePrice.toDomain(),
			Subtotal:        d.Price.Subtotal.toDomain(),
			Tax:             d.Price.Tax.toDomain(),
			Discount:        d.Price.Discount.toDomain(),
			Total:           d.Price.Total.toDomain(),
			DiscountApplied: d.Price.DiscountApplied,
		},
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if p := d.Payment; p != nil {
		method, err := payment.LookupMethod(p.MethodID)
		if err != nil {
			method = payment.Method{ID: p.MethodID, Name: p.MethodName, Kind: payment.MethodKind(p.MethodKind)}
		}
		c.Payment = &payment.Instruction{Method: method, AccountNumber: p.AccountNumber, Amount: p.Amount.toDomain()}
	}
	return c
}

func fromMoney(m money.Money) Money {
	return Money{Amount: m.Amount, Currency: m.Currency}
}

func (m Money) toDomain() money.Money {
	if m.Currency == "" {
		return money.Rupiah(m.Amount)
	}
	return money.Money{Amount: m.Amount, Currency: m.Currency}
}
