package domain

// Address is a billing or shipping address in the upstream order format.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// IsZero reports whether no address field is set.
func (a *Address) IsZero() bool {
	return a == nil || *a == Address{}
}

// PlaceholderAddress is the fixed billing fallback used when the caller
// supplies no address at all. The upstream store collects the real address
// on its own checkout page after the redirect.
func PlaceholderAddress() Address {
	return Address{
		FirstName: "Guest",
		LastName:  "Checkout",
		Address1:  "-",
		City:      "-",
		Postcode:  "00000",
		Country:   "SE",
		Email:     "guest@example.com",
	}
}

// OrderLine is one product/quantity pair of an outbound order.
type OrderLine struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderRequest is the storefront's order representation before translation to
// the upstream payload. SetPaid is always false: payment capture happens on
// the upstream store's checkout page, never here.
type OrderRequest struct {
	PaymentMethod      string
	PaymentMethodTitle string
	SetPaid            bool
	Billing            Address
	Shipping           Address
	Lines              []OrderLine
}

// CheckoutResult is the outcome of a successful order creation: the upstream
// order id and the URL the browser is redirected to for payment.
type CheckoutResult struct {
	OrderID     int    `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
}
