package woocommerce

import "github.com/Ricciar/grape-ceramics/internal/domain"

// rawStorePrices is the nested price block returned by the Store API variant.
// Values are decimal strings in major currency units.
type rawStorePrices struct {
	Price        string `json:"price"`
	RegularPrice string `json:"regular_price"`
	SalePrice    string `json:"sale_price"`
}

// rawImage is an upstream product image.
type rawImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// rawTerm is an upstream category or tag reference on a product.
type rawTerm struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// rawProduct covers both upstream product shapes: the REST v3 flat price
// fields (unit ambiguity handled by NormalizePrice) and the Store API nested
// prices block.
type rawProduct struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Images           []rawImage      `json:"images"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	Price            string          `json:"price"`
	RegularPrice     string          `json:"regular_price"`
	SalePrice        string          `json:"sale_price"`
	Prices           *rawStorePrices `json:"prices"`
	StockStatus      string          `json:"stock_status"`
	StockQuantity    *int            `json:"stock_quantity"`
	Categories       []rawTerm       `json:"categories"`
	Tags             []rawTerm       `json:"tags"`
}

// rawCategoryImage is an upstream category image.
type rawCategoryImage struct {
	ID   int    `json:"id"`
	Src  string `json:"src"`
	Name string `json:"name"`
	Alt  string `json:"alt"`
}

// rawCategory is an upstream product category record.
type rawCategory struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Display     string            `json:"display"`
	Image       *rawCategoryImage `json:"image"`
}

// orderAddress is the upstream wire shape of an address.
type orderAddress struct {
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

// orderLineItem is one line of the outbound order payload.
type orderLineItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderPayload is the outbound order-creation payload for the upstream API.
type OrderPayload struct {
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodTitle string          `json:"payment_method_title"`
	SetPaid            bool            `json:"set_paid"`
	Billing            orderAddress    `json:"billing"`
	Shipping           orderAddress    `json:"shipping"`
	LineItems          []orderLineItem `json:"line_items"`
}

// OrderResponse is the subset of the upstream order-creation response the
// storefront needs to build the checkout redirect.
type OrderResponse struct {
	ID       int    `json:"id"`
	OrderKey string `json:"order_key"`
	Status   string `json:"status"`
}

// errorBody is the upstream error response shape.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toOrderAddress(a domain.Address) orderAddress {
	return orderAddress{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Email:     a.Email,
		Phone:     a.Phone,
	}
}
