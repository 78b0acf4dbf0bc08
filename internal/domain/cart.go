package domain

// CartLine is one product's quantity entry in a session cart.
type CartLine struct {
	ProductID   int    `json:"product_id"`
	Name        string `json:"name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Cart holds the line items of one session. At most one line exists per
// product id and a stored quantity is always >= 1: a merge that drives the
// quantity to zero or below removes the line instead.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add merges a line into the cart with the given quantity delta. When no line
// exists for the product, a new one is created with quantity = delta. When a
// line exists, delta is added to its quantity. A resulting quantity <= 0
// removes the line entirely.
//
// There is deliberately no upper bound and no check against stock: quantity
// accuracy is owned by the upstream store at order time.
func (c *Cart) Add(line CartLine, delta int) {
	i := c.findIndex(line.ProductID)
	if i < 0 {
		if delta <= 0 {
			return
		}
		line.Quantity = delta
		c.Lines = append(c.Lines, line)
		return
	}

	c.Lines[i].Quantity += delta
	if c.Lines[i].Quantity <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// Remove deletes the line with the given product id. No-op if absent.
func (c *Cart) Remove(productID int) {
	if i := c.findIndex(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	cp := &Cart{}
	if len(c.Lines) > 0 {
		cp.Lines = make([]CartLine, len(c.Lines))
		copy(cp.Lines, c.Lines)
	}
	return cp
}

func (c *Cart) findIndex(productID int) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
