package matrix

// Combination is one cell of the variation matrix together with the payload the
// user entered for it. Generate and the reconcile package treat every field except
// Attributes and CombinationKey as opaque payload.
type Combination struct {
	// ID is assigned by the server once the variation has been saved.
	ID string `json:"id,omitempty"`

	// Attributes maps each facet label to the selected value, in facet order.
	Attributes Attributes `json:"attributes"`

	// CombinationKey joins the attribute values with KeySeparator.
	CombinationKey string `json:"combinationKey"`

	SKU      string `json:"sku"`
	UPC      string `json:"upc"`
	Weight   string `json:"weight"`
	Length   string `json:"length"`
	Width    string `json:"width"`
	Height   string `json:"height"`
	ImageURL string `json:"imageUrl"`

	// CompanyPrices maps company id → price string. Sparse.
	CompanyPrices map[string]string `json:"companyPrices"`

	// CompanySkus maps company id → company specific SKU. Sparse.
	CompanySkus map[string]string `json:"companySkus"`

	// UnitPrice is read-only and reported by the server.
	UnitPrice string `json:"unitPrice,omitempty"`
}

// NewSkeleton builds a combination with blank payload for attrs.
func NewSkeleton(attrs Attributes) Combination {
	return Combination{
		Attributes:     attrs,
		CombinationKey: attrs.Key(),
		CompanyPrices:  map[string]string{},
		CompanySkus:    map[string]string{},
	}
}

// Clone deep-copies the combination, including both company maps.
func (c Combination) Clone() Combination {
	out := c
	out.Attributes = c.Attributes.Clone()
	out.CompanyPrices = cloneMap(c.CompanyPrices)
	out.CompanySkus = cloneMap(c.CompanySkus)
	return out
}

// WithPayloadFrom returns c carrying src's payload. Attributes and the key stay
// those of c. The payload moves as one unit; maps are deep-copied.
func (c Combination) WithPayloadFrom(src Combination) Combination {
	out := src.Clone()
	out.Attributes = c.Attributes.Clone()
	out.CombinationKey = c.CombinationKey
	return out
}

// ClearData blanks the user-entered data, keeping identity and the image.
func (c Combination) ClearData() Combination {
	out := c.Clone()
	out.SKU = ""
	out.UPC = ""
	out.Weight = ""
	out.Length = ""
	out.Width = ""
	out.Height = ""
	out.CompanyPrices = map[string]string{}
	out.CompanySkus = map[string]string{}
	return out
}

// HasPayload reports whether any user-entered field is set.
func (c Combination) HasPayload() bool {
	return c.ID != "" || c.SKU != "" || c.UPC != "" || c.Weight != "" ||
		c.Length != "" || c.Width != "" || c.Height != "" || c.ImageURL != "" ||
		len(c.CompanyPrices) > 0 || len(c.CompanySkus) > 0
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
