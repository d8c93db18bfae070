package variation

import (
	"fmt"
	"sort"
	"strings"

	"variation-manager/core/matrix"
	"variation-manager/core/utils"
)

// DimensionSeparator joins length, width and height.
const DimensionSeparator = "×"

// CompanyPrice is the per-company override of a submitted variation.
type CompanyPrice struct {
	CompanyID  string `json:"companyId"`
	Price      string `json:"price"`
	CompanySku string `json:"companySku"`
}

// Variation is the submission form of a combination.
type Variation struct {
	ID            string            `json:"id,omitempty"`
	Attributes    matrix.Attributes `json:"attributes"`
	SKU           string            `json:"sku"`
	UPC           string            `json:"upc"`
	Weight        *float64          `json:"weight"`
	Dimensions    *string           `json:"dimensions"`
	ImageURL      string            `json:"imageUrl"`
	CompanyPrices []CompanyPrice    `json:"companyPrices"`
}

// Normalize maps combinations to their submission form. Weight becomes a
// number or null, dimensions "L×W×H" or null unless all three are set, and
// company overrides are listed for every company with a price or SKU, in the
// order of companies followed by the remaining ids sorted.
func Normalize(combos []matrix.Combination, companies []string) ([]Variation, error) {
	out := make([]Variation, 0, len(combos))
	for i, c := range combos {
		v, err := normalizeOne(c, companies)
		if err != nil {
			return nil, fmt.Errorf("combination %d (%s): %w", i, c.CombinationKey, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func normalizeOne(c matrix.Combination, companies []string) (Variation, error) {
	v := Variation{
		ID:            c.ID,
		Attributes:    c.Attributes.Clone(),
		SKU:           strings.TrimSpace(c.SKU),
		UPC:           strings.TrimSpace(c.UPC),
		ImageURL:      c.ImageURL,
		CompanyPrices: []CompanyPrice{},
	}
	if v.Attributes == nil {
		v.Attributes = matrix.Attributes{}
	}

	weight, err := utils.ParseOptionalNumber(c.Weight)
	if err != nil {
		return Variation{}, fmt.Errorf("weight: %w", err)
	}
	v.Weight = weight

	dims, err := dimensions(c.Length, c.Width, c.Height)
	if err != nil {
		return Variation{}, err
	}
	v.Dimensions = dims

	for _, id := range companyOrder(c, companies) {
		price := strings.TrimSpace(c.CompanyPrices[id])
		sku := strings.TrimSpace(c.CompanySkus[id])
		if price == "" && sku == "" {
			continue
		}
		if price != "" {
			d, err := utils.ParseAmount(price)
			if err != nil {
				return Variation{}, fmt.Errorf("price for company %s: %w", id, err)
			}
			price = d.String()
		}
		v.CompanyPrices = append(v.CompanyPrices, CompanyPrice{CompanyID: id, Price: price, CompanySku: sku})
	}
	return v, nil
}

func dimensions(length, width, height string) (*string, error) {
	parts := []string{strings.TrimSpace(length), strings.TrimSpace(width), strings.TrimSpace(height)}
	for _, p := range parts {
		if p == "" {
			return nil, nil
		}
	}
	for i, name := range []string{"length", "width", "height"} {
		if _, err := utils.ParseAmount(parts[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	joined := strings.Join(parts, DimensionSeparator)
	return &joined, nil
}

// companyOrder lists companies first, then any other id found on c, sorted.
func companyOrder(c matrix.Combination, companies []string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, id := range companies {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var extra []string
	for _, m := range []map[string]string{c.CompanyPrices, c.CompanySkus} {
		for id := range m {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}
