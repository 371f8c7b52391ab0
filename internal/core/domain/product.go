package domain

import (
	"encoding/json"
	"fmt"
)

const (
	fieldID     = "id"
	fieldAmount = "amount"
)

// CatalogProduct is a product as returned by the catalog, before it is in a cart.
// Details holds every catalog field except the id, untouched.
type CatalogProduct struct {
	ID      ProductID
	Details map[string]json.RawMessage
}

type Stock struct {
	ID     ProductID `json:"id"`
	Amount int       `json:"amount"`
}

type Product struct {
	ID      ProductID
	Amount  int
	Details map[string]json.RawMessage
}

func NewCartProduct(catalog *CatalogProduct, amount int) *Product {
	return &Product{
		ID:      catalog.ID,
		Amount:  amount,
		Details: cloneDetails(catalog.Details),
	}
}

// Detail decodes a single catalog field into dst.
func (p *Product) Detail(name string, dst any) error {
	raw, ok := p.Details[name]
	if !ok {
		return fmt.Errorf("product %d has no field %q", p.ID, name)
	}
	return json.Unmarshal(raw, dst)
}

func (p Product) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(p.Details)+2)
	for k, v := range p.Details {
		fields[k] = v
	}
	id, _ := json.Marshal(p.ID)
	amount, _ := json.Marshal(p.Amount)
	fields[fieldID] = id
	fields[fieldAmount] = amount
	return json.Marshal(fields)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	fields, id, err := splitFields(data)
	if err != nil {
		return err
	}

	var amount int
	if raw, ok := fields[fieldAmount]; ok {
		if err := json.Unmarshal(raw, &amount); err != nil {
			return fmt.Errorf("invalid product amount: %w", err)
		}
		delete(fields, fieldAmount)
	}

	p.ID = id
	p.Amount = amount
	p.Details = fields
	return nil
}

func (p *CatalogProduct) UnmarshalJSON(data []byte) error {
	fields, id, err := splitFields(data)
	if err != nil {
		return err
	}
	// the catalog does not own cart quantities
	delete(fields, fieldAmount)

	p.ID = id
	p.Details = fields
	return nil
}

func splitFields(data []byte) (map[string]json.RawMessage, ProductID, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, 0, err
	}

	raw, ok := fields[fieldID]
	if !ok {
		return nil, 0, fmt.Errorf("product without id")
	}
	var id ProductID
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, 0, fmt.Errorf("invalid product id: %w", err)
	}
	delete(fields, fieldID)

	return fields, id, nil
}

func cloneDetails(details map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(details))
	for k, v := range details {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
