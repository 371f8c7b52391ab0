package domain

import (
	"encoding/json"
	"fmt"
)

// Cart is ordered by insertion. Methods never modify the receiver; every
// change returns a new slice so a Cart handed out to readers stays valid.
type Cart []Product

func (c Cart) IndexOf(id ProductID) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) Find(id ProductID) (Product, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c[i], true
	}
	return Product{}, false
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

func (c Cart) Append(p Product) Cart {
	out := make(Cart, len(c), len(c)+1)
	copy(out, c)
	return append(out, p)
}

func (c Cart) Remove(id ProductID) (Cart, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, false
	}
	out := make(Cart, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...), true
}

func (c Cart) SetAmount(id ProductID, amount int) (Cart, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, false
	}
	out := c.Clone()
	out[i].Amount = amount
	return out, true
}

func (c Cart) TotalItems() int {
	total := 0
	for _, p := range c {
		total += p.Amount
	}
	return total
}

func (c Cart) MarshalSnapshot() (string, error) {
	if c == nil {
		c = Cart{}
	}
	data, err := json.Marshal([]Product(c))
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(data), nil
}

func ParseSnapshot(snapshot string) (Cart, error) {
	var cart Cart
	if err := json.Unmarshal([]byte(snapshot), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if cart == nil {
		cart = Cart{}
	}
	return cart, nil
}
