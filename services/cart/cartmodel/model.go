package cartmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	UID   string
	Name  string
	Price decimal.Decimal
}

type CartLine struct {
	ProductUID string
	Quantity   int
}

// Cart holds at most one line per product. Lines survive partial removal, even at quantity 0.
type Cart struct {
	UID          string
	CreatedAt    time.Time
	LastModified *time.Time
	Lines        []CartLine
}

func NewCart(uid string, createdAt time.Time) Cart {
	return Cart{
		UID:       uid,
		CreatedAt: createdAt,
		Lines:     []CartLine{},
	}
}

func (c Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// FindLine returns the index of the line of the given product or -1.
func (c Cart) FindLine(productUID string) int {
	for idx, l := range c.Lines {
		if l.ProductUID == productUID {
			return idx
		}
	}
	return -1
}

func (c Cart) ProductUIDs() []string {
	uids := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		uids = append(uids, l.ProductUID)
	}
	return uids
}

// Clone returns a copy that shares no lines with the original.
func (c Cart) Clone() Cart {
	clone := c
	clone.Lines = make([]CartLine, len(c.Lines))
	copy(clone.Lines, c.Lines)
	if c.LastModified != nil {
		lastModified := *c.LastModified
		clone.LastModified = &lastModified
	}
	return clone
}
