package cart

import (
	"sort"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
)

// unitsPerFreeUnit: every third unit in the cart is free
const unitsPerFreeUnit = 3

type pricedLine struct {
	productUID string
	quantity   int
	unitPrice  decimal.Decimal
}

// CalculatePrice returns the total price of the lines with every third unit free, cheapest units first.
// Lines with equal unit price are discounted in cart order.
func CalculatePrice(lines []cartmodel.CartLine, products []cartmodel.Product) (decimal.Decimal, int, error) {
	priceOf := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		priceOf[p.UID] = p.Price
	}

	totalUnits := 0
	priced := make([]pricedLine, 0, len(lines))
	for _, l := range lines {
		price, found := priceOf[l.ProductUID]
		if !found {
			return decimal.Zero, 0, errors.Errorf("no price found for product %s", l.ProductUID)
		}
		totalUnits += l.Quantity
		priced = append(priced, pricedLine{
			productUID: l.ProductUID,
			quantity:   l.Quantity,
			unitPrice:  price,
		})
	}

	sort.SliceStable(priced, func(i, j int) bool {
		return priced[i].unitPrice.LessThan(priced[j].unitPrice)
	})

	freeUnits := totalUnits / unitsPerFreeUnit
	remaining := freeUnits
	total := decimal.Zero
	for _, l := range priced {
		free := min(remaining, l.quantity)
		remaining -= free
		total = total.Add(l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity - free))))
	}

	return total, freeUnits, nil
}
