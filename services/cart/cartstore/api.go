package cartstore

import (
	"context"

	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
)

// CartStore persists the single current cart and the product catalog.
//
//go:generate mockgen -source=api.go -package cartstore -destination store_mock.go CartStore
type CartStore interface {
	// RunInTransaction serializes read-modify-write sequences on the cart
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	// GetCart returns the current cart, creating an empty one when there is none
	GetCart(c context.Context) (cartmodel.Cart, error)
	UpdateCart(c context.Context, cart cartmodel.Cart) error
	// EmptyCart discards the given cart and establishes a new empty current cart
	EmptyCart(c context.Context, cart cartmodel.Cart) error
	// GetPricesForCartProducts returns the catalog entries of the products in the cart
	GetPricesForCartProducts(c context.Context, cart cartmodel.Cart) ([]cartmodel.Product, error)
	ProductExists(c context.Context, productUID string) (bool, error)
	SeedCatalog(c context.Context, products []cartmodel.Product) error
}
