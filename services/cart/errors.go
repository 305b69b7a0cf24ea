package cart

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/MarcGrol/shoppingcart/lib/myerrors"
)

var (
	ErrUnknownProduct       = errors.New("unknown product")
	ErrProductNotInCart     = errors.New("product not in cart")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrEmptyCart            = errors.New("empty cart")
)

// cartError carries the message shown to the client and the kind to match on with errors.Is
type cartError struct {
	kind    error
	message string
}

func (e *cartError) Error() string {
	return e.message
}

func (e *cartError) Unwrap() error {
	return e.kind
}

func newCartError(kind error, format string, args ...interface{}) error {
	return myerrors.NewInvalidInputError(&cartError{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
	})
}

func newUnknownProductError(productUID string) error {
	return newCartError(ErrUnknownProduct, `There is no product with id "%s".`, productUID)
}

func newProductNotInCartError(productUID string) error {
	return newCartError(ErrProductNotInCart, `The product with id "%s" was not added in the cart.`, productUID)
}

func newInsufficientQuantityError(productUID string, requested int, available int) error {
	return newCartError(ErrInsufficientQuantity,
		`It is not possible to remove %d items of the product "%s" from the cart. The cart currently has %d items of this product.`,
		requested, productUID, available)
}

func newEmptyCartError() error {
	return newCartError(ErrEmptyCart, `The cart is empty.`)
}
