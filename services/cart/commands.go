package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/shoppingcart/lib/myerrors"
	"github.com/MarcGrol/shoppingcart/lib/mylog"
	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
)

func (s *service) getCart(c context.Context) (cartmodel.Cart, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch current cart")

	var cart cartmodel.Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		cart, err = s.cartStore.GetCart(c)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return cartmodel.Cart{}, err
	}

	return cart, nil
}

func (s *service) addItemToCart(c context.Context, productUID string, quantity int) error {
	now := s.nower.Now()

	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		exists, err := s.cartStore.ProductExists(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !exists {
			return newUnknownProductError(productUID)
		}

		cart, err := s.cartStore.GetCart(c)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		s.logger.Log(c, cart.UID, mylog.SeverityInfo, "Add %d items of product %s to cart %s", quantity, productUID, cart.UID)

		idx := cart.FindLine(productUID)
		if idx >= 0 {
			cart.Lines[idx].Quantity += quantity
		} else {
			cart.Lines = append(cart.Lines, cartmodel.CartLine{
				ProductUID: productUID,
				Quantity:   quantity,
			})
		}
		cart.LastModified = &now

		err = s.cartStore.UpdateCart(c, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.unitsAdded.Add(float64(quantity))

	return nil
}

func (s *service) removeItemFromCart(c context.Context, productUID string, quantity int) error {
	now := s.nower.Now()

	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		exists, err := s.cartStore.ProductExists(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !exists {
			return newUnknownProductError(productUID)
		}

		cart, err := s.cartStore.GetCart(c)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		s.logger.Log(c, cart.UID, mylog.SeverityInfo, "Remove %d items of product %s from cart %s", quantity, productUID, cart.UID)

		idx := cart.FindLine(productUID)
		if idx < 0 {
			return newProductNotInCartError(productUID)
		}
		if cart.Lines[idx].Quantity < quantity {
			return newInsufficientQuantityError(productUID, quantity, cart.Lines[idx].Quantity)
		}

		// Line is kept, even when it drops to zero
		cart.Lines[idx].Quantity -= quantity
		cart.LastModified = &now

		err = s.cartStore.UpdateCart(c, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.unitsRemoved.Add(float64(quantity))

	return nil
}

func (s *service) closeCart(c context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	var units, freeUnits int

	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		cart, err := s.cartStore.GetCart(c)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		if cart.TotalQuantity() == 0 {
			return newEmptyCartError()
		}

		products, err := s.cartStore.GetPricesForCartProducts(c, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		units = cart.TotalQuantity()
		total, freeUnits, err = CalculatePrice(cart.Lines, products)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		s.logger.Log(c, cart.UID, mylog.SeverityInfo, "Close cart %s with %d units of which %d free: total price %s",
			cart.UID, units, freeUnits, total)

		err = s.cartStore.EmptyCart(c, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	s.cartsClosed.Inc()
	s.unitsFree.Add(float64(freeUnits))
	s.closedUnits.Observe(float64(units))

	return total, nil
}
