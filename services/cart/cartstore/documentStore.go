package cartstore

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/shoppingcart/lib/mystore"
	"github.com/MarcGrol/shoppingcart/lib/mytime"
	"github.com/MarcGrol/shoppingcart/lib/myuuid"
	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
)

// currentCartKey is the key of the one and only cart
const currentCartKey = "current"

// catalogProduct is the persisted form of a product: datastore cannot hold a decimal
type catalogProduct struct {
	UID   string
	Name  string
	Price string
}

type documentStore struct {
	cartStore    mystore.Store[cartmodel.Cart]
	productStore mystore.Store[catalogProduct]
	nower        mytime.Nower
	uuider       myuuid.UUIDer
}

// NewDocumentStore stores the cart and catalog in the in-memory store or in Google Cloud Datastore
func NewDocumentStore(c context.Context, nower mytime.Nower, uuider myuuid.UUIDer) (CartStore, func(), error) {
	cartStore, cartCleanup, err := mystore.New[cartmodel.Cart](c)
	if err != nil {
		return nil, nil, err
	}
	productStore, productCleanup, err := mystore.New[catalogProduct](c)
	if err != nil {
		cartCleanup()
		return nil, nil, err
	}

	return newDocumentStore(cartStore, productStore, nower, uuider), func() {
		productCleanup()
		cartCleanup()
	}, nil
}

func newDocumentStore(cartStore mystore.Store[cartmodel.Cart], productStore mystore.Store[catalogProduct], nower mytime.Nower, uuider myuuid.UUIDer) *documentStore {
	return &documentStore{
		cartStore:    cartStore,
		productStore: productStore,
		nower:        nower,
		uuider:       uuider,
	}
}

func (s *documentStore) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return s.cartStore.RunInTransaction(c, f)
}

func (s *documentStore) GetCart(c context.Context) (cartmodel.Cart, error) {
	cart, found, err := s.cartStore.Get(c, currentCartKey)
	if err != nil {
		return cartmodel.Cart{}, err
	}
	if found {
		if cart.Lines == nil {
			cart.Lines = []cartmodel.CartLine{}
		}
		return cart.Clone(), nil
	}

	cart = cartmodel.NewCart(s.uuider.Create(), s.nower.Now())
	err = s.cartStore.Put(c, currentCartKey, cart)
	if err != nil {
		return cartmodel.Cart{}, err
	}

	return cart.Clone(), nil
}

func (s *documentStore) UpdateCart(c context.Context, cart cartmodel.Cart) error {
	return s.cartStore.Put(c, currentCartKey, cart.Clone())
}

func (s *documentStore) EmptyCart(c context.Context, cart cartmodel.Cart) error {
	current, found, err := s.cartStore.Get(c, currentCartKey)
	if err != nil {
		return err
	}
	if found && current.UID != cart.UID {
		return errors.Errorf("cart %s is not the current cart %s", cart.UID, current.UID)
	}

	// Overwrites the closed cart
	return s.cartStore.Put(c, currentCartKey, cartmodel.NewCart(s.uuider.Create(), s.nower.Now()))
}

func (s *documentStore) GetPricesForCartProducts(c context.Context, cart cartmodel.Cart) ([]cartmodel.Product, error) {
	found, err := s.productStore.GetMulti(c, cart.ProductUIDs())
	if err != nil {
		return nil, err
	}

	products := make([]cartmodel.Product, 0, len(found))
	for _, uid := range cart.ProductUIDs() {
		record, exists := found[uid]
		if !exists {
			continue
		}
		product, err := record.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (s *documentStore) ProductExists(c context.Context, productUID string) (bool, error) {
	_, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *documentStore) SeedCatalog(c context.Context, products []cartmodel.Product) error {
	return s.productStore.RunInTransaction(c, func(c context.Context) error {
		for _, p := range products {
			err := s.productStore.Put(c, p.UID, catalogProduct{
				UID:   p.UID,
				Name:  p.Name,
				Price: p.Price.String(),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (p catalogProduct) toProduct() (cartmodel.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return cartmodel.Product{}, errors.Wrapf(err, "invalid price of product %s", p.UID)
	}
	return cartmodel.Product{
		UID:   p.UID,
		Name:  p.Name,
		Price: price,
	}, nil
}
