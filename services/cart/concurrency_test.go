package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/shoppingcart/lib/mylog"
	"github.com/MarcGrol/shoppingcart/lib/mymetrics"
	"github.com/MarcGrol/shoppingcart/lib/mytime"
	"github.com/MarcGrol/shoppingcart/lib/myuuid"
	"github.com/MarcGrol/shoppingcart/services/cart/cartstore"
)

func TestConcurrentCommands(t *testing.T) {
	const clients = 50

	t.Run("Concurrent adds are all kept", func(t *testing.T) {
		// setup
		c, sut := setupConcurrentService(t)

		// when
		errs := make(chan error, clients)
		var wg sync.WaitGroup
		for i := 0; i < clients; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- sut.addItemToCart(c, "1", 1)
			}()
		}
		wg.Wait()
		close(errs)

		// then
		for err := range errs {
			assert.NoError(t, err)
		}
		cart, err := sut.getCart(c)
		require.NoError(t, err)
		assert.Equal(t, clients, cart.TotalQuantity())
	})

	t.Run("Concurrent adds and removes", func(t *testing.T) {
		// setup
		c, sut := setupConcurrentService(t)
		require.NoError(t, sut.addItemToCart(c, "2", clients))

		// when
		errs := make(chan error, 2*clients)
		var wg sync.WaitGroup
		for i := 0; i < clients; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				errs <- sut.addItemToCart(c, "2", 2)
			}()
			go func() {
				defer wg.Done()
				errs <- sut.removeItemFromCart(c, "2", 1)
			}()
		}
		wg.Wait()
		close(errs)

		// then
		for err := range errs {
			assert.NoError(t, err)
		}
		cart, err := sut.getCart(c)
		require.NoError(t, err)
		assert.Equal(t, 2*clients, cart.TotalQuantity())
	})

	t.Run("Units are never lost nor counted twice when closing concurrently", func(t *testing.T) {
		// setup
		c, sut := setupConcurrentService(t)
		const closers = 10

		// when
		var closed int
		var mutex sync.Mutex
		errs := make(chan error, clients+closers)
		var wg sync.WaitGroup
		for i := 0; i < clients; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- sut.addItemToCart(c, "1", 1)
			}()
			if i%(clients/closers) == 0 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := sut.closeCart(c)
					if errors.Is(err, ErrEmptyCart) {
						return
					}
					if err == nil {
						mutex.Lock()
						closed++
						mutex.Unlock()
					}
					errs <- err
				}()
			}
		}
		wg.Wait()
		close(errs)

		// then
		for err := range errs {
			assert.NoError(t, err)
		}
		cart, err := sut.getCart(c)
		require.NoError(t, err)
		closedUnits := histogramOf(t, sut.closedUnits)
		assert.Equal(t, uint64(closed), closedUnits.GetSampleCount())
		assert.Equal(t, float64(clients), closedUnits.GetSampleSum()+float64(cart.TotalQuantity()))
	})
}

func setupConcurrentService(t *testing.T) (context.Context, *service) {
	c := context.TODO()

	store, cleanup, err := cartstore.NewDocumentStore(c, mytime.RealNower{}, myuuid.RealUUIDer{})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	catalog, err := cartstore.LoadCatalog("")
	require.NoError(t, err)
	require.NoError(t, store.SeedCatalog(c, catalog))

	return c, newService(store, mytime.RealNower{}, mylog.New("cart"), mymetrics.New("cart"))
}
