package warmup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shoppingcart/lib/mytime"
	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
	"github.com/MarcGrol/shoppingcart/services/cart/cartstore"
)

func TestWarmup(t *testing.T) {
	t.Run("Warmup success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, store := setup(ctrl)

		// given
		store.EXPECT().GetCart(gomock.Any()).Return(cartmodel.NewCart("cart-1", mytime.ExampleTime), nil)

		// when
		response := doWarmup(t, router)

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"message":"Warmed up"}`, response.Body.String())
	})

	t.Run("Store unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, store := setup(ctrl)

		// given
		store.EXPECT().GetCart(gomock.Any()).Return(cartmodel.Cart{}, fmt.Errorf("connection refused"))

		// when
		response := doWarmup(t, router)

		// then
		assert.Equal(t, 503, response.Code)
	})
}

func setup(ctrl *gomock.Controller) (*mux.Router, *cartstore.MockCartStore) {
	store := cartstore.NewMockCartStore(ctrl)
	store.EXPECT().RunInTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, f func(c context.Context) error) error {
		return f(c)
	})

	router := mux.NewRouter()
	NewService(store).RegisterEndpoints(context.TODO(), router)

	return router, store
}

func doWarmup(t *testing.T, router *mux.Router) *httptest.ResponseRecorder {
	request, err := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
	assert.NoError(t, err)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}
