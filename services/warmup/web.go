package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shoppingcart/lib/mycontext"
	"github.com/MarcGrol/shoppingcart/lib/myerrors"
	"github.com/MarcGrol/shoppingcart/lib/myhttp"
	"github.com/MarcGrol/shoppingcart/lib/mylog"
	"github.com/MarcGrol/shoppingcart/services/cart/cartstore"
)

type webService struct {
	logger    mylog.Logger
	cartStore cartstore.CartStore
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(store cartstore.CartStore) *webService {
	return &webService{
		logger:    mylog.New("warmup"),
		cartStore: store,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage opens the connection to the store so that the first real request is fast
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
			cart, err := s.cartStore.GetCart(c)
			if err != nil {
				return myerrors.NewUnavailableError(err)
			}
			s.logger.Log(c, cart.UID, mylog.SeverityInfo, "Warmed up with cart %s", cart.UID)
			return nil
		})
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Warmed up"})
	}
}
