package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shoppingcart/lib/mycontext"
	"github.com/MarcGrol/shoppingcart/lib/myhttp"
	"github.com/MarcGrol/shoppingcart/lib/mylog"
	"github.com/MarcGrol/shoppingcart/lib/mymetrics"
	"github.com/MarcGrol/shoppingcart/lib/mytime"
	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
	"github.com/MarcGrol/shoppingcart/services/cart/cartstore"
)

const (
	errorCodeInvalidRequest = 1
	errorCodeRejected       = 2
)

type webService struct {
	logger  mylog.Logger
	service *service
}

type CloseCartResponse struct {
	Message    string      `json:"message"`
	TotalPrice json.Number `json:"totalPrice"`
}

type CartResponse struct {
	UID          string         `json:"uid"`
	CreatedAt    time.Time      `json:"createdAt"`
	LastModified *time.Time     `json:"lastModified,omitempty"`
	Products     []LineResponse `json:"products"`
}

type LineResponse struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(store cartstore.CartStore, nower mytime.Nower, metrics *mymetrics.Metrics) *webService {
	logger := mylog.New("cart")
	return &webService{
		logger:  logger,
		service: newService(store, nower, logger, metrics),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/shopping-cart", s.getCart()).Methods("GET")
	router.HandleFunc("/shopping-cart/addItem", s.addItem()).Methods("POST")
	router.HandleFunc("/shopping-cart/removeItem", s.removeItem()).Methods("POST")
	router.HandleFunc("/shopping-cart/closeCart", s.closeCart()).Methods("POST")

	return nil
}

func (s *webService) getCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.getCart(c)
		if err != nil {
			responseWriter.WriteError(c, w, errorCodeRejected, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, cartResponseFrom(cart))
	}
}

func (s *webService) addItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req, err := parseItemRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, errorCodeInvalidRequest, err)
			return
		}

		err = s.service.addItemToCart(c, req.ProductUID, req.Amount)
		if err != nil {
			responseWriter.WriteError(c, w, errorCodeRejected, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Success"})
	}
}

func (s *webService) removeItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req, err := parseItemRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, errorCodeInvalidRequest, err)
			return
		}

		err = s.service.removeItemFromCart(c, req.ProductUID, req.Amount)
		if err != nil {
			responseWriter.WriteError(c, w, errorCodeRejected, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Success"})
	}
}

func (s *webService) closeCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		totalPrice, err := s.service.closeCart(c)
		if err != nil {
			responseWriter.WriteError(c, w, errorCodeRejected, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, CloseCartResponse{
			Message:    "Success",
			TotalPrice: json.Number(totalPrice.String()),
		})
	}
}

func cartResponseFrom(cart cartmodel.Cart) CartResponse {
	lines := make([]LineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, LineResponse{ID: l.ProductUID, Amount: l.Quantity})
	}
	return CartResponse{
		UID:          cart.UID,
		CreatedAt:    cart.CreatedAt,
		LastModified: cart.LastModified,
		Products:     lines,
	}
}
