package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/shoppingcart/lib/mylog"
	"github.com/MarcGrol/shoppingcart/lib/mymetrics"
	"github.com/MarcGrol/shoppingcart/lib/mytime"
	"github.com/MarcGrol/shoppingcart/lib/myuuid"
	"github.com/MarcGrol/shoppingcart/services/cart"
	"github.com/MarcGrol/shoppingcart/services/cart/cartstore"
	"github.com/MarcGrol/shoppingcart/services/warmup"
)

var logger = mylog.New("main")

func main() {
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(c)
	if err != nil {
		logger.Log(c, "", mylog.SeverityError, "Error running service: %s", err)
		stop()
		os.Exit(1)
	}
}

// run returns instead of exiting so that the store is always cleaned up
func run(c context.Context) error {
	router := mux.NewRouter()
	metrics := mymetrics.New("cart")
	router.Use(metrics.Middleware())
	metrics.RegisterEndpoints(router)

	store, cleanup, err := createCartStore(c)
	if err != nil {
		return errors.Wrap(err, "error creating cart store")
	}
	defer cleanup()

	catalog, err := cartstore.LoadCatalog(os.Getenv("CATALOG_FILE"))
	if err != nil {
		return errors.Wrap(err, "error loading catalog")
	}
	err = store.SeedCatalog(c, catalog)
	if err != nil {
		return errors.Wrap(err, "error seeding catalog")
	}
	logger.Log(c, "", mylog.SeverityInfo, "Seeded catalog with %d products", len(catalog))

	cartService := cart.NewWebService(store, mytime.RealNower{}, metrics)
	err = cartService.RegisterEndpoints(c, router)
	if err != nil {
		return errors.Wrap(err, "error registering cart endpoints")
	}

	warmup.NewService(store).RegisterEndpoints(c, router)

	return startWebServerBlocking(c, router)
}

func createCartStore(c context.Context) (cartstore.CartStore, func(), error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		logger.Log(c, "", mylog.SeverityInfo, "Using postgres cart store")
		return cartstore.NewPostgresStore(c, dsn, mytime.RealNower{}, myuuid.RealUUIDer{})
	}

	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		logger.Log(c, "", mylog.SeverityInfo, "Using datastore cart store")
	} else {
		logger.Log(c, "", mylog.SeverityInfo, "Using in-memory cart store")
	}
	return cartstore.NewDocumentStore(c, mytime.RealNower{}, myuuid.RealUUIDer{})
}

func startWebServerBlocking(c context.Context, router *mux.Router) error {
	port := getenv("PORT", "3000")
	shutdownTimeout, err := time.ParseDuration(getenv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return errors.Wrap(err, "invalid SHUTDOWN_TIMEOUT")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %s (try http://localhost:%s/shopping-cart)", port, port)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "error starting webserver on port %s", port)
		}
		return nil
	case <-c.Done():
	}

	logger.Log(c, "", mylog.SeverityInfo, "Shutting down webserver")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(ctx)
}

func getenv(name string, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}
