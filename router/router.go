package router

import (
	"context"
	"fmt"
	"net/http"

	"blockpass-backend/cache"
	"blockpass-backend/config"
	"blockpass-backend/factory"
	"blockpass-backend/handler"
	"blockpass-backend/healthcheck"
	"blockpass-backend/issuer"
	"blockpass-backend/logger"
	"blockpass-backend/middleware"
	"blockpass-backend/registry"
	"blockpass-backend/response"
	"blockpass-backend/vault"

	"github.com/gorilla/mux"
	"github.com/spf13/viper"
)

// Router returns the router for all the API handlers.
func Router(ctx context.Context) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.SetCorrelationIDHeader)
	r.Use(middleware.PanicHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.ResourceNotFound(fmt.Sprintf("The requested resource was not found: path: %s, method: %s", req.URL.Path, req.Method), "The requested resource was not found!").Send(req.Context(), w)
	})

	r.Use(middleware.ResponseTimeLogging)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.SetContentTypeHeader)

	f := factory.NewFactory()

	secret := viper.GetString(config.Secret)
	if viper.GetString(config.VaultAddress) != "" {
		v, err := vault.New(
			viper.GetString(config.VaultToken),
			viper.GetString(config.VaultUnSealKey),
			viper.GetString(config.VaultAddress),
			viper.GetString(config.VaultSecretPath))
		if err != nil {
			logger.Fatalf(ctx, "router: Error creating vault client: %+v", err)
		}

		vaultSecret, ok, err := v.JWTSecret()
		if err != nil {
			logger.Fatalf(ctx, "router: Error reading jwt secret from vault: %+v", err)
		}
		if ok {
			secret = vaultSecret
		}
	}
	if secret == "" {
		logger.Fatalf(ctx, "router: no jwt secret configured")
	}

	var registryStore registry.Store
	var issuerStore issuer.Store
	if viper.GetString(config.DBDriver) == "memory" {
		registryStore = registry.NewMemoryStore()
		issuerStore = issuer.NewMemoryStore()
	} else {
		db := f.DB(ctx)
		registryStore = registry.NewMySQLStore(db)
		issuerStore = issuer.NewMySQLStore(db)
	}

	var events *cache.Events
	if client := f.Redis(ctx); client != nil {
		events = cache.NewEvents(client, viper.GetDuration(config.EventCacheTTL))
	}

	issuerService := issuer.NewService(issuerStore)
	registryService := registry.NewService(registryStore, issuerService, events)

	r.HandleFunc("/healthcheck", healthcheck.Self).Methods(http.MethodGet)

	baseRouter := r.PathPrefix("/v1").Subrouter()
	baseRouter.Use(middleware.Authenticate(secret))

	eventRouter := baseRouter.PathPrefix("/event").Subrouter()
	eventRouter.HandleFunc("", handler.CreateEvent(registryService)).Methods(http.MethodPost)
	eventRouter.HandleFunc("/{eventID}", handler.GetEvent(registryService)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{eventID}", handler.DeactivateEvent(registryService)).Methods(http.MethodDelete)
	eventRouter.HandleFunc("/{eventID}/ticket", handler.PurchaseTicket(registryService)).Methods(http.MethodPost)
	eventRouter.HandleFunc("/{eventID}/details", handler.GetEventDetails(registryService)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{eventID}/attendees", handler.GetEventAttendees(registryService)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{eventID}/issuer", handler.GetTicketIssuer(registryService)).Methods(http.MethodGet)

	issuerRouter := baseRouter.PathPrefix("/issuer").Subrouter()
	issuerRouter.HandleFunc("", handler.CreateIssuer(issuerService)).Methods(http.MethodPost)
	issuerRouter.HandleFunc("/{issuerID}/ticket/{tokenID}/owner", handler.GetTicketOwner(issuerService)).Methods(http.MethodGet)
	issuerRouter.HandleFunc("/{issuerID}/ticket/{tokenID}/uri", handler.GetTokenURI(issuerService)).Methods(http.MethodGet)

	baseRouter.HandleFunc("/user/{caller}/events", handler.GetRegisteredEvents(registryService)).Methods(http.MethodGet)

	return r
}
