package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/thread-heaven/storefront-api/internal/application/catalog"
	"github.com/thread-heaven/storefront-api/internal/application/order"
	"github.com/thread-heaven/storefront-api/internal/application/signup"
	"github.com/thread-heaven/storefront-api/internal/config"
	jwtinfra "github.com/thread-heaven/storefront-api/internal/infrastructure/jwt"
	"github.com/thread-heaven/storefront-api/internal/infrastructure/resend"
	s3infra "github.com/thread-heaven/storefront-api/internal/infrastructure/s3"
	"github.com/thread-heaven/storefront-api/internal/infrastructure/sns"
	"github.com/thread-heaven/storefront-api/internal/transport/http/handler"
	appmiddleware "github.com/thread-heaven/storefront-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OrderRepo    OrderRepository
	UserRepo     UserRepository
	ProductRepo  ProductRepository
	ImageStore   ImageStore
	Dispatcher   resend.Dispatcher
	Events       sns.OrderEventPublisher
	JWTProvider  *jwtinfra.Provider
	PendingStore *signup.Store
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Route quotas, keyed by client address. Routes without a dedicated
	// limiter share the default hourly+daily pair; routes with their own
	// quota are exempt from the default, so browsing traffic can never
	// starve a checkout or signup. Static assets are not limited.
	signupRL := appmiddleware.PerMinute(10)
	orderRL := appmiddleware.PerMinute(5)
	emailRL := appmiddleware.PerMinute(30)
	contactRL := appmiddleware.PerMinute(3)
	defaultRL := chi.Chain(
		appmiddleware.PerHour(50).Limit,
		appmiddleware.PerDay(200).Limit,
	)

	signupSvc := signup.NewService(signup.ServiceDeps{
		Store:      deps.PendingStore,
		UserRepo:   deps.UserRepo,
		Dispatcher: deps.Dispatcher,
		BaseURL:    cfg.PublicBaseURL,
	})
	orderSvc := order.NewService(order.ServiceDeps{
		OrderRepo:  deps.OrderRepo,
		Dispatcher: deps.Dispatcher,
		Events:     deps.Events,
	})
	catalogSvc := catalog.NewService(catalog.ServiceDeps{
		ProductRepo: deps.ProductRepo,
		ImageStore:  deps.ImageStore,
		ContentType: s3infra.DetectContentType,
	})

	healthH := handler.NewHealthHandler(cfg.CheckoutURL)
	authH := handler.NewAuthHandler(signupSvc, cfg.FirebaseAPIKey)
	orderH := handler.NewOrderHandler(orderSvc)
	emailH := handler.NewEmailHandler(deps.Dispatcher, cfg.PublicBaseURL)
	contactH := handler.NewContactHandler(deps.Dispatcher, cfg.StoreInbox)
	productH := handler.NewProductHandler(catalogSvc)
	adminH := handler.NewAdminHandler(cfg.AdminPassword, deps.JWTProvider)

	var adminMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		adminMw = appmiddleware.AdminAuth(deps.JWTProvider)
	} else {
		adminMw = func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"admin access not configured"}`, http.StatusServiceUnavailable)
			})
		}
	}

	r.With(defaultRL...).Get("/healthz", healthH.Ping)
	r.With(defaultRL...).Get("/verify", authH.Verify)

	r.Route("/api", func(r chi.Router) {
		r.With(defaultRL...).Get("/config", healthH.ClientConfig)

		r.With(signupRL.Limit).Post("/auth/signup", authH.Signup)
		r.With(defaultRL...).Post("/auth/login-token", authH.ExchangeLoginToken)

		r.With(orderRL.Limit).Post("/orders", orderH.Create)
		r.With(defaultRL...).Get("/orders/{id}", orderH.Get)

		r.With(emailRL.Limit).Post("/send-email", emailH.Send)
		r.With(contactRL.Limit).Post("/contact", contactH.Submit)

		r.With(defaultRL...).Get("/products", productH.List)
		r.With(defaultRL...).Get("/products/{id}", productH.Get)

		r.With(defaultRL...).Post("/admin/login", adminH.Login)
		r.Group(func(r chi.Router) {
			r.Use(defaultRL...)
			r.Use(adminMw)

			r.Get("/admin/orders", orderH.List)
			r.Post("/admin/products", productH.Create)
			r.Put("/admin/products/{id}", productH.Update)
			r.Delete("/admin/products/{id}", productH.Delete)
			r.Post("/admin/products/{id}/image", productH.UploadImage)
		})
	})

	// Static storefront with SPA-style fallback: unknown API paths get a JSON
	// 404, everything else falls back to the main page.
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		if req.URL.Path != "/" {
			full := filepath.Join(cfg.StaticDir, filepath.Clean(req.URL.Path))
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, req)
				return
			}
		}
		http.ServeFile(w, req, filepath.Join(cfg.StaticDir, "index.html"))
	})

	return r
}
