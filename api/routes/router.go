package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wash91/sitem-washo-distr-sub000/api/controllers"
	"github.com/wash91/sitem-washo-distr-sub000/api/middleware"
	cashsvc "github.com/wash91/sitem-washo-distr-sub000/internal/cashregister"
	customersvc "github.com/wash91/sitem-washo-distr-sub000/internal/customers"
	expensesvc "github.com/wash91/sitem-washo-distr-sub000/internal/expenses"
	ordersvc "github.com/wash91/sitem-washo-distr-sub000/internal/orders"
	productsvc "github.com/wash91/sitem-washo-distr-sub000/internal/products"
	receivablesvc "github.com/wash91/sitem-washo-distr-sub000/internal/receivables"
	salesvc "github.com/wash91/sitem-washo-distr-sub000/internal/sales"
	trucksvc "github.com/wash91/sitem-washo-distr-sub000/internal/trucks"
	usersvc "github.com/wash91/sitem-washo-distr-sub000/internal/users"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/config"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/logger"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/redis"
)

// Services bundles everything the router wires into controllers.
type Services struct {
	Users        usersvc.Service
	Customers    customersvc.Service
	Products     productsvc.Service
	Trucks       trucksvc.Service
	Sales        salesvc.Service
	Expenses     expensesvc.Service
	Receivables  receivablesvc.Service
	Orders       ordersvc.Service
	CashRegister cashsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readiness map[string]controllers.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(svcs.Users, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CreateCustomer(svcs.Customers, logg))
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Get("/{customerId}", controllers.GetCustomer(svcs.Customers, logg))
			r.Patch("/{customerId}", controllers.UpdateCustomer(svcs.Customers, logg))
			r.Get("/{customerId}/payments", controllers.ListCustomerPayments(svcs.Receivables, logg))
			r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).
				Delete("/{customerId}", controllers.DeleteCustomer(svcs.Customers, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Products, logg))
			r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).Group(func(r chi.Router) {
				r.Post("/", controllers.CreateProduct(svcs.Products, logg))
				r.Patch("/{productId}", controllers.UpdateProduct(svcs.Products, logg))
			})
		})

		r.Route("/trucks", func(r chi.Router) {
			r.Get("/", controllers.ListTrucks(svcs.Trucks, logg))
			r.Get("/{truckId}", controllers.GetTruck(svcs.Trucks, logg))
			r.Get("/{truckId}/stock", controllers.GetTruckStock(svcs.Trucks, logg))
			r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).Group(func(r chi.Router) {
				r.Post("/", controllers.CreateTruck(svcs.Trucks, logg))
				r.Patch("/{truckId}", controllers.UpdateTruck(svcs.Trucks, logg))
				r.Put("/{truckId}/stock", controllers.SetTruckStock(svcs.Trucks, logg))
			})
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.RecordSale(svcs.Sales, logg))
			r.Get("/", controllers.ListMySales(svcs.Sales, logg))
			r.Get("/{saleId}", controllers.GetSale(svcs.Sales, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", controllers.RecordExpense(svcs.Expenses, logg))
			r.Get("/", controllers.ListMyExpenses(svcs.Expenses, logg))
		})

		r.Post("/receivable-payments", controllers.RecordReceivablePayment(svcs.Receivables, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(svcs.Orders, logg))
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(svcs.Orders, logg))
			r.Post("/{orderId}/deliver", controllers.DeliverOrder(svcs.Orders, logg))
			r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).Group(func(r chi.Router) {
				r.Post("/{orderId}/assign", controllers.AssignOrder(svcs.Orders, logg))
				r.Post("/{orderId}/cancel", controllers.CancelOrder(svcs.Orders, logg))
			})
		})

		r.Route("/cash", func(r chi.Router) {
			r.Get("/denominations", controllers.GetDenominationCatalog(svcs.CashRegister))
			r.Post("/sessions", controllers.OpenCashSession(svcs.CashRegister, logg))
			r.Get("/sessions/open", controllers.GetOpenCashSession(svcs.CashRegister, logg))
			r.Post("/sessions/{sessionId}/close", controllers.CloseCashSession(svcs.CashRegister, logg))
			r.Get("/closings", controllers.ListMyCashClosings(svcs.CashRegister, logg))
			r.Get("/closings/{closingId}", controllers.GetCashClosing(svcs.CashRegister, logg))
		})

		r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).Route("/users", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateUser(svcs.Users, logg))
			r.Get("/", controllers.AdminListUsers(svcs.Users, logg))
			r.Patch("/{userId}/active", controllers.AdminSetUserActive(svcs.Users, logg))
		})
	})

	return r
}
