package routes

import (
	"net/http"

	"github.com/levomgrup/sales-api/config"
	"github.com/levomgrup/sales-api/controllers"
	"github.com/levomgrup/sales-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Dependencies struct {
	Config      *config.Config
	Log         *logrus.Logger
	Customers   *services.CustomerService
	Products    *services.ProductService
	Visits      *services.VisitService
	Scheduler   *services.VisitScheduler
	Suggestions *services.SuggestionService
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(deps.Config.CORSOrigins)))
	r.Use(config.PerformanceLogger(deps.Log))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Sales Management API"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	customerController := &controllers.CustomerController{Customers: deps.Customers, Log: deps.Log}
	productController := &controllers.ProductController{Products: deps.Products, Log: deps.Log}
	visitController := &controllers.VisitController{Visits: deps.Visits, Scheduler: deps.Scheduler, Log: deps.Log}
	suggestionController := &controllers.SuggestionController{Suggestions: deps.Suggestions, Log: deps.Log}

	api := r.Group("/api")
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.POST("", productController.CreateProduct)
			products.GET("", productController.GetProducts)
			products.GET("/customer/:customerId", productController.GetCustomerProducts)
			products.GET("/:id", productController.GetProduct)
			products.PUT("/:id", productController.UpdateProduct)
			products.DELETE("/:id", productController.DeleteProduct)
			products.POST("/:id/assign", productController.AssignProduct)
			products.POST("/:id/unassign", productController.UnassignProduct)
		}

		// Visit routes
		visits := api.Group("/visits")
		{
			visits.POST("", visitController.CreateVisit)
			visits.GET("", visitController.GetVisits)
			visits.GET("/overdue", visitController.GetOverdueVisits)
			visits.POST("/test-automatic", visitController.RunRollover)
			visits.GET("/:id", visitController.GetVisit)
			visits.PUT("/:id", visitController.UpdateVisit)
			visits.DELETE("/:id", visitController.DeleteVisit)
		}

		// Suggestion routes
		suggestions := api.Group("/suggestions")
		{
			suggestions.POST("/customer/:customerId/products", suggestionController.SuggestProductsToCustomer)
			suggestions.POST("/product/:productId/customers", suggestionController.SuggestCustomersToProduct)
			suggestions.GET("/customer/:customerId", suggestionController.GetCustomerSuggestions)
			suggestions.GET("/product/:productId", suggestionController.GetProductSuggestions)
			suggestions.PUT("/:suggestionId/status", suggestionController.UpdateSuggestionStatus)
			suggestions.DELETE("/:suggestionId", suggestionController.DeleteSuggestion)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
