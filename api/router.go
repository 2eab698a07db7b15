package api

import (
	"net/http"
	"path/filepath"

	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/Domenick1991/seatbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	SwaggerDir  string
	CORSOrigins []string
	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// NewRouter wires every HTTP route and wraps the engine with CORS.
func NewRouter(cfg RouterConfig, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog())

	router.GET("/health", Health)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiGroup := router.Group("/api")
	NewFlightHandler(flightSvc).Register(apiGroup)
	NewBookingHandler(bookingSvc).Register(apiGroup)

	if cfg.SwaggerDir != "" {
		router.GET("/swagger/*any", swaggerHandler(filepath.Join(cfg.SwaggerDir, "swagger.json")))
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})(router)
}

// swaggerHandler serves the UI under /swagger/ and the document at
// /swagger/doc.json.
func swaggerHandler(docPath string) gin.HandlerFunc {
	ui := gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	return func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			c.File(docPath)
			return
		}
		ui(c)
	}
}
