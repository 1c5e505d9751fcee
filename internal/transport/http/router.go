package rest

import (
	"net/http"

	"github.com/Gunvolt24/jobboard/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RouterOption — необязательные маршруты.
type RouterOption func(*routerOptions)

type routerOptions struct {
	sessionBinding bool
}

// WithSessionBinding — открывает POST /api/v1/sessions, который привязывает любой токен
// к любому имени без проверки. Только для демо-стендов и тестов.
func WithSessionBinding() RouterOption {
	return func(o *routerOptions) { o.sessionBinding = true }
}

// NewRouter — otelServiceName == "" отключает трейсинг запросов.
func NewRouter(h *Handler, otelServiceName string, opts ...RouterOption) *gin.Engine {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1", h.withTimeout())
	auth := h.requireSession()

	if o.sessionBinding {
		api.POST("/sessions", h.bindSession)
	}

	api.GET("/categories", h.listCategories)
	api.GET("/categories/:id", h.getCategory)
	api.GET("/categories/:id/jobs", h.listJobsByCategory)
	api.POST("/categories", h.createCategory)
	api.PUT("/categories/:id", h.updateCategory)
	api.DELETE("/categories/:id", h.deleteCategory)

	api.GET("/jobs", h.listJobs)
	api.GET("/jobs/search", h.searchJobs)
	api.GET("/jobs/:id", h.getJob)
	api.POST("/jobs", h.createJob)
	api.PUT("/jobs/:id", h.updateJob)
	api.DELETE("/jobs/:id", h.deleteJob)

	api.GET("/adverts", h.listAdverts)
	api.GET("/adverts/:id", h.getAdvert)
	api.GET("/adverts/:id/offers", h.listOffersByAdvert)
	api.POST("/adverts", auth, h.createAdvert)
	api.PUT("/adverts/:id", auth, h.ownerOnly(h.authorizeAdvert), h.updateAdvert)
	api.DELETE("/adverts/:id", auth, h.ownerOnly(h.authorizeAdvert), h.deleteAdvert)

	api.GET("/offers/:id", h.getOffer)
	api.POST("/offers", auth, h.makeOffer)
	api.PUT("/offers/:id", auth, h.ownerOnly(h.authorizeOffer), h.updateOffer)
	api.DELETE("/offers/:id", auth, h.ownerOnly(h.authorizeOffer), h.deleteOffer)

	api.GET("/users/:id/adverts", h.listAdvertsByUser)
	api.GET("/users/:id/offers", h.listOffersByUser)
	api.GET("/users/:id/notifications", h.listNotifications)

	return r
}
