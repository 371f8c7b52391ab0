package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/cart/internal/adapters/config"
	"github.com/rafaelleal24/cart/internal/adapters/http/controllers"
	"github.com/rafaelleal24/cart/internal/adapters/http/middleware"
)

type Router struct {
	healthController *controllers.HealthController
	cartController   *controllers.CartController
	rateLimiter      middleware.RateLimiter
	metricsHandler   http.Handler
	config           config.HTTPConfig
}

// NewRouter accepts a nil rateLimiter or metricsHandler to disable them.
func NewRouter(
	cfg config.HTTPConfig,
	healthController *controllers.HealthController,
	cartController *controllers.CartController,
	rateLimiter middleware.RateLimiter,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController: healthController,
		cartController:   cartController,
		rateLimiter:      rateLimiter,
		metricsHandler:   metricsHandler,
		config:           cfg,
	}
}

func (r *Router) limited() []gin.HandlerFunc {
	if r.rateLimiter == nil || r.config.RateLimit <= 0 {
		return nil
	}
	return []gin.HandlerFunc{middleware.RateLimit(r.rateLimiter, r.config.RateLimit, r.config.RateWindow)}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	limited := r.limited()

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		v1Group.GET("/cart", r.cartController.GetCart)
		v1Group.GET("/cart/events", r.cartController.Events)
		v1Group.POST("/cart/items", append(limited, r.cartController.AddProduct)...)
		v1Group.PATCH("/cart/items/:id", append(limited, r.cartController.UpdateProductAmount)...)
		v1Group.DELETE("/cart/items/:id", r.cartController.RemoveProduct)

		if r.metricsHandler != nil {
			v1Group.GET("/metrics", gin.WrapH(r.metricsHandler))
		}
	}
}

func (r *Router) ListenAndServe(ctx context.Context) error {
	engine := gin.Default()
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", r.config.BindInterface, r.config.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
