package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"sample-tracker-client/config"
	"sample-tracker-client/internal/mw"
	"sample-tracker-client/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, st *store.Store, refresher Refresher, db *gorm.DB, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(st, refresher, db, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RateLimitIdle)
	caching := storeCache(cfg, st).Handler()

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/samples", caching, handler.GetSamples)
		api.GET("/samples/:display_id", caching, handler.GetSample)
		api.GET("/locations", caching, handler.GetLocations)
		api.GET("/products", caching, handler.GetProducts)
		api.GET("/users", caching, handler.GetUsers)
		api.POST("/refresh", handler.PostRefresh)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}

// storeCache returns a response cache for views derived from st. Every store
// publication flushes it.
func storeCache(cfg *config.ServerConfig, st *store.Store) *mw.ResponseCache {
	responses := mw.NewResponseCache(cfg.CacheTTL)
	st.Subscribe(func(prev, next store.AppData) {
		responses.Flush()
	})
	return responses
}
