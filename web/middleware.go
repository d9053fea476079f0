package web

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"

	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/libs/reqid"
)

func CorsConfig() cors.Config {
	corsConf := cors.DefaultConfig()
	corsConf.AllowAllOrigins = true
	corsConf.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConf.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", reqid.Header}
	corsConf.ExposeHeaders = []string{reqid.Header}
	corsConf.MaxAge = 1 * 3600 // 1 hours
	return corsConf
}

// RequestIDMiddleware keeps the caller's request id or issues a new one, and echoes it back.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(reqid.Header)
		if id == "" {
			id = reqid.New()
		}
		c.Header(reqid.Header, id)
		c.Request = c.Request.WithContext(reqid.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// DriverDataLoaderInjectionMiddleware gives every request its own driver loader so
// lookups within one request are batched and cached, but never shared across requests.
func DriverDataLoaderInjectionMiddleware(drivers dbt.EntityStore[entity.Driver]) gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := dbt.NewLookupLoader(drivers)
		c.Request = c.Request.WithContext(dbt.WithDriverLoader(c.Request.Context(), loader))
		c.Next()
	}
}

func setupMiddlewares(r *gin.Engine, cfg ServiceConfig, m *metrics, drivers dbt.EntityStore[entity.Driver]) {
	r.Use(gin.Recovery())
	if cfg.IsDev {
		r.Use(gin.Logger())
	}
	r.Use(RequestIDMiddleware())
	r.Use(m.middleware())
	r.Use(cors.New(CorsConfig()))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws/"})))
	r.Use(secure.New(secure.Config{
		STSSeconds:           31536000, // 1 year
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		IsDevelopment:        cfg.IsDev,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
	}))
	r.Use(DriverDataLoaderInjectionMiddleware(drivers))
}
