package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/authors"
	"github.com/locallibrary/catalog/pkg/binder"
	"github.com/locallibrary/catalog/pkg/bookinstances"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/catalog"
	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/docs"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/genres"
	"github.com/locallibrary/catalog/pkg/metrics"
	"github.com/locallibrary/catalog/pkg/testutils"
	"github.com/locallibrary/catalog/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/uptrace/bun"
)

// New builds the HTTP server.
//
// @title Local Library Catalog API
// @version 1.0
// @description Authors, books, copies and genres of a small lending library.
// @BasePath /catalog
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e, err := newEcho(cfg, db)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b
	e.JSONSerializer = binder.Serializer{}

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(metrics.Middleware())
	e.Use(middleware.Secure())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)
	e.GET("/metrics", metrics.Handler())

	if cfg.StaticDir != "" {
		e.Static("/static", cfg.StaticDir)
	}

	// Test-only helpers for seeding and resetting state
	if cfg.Environment == "test" {
		testutils.RegisterRoutes(e, db)
	}

	g := e.Group("/catalog")
	registerCatalogRoutes(g, db, cfg)

	docs.SwaggerInfo.BasePath = "/catalog"
	g.GET("/api-docs/*", echo.WrapHandler(httpSwagger.Handler(
		httpSwagger.URL("/catalog/api-docs/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	)))

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

// registerCatalogRoutes mounts every resource under /catalog. Only changing or
// removing a user needs a token.
func registerCatalogRoutes(g *echo.Group, db *bun.DB, cfg *config.Config) {
	catalog.RegisterRoutes(g, db)
	authors.RegisterRoutes(g, db)
	books.RegisterRoutes(g, db)
	bookinstances.RegisterRoutes(g, db)
	genres.RegisterRoutes(g, db)

	authMiddleware := auth.RegisterRoutes(g, db, cfg)
	users.RegisterRoutes(g, db, authMiddleware)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
