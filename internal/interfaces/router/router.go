package router

import (
	authsvc "easybazar-backend/internal/application/auth"
	catsvc "easybazar-backend/internal/application/categories"
	geosvc "easybazar-backend/internal/application/geo"
	listsvc "easybazar-backend/internal/application/listings"
	uploadsvc "easybazar-backend/internal/application/uploads"
	usersvc "easybazar-backend/internal/application/user"
	"easybazar-backend/internal/config"
	"easybazar-backend/internal/infrastructure/database"
	authhandler "easybazar-backend/internal/interfaces/handlers/auth"
	cathandler "easybazar-backend/internal/interfaces/handlers/categories"
	"easybazar-backend/internal/interfaces/handlers/docs"
	geohandler "easybazar-backend/internal/interfaces/handlers/geo"
	healthhandler "easybazar-backend/internal/interfaces/handlers/health"
	listhandler "easybazar-backend/internal/interfaces/handlers/listings"
	uploadhandler "easybazar-backend/internal/interfaces/handlers/uploads"
	userhandler "easybazar-backend/internal/interfaces/handlers/user"
	"easybazar-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all middleware and routes. The DB and
// Redis clients come back too so callers can ping them at startup.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.RequestID())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	healthHandlers := &healthhandler.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/api/openapi", docs.OpenAPI)

	// Geocoding works without a DB; the cache shares the session Redis.
	resolver := &geosvc.Resolver{
		Geocoder: &geosvc.NominatimClient{BaseURL: cfg.NominatimURL, Contact: cfg.GeocoderContact},
		Cache:    &geosvc.Cache{Rdb: rdb, TTL: cfg.GeocodeCacheTTL},
	}
	geoHandlers := &geohandler.Handlers{Resolver: resolver}
	app.Post("/api/geo/geocode", geoHandlers.Geocode)

	if db != nil {
		authService := &authsvc.Service{DB: db}
		authHandlers := &authhandler.Handlers{Service: authService, Rdb: rdb, Config: sessionCfg}
		authGroup := app.Group("/api/auth")
		authGroup.Post("/sign-up", authHandlers.SignUp)
		authGroup.Post("/sign-in", authHandlers.SignIn)
		authGroup.Post("/sign-out", authHandlers.SignOut)
		authGroup.Get("/user", authHandlers.Me)
		authGroup.Post("/change-password", middleware.RequireAuth(), authHandlers.ChangePassword)
		authGroup.Delete("/delete-account", middleware.RequireAuth(), authHandlers.DeleteAccount)

		listingsService := &listsvc.Service{DB: db, Resolver: resolver}
		listingsHandlers := &listhandler.Handlers{Service: listingsService}
		app.Get("/api/listings", listingsHandlers.List)
		app.Post("/api/listings", middleware.RequireAuth(), listingsHandlers.Create)
		app.Get("/api/listings/:id", listingsHandlers.GetByID)
		app.Put("/api/listings/:id", middleware.RequireAuth(), listingsHandlers.Update)
		app.Delete("/api/listings/:id", middleware.RequireAuth(), listingsHandlers.Delete)

		userService := &usersvc.Service{DB: db}
		userHandlers := &userhandler.Handlers{Service: userService}
		app.Get("/api/user", middleware.RequireAuth(), userHandlers.Me)
		app.Put("/api/user", middleware.RequireAuth(), userHandlers.Update)
		app.Get("/api/user/:id", userHandlers.PublicProfile)

		categoriesService := &catsvc.Service{DB: db}
		categoriesHandlers := &cathandler.Handlers{Service: categoriesService}
		app.Get("/api/categories", categoriesHandlers.List)

		uploadService := &uploadsvc.Service{
			Client:      &uploadsvc.HTTPClient{BaseURL: cfg.SupabaseURL, SecretKey: cfg.SupabaseSecretKey},
			SupabaseURL: cfg.SupabaseURL,
		}
		uploadHandlers := &uploadhandler.Handlers{Service: uploadService}
		uploadGroup := app.Group("/api/uploads", middleware.RequireAuth())
		uploadGroup.Post("/listing-image", uploadHandlers.ListingImage)
		uploadGroup.Post("/avatar", uploadHandlers.Avatar)
	}

	return app, db, rdb, nil
}
