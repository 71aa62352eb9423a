package main // Entry point package

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/salon-booking/internal/config"
	"github.com/iliyamo/salon-booking/internal/database"
	"github.com/iliyamo/salon-booking/internal/handler"
	"github.com/iliyamo/salon-booking/internal/middleware"
	"github.com/iliyamo/salon-booking/internal/queue"
	"github.com/iliyamo/salon-booking/internal/repository"
	"github.com/iliyamo/salon-booking/internal/router"
	"github.com/iliyamo/salon-booking/internal/utils"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		cfg.DBMaxOpen, cfg.DBMaxIdle, time.Duration(cfg.DBConnLifeMin)*time.Minute)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	services := repository.NewServiceRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	loyalty := repository.NewLoyaltyRepo(db)
	recommendations := repository.NewRecommendationRepo(db)

	if err := bootstrapAdmin(db, cfg, users); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	bookingH := handler.NewBookingHandler(appointments, services)
	catalogH := handler.NewCatalogHandler(services, recommendations)
	loyaltyH := handler.NewLoyaltyHandler(loyalty)
	adminSvcH := handler.NewAdminServiceHandler(services)
	adminUserH := handler.NewAdminUserHandler(users, loyalty)
	galleryH := handler.NewGalleryHandler(cfg.GalleryDir)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, catalogH, galleryH, cfg.GalleryDir, cache)
	router.RegisterCustomer(e, bookingH, catalogH, loyaltyH, cfg.JWTSecret, limiter)
	router.RegisterAdmin(e, adminSvcH, adminUserH, galleryH, cfg.JWTSecret)

	// Background consumer writes booked-appointment events to the log file.
	go func() {
		if err := queue.StartAppointmentConsumer(); err != nil {
			log.Printf("appointment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

// bootstrapAdmin ensures the configured admin account exists with a bcrypt
// password. Skipped when ADMIN_PHONE/ADMIN_PASSWORD are unset.
func bootstrapAdmin(db *sql.DB, cfg config.Config, users *repository.UserRepo) error {
	if cfg.AdminPhone == "" || cfg.AdminPassword == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := users.GetByPhone(ctx, cfg.AdminPhone)
	if err == sql.ErrNoRows {
		id, cerr := users.Create(ctx, "Admin", cfg.AdminPhone, "ADMIN")
		if cerr != nil {
			return cerr
		}
		u.ID = id
	} else if err != nil {
		return err
	}
	if u.PasswordHash != nil {
		return nil // already provisioned, keep the existing password
	}
	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}
	return users.SetPassword(ctx, u.ID, hash, "ADMIN")
}
