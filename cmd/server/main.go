package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/config"
	"github.com/gatepass/vehicle-access/internal/database"
	"github.com/gatepass/vehicle-access/internal/handler"
	"github.com/gatepass/vehicle-access/internal/kiosk"
	"github.com/gatepass/vehicle-access/internal/middleware"
	"github.com/gatepass/vehicle-access/internal/queue"
	"github.com/gatepass/vehicle-access/internal/repository"
	"github.com/gatepass/vehicle-access/internal/router"
	queue_publisher "github.com/gatepass/vehicle-access/internal/service"
	"github.com/gatepass/vehicle-access/internal/storage"
)

// publisher adapts the package-level publish function to the interface
// the kiosk flow consumes.
type publisher struct{}

func (publisher) PublishEntryRecorded(ctx context.Context, ev queue.EntryRecordedEvent) error {
	return queue_publisher.PublishEntryRecorded(ctx, ev)
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	loc := cfg.Location()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs kiosk sessions, rate limiting and the response cache.
	// All three degrade gracefully when it is absent.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; kiosk sessions held in memory, rate limiting and caching disabled")
	}

	var photos *storage.Client
	if cfg.S3AccessKey != "" {
		photos, err = storage.New(context.Background(), storage.Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatalf("storage: %v", err)
		}
	} else {
		log.Println("object storage not configured; photo upload disabled")
	}

	vehicles := repository.NewVehicleRepo(db, loc)
	people := repository.NewPersonRepo(db, loc)
	records := repository.NewRecordRepo(db, loc)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	sessions := kiosk.NewStore(rdb, cfg.SessionTTL)
	flow := kiosk.NewFlow(sessions, vehicles, people, records, publisher{}, loc)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	searchH := handler.NewSearchHandler(vehicles, people)
	kioskH := handler.NewKioskHandler(flow)
	vehiclesH := handler.NewVehiclesHandler(vehicles, people)
	recordsH := handler.NewRecordsHandler(records, publisher{}, loc)
	uploadH := newUploadHandler(photos)

	var photoResolver handler.PhotoURLResolver
	if photos != nil {
		photoResolver = photos
	}
	peopleH := handler.NewPeopleHandler(people, photoResolver)

	saveLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	fieldsCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterKiosk(e, kioskH, searchH, saveLimiter)
	router.RegisterAdmin(e, vehiclesH, peopleH, recordsH, uploadH, cfg.JWTSecret, fieldsCache)

	// Tail entry events into logs/gate.log; runs for the process lifetime.
	go func() {
		if err := queue.StartEntryLogConsumer(); err != nil {
			log.Printf("entry-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.Timezone)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// newUploadHandler avoids handing a typed-nil *storage.Client to the
// PhotoStore interface.
func newUploadHandler(photos *storage.Client) *handler.UploadHandler {
	if photos == nil {
		return handler.NewUploadHandler(nil)
	}
	return handler.NewUploadHandler(photos)
}
