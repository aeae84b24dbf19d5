package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/recordhub/internal/auth"
	"github.com/iliyamo/recordhub/internal/config"
	"github.com/iliyamo/recordhub/internal/database"
	"github.com/iliyamo/recordhub/internal/handler"
	"github.com/iliyamo/recordhub/internal/middleware"
	"github.com/iliyamo/recordhub/internal/queue"
	"github.com/iliyamo/recordhub/internal/repository"
	"github.com/iliyamo/recordhub/internal/router"
)

func main() {
	// A missing .env is fine in production where the environment is real.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Redis is optional: carts and the request counter degrade to local
	// state when it is absent.
	rdb := config.NewRedisClient()

	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.AccessTTLMin)*time.Minute)

	users := repository.NewUserRepo(db)
	contacts := repository.NewContactRepo(db)
	notes := repository.NewNoteRepo(db)
	applications := repository.NewApplicationRepo(db)
	students := repository.NewStudentRepo(db)
	products := repository.NewProductRepo(db)
	orders := repository.NewOrderRepo(db)
	carts := repository.NewCartRepo(rdb)

	authHandler := handler.NewAuthHandler(users, tokens, cfg.BcryptCost)
	contactHandler := handler.NewContactHandler(contacts)
	noteHandler := handler.NewNoteHandler(notes)
	applicationHandler := handler.NewApplicationHandler(applications)
	studentHandler := handler.NewStudentHandler(students)
	productHandler := handler.NewProductHandler(products)
	cartHandler := handler.NewCartHandler(carts, products, orders, queue.PublishOrderPlaced)
	adminHandler := handler.NewAdminHandler(users, products)

	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	counter := middleware.NewCounter(rdb)
	e.Use(middleware.RequestCounter(counter))

	router.RegisterInfra(e, counter)
	router.RegisterAuth(e, authHandler, tokens, users)
	router.RegisterResources(e, tokens, users, contactHandler, noteHandler, applicationHandler, studentHandler, cartHandler)
	router.RegisterProducts(e, tokens, users, productHandler)
	router.RegisterAdmin(e, tokens, users, adminHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
