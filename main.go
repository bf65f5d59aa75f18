package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Andryushik/MyDiary/auth"
	"github.com/Andryushik/MyDiary/config"
	"github.com/Andryushik/MyDiary/database"
	"github.com/Andryushik/MyDiary/feed"
	"github.com/Andryushik/MyDiary/handlers"
	"github.com/Andryushik/MyDiary/imagestore"
	"github.com/Andryushik/MyDiary/posts"
	"github.com/Andryushik/MyDiary/routes"
	"github.com/Andryushik/MyDiary/store"
	"github.com/Andryushik/MyDiary/users"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration error: ", err)
	}

	log.Println("Connecting to MongoDB...")
	client, db := connectWithRetry(cfg)
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Println("MongoDB disconnect error:", err)
		}
	}()
	log.Println("MongoDB connected")

	images, err := imagestore.NewCloudinaryStore(cfg.CloudinaryURL, cfg.ImageFolder)
	if err != nil {
		log.Fatal("image store error: ", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	postStore := store.NewMongoPostStore(db.Collection("posts"))
	userStore := store.NewMongoUserStore(db.Collection("users"))

	handler := handlers.New(
		users.NewService(userStore, tokens, images),
		posts.NewService(postStore, userStore, images),
		feed.NewService(postStore, userStore, cfg.Location()),
	)

	router := routes.SetupRouter(cfg, handler, tokens)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("forced shutdown:", err)
	}

	log.Println("Server stopped gracefully")
}

// connectWithRetry gives a freshly started Mongo a few seconds to come up
// before giving up.
func connectWithRetry(cfg *config.Config) (*mongo.Client, *mongo.Database) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		client, db, err := database.Connect(cfg.MongoURI, cfg.DBName)
		if err == nil {
			return client, db
		}
		lastErr = err
		log.Printf("MongoDB connection attempt %d failed: %v", attempt, err)
		time.Sleep(2 * time.Second)
	}
	log.Fatal("failed to connect to MongoDB: ", lastErr)
	return nil, nil
}
