package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	apihttp "github.com/localassist/leads-api/api/http"
	"github.com/localassist/leads-api/api/http/handlers"
	"github.com/localassist/leads-api/pkg/auth"
	"github.com/localassist/leads-api/pkg/config"
	"github.com/localassist/leads-api/pkg/health"
	"github.com/localassist/leads-api/pkg/health/checkers"
	"github.com/localassist/leads-api/pkg/lead"
	dynamorepo "github.com/localassist/leads-api/pkg/repository/dynamo"
	"github.com/localassist/leads-api/pkg/security/jwt"
	"github.com/localassist/leads-api/pkg/storage/dynamo"
)

func main() {
	// Load configuration from env/.env
	cfg := config.Load()

	// Connect to DynamoDB; a local/test environment targets the
	// configured endpoint with dummy credentials.
	endpoint := ""
	if cfg.IsLocal() {
		endpoint = cfg.DynamoEndpoint
	}
	client, err := dynamo.Connect(context.Background(), cfg.AWSRegion, endpoint)
	if err != nil {
		log.Fatalf("dynamodb connect: %v", err)
	}

	// Wire dependencies explicitly; no package-level store handles.
	userRepo := dynamorepo.NewUserRepository(client, cfg.UsersTable)
	leadRepo := dynamorepo.NewLeadRepository(client, cfg.LeadsTable)

	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	authUC := auth.NewAuthService(userRepo, jwtGen)
	leadUC := lead.NewService(leadRepo)

	authHandler := handlers.NewAuthHandler(authUC)
	leadHandler := handlers.NewLeadHandler(leadUC)

	readiness := health.NewService(checkers.NewDynamoChecker(client, cfg.LeadsTable))
	healthHandler := handlers.NewHealthHandler(readiness)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins(), ","),
		AllowCredentials: true,
	}))

	authMW := jwt.NewAuthMiddleware(jwtGen)
	apihttp.Register(app, authHandler, leadHandler, healthHandler, authMW)

	log.Printf("HTTP server listening on :%s (environment: %s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
