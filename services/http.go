package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/aayushman-singh/xion-pet-game/services/handlers"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc        *AuthService
	jwtSvc         *JWTService
	petSvc         *PetService
	sessionSvc     *SessionService
	achievementSvc *AchievementService
	proofSvc       *ProofService
	configSvc      *ConfigService
	rateLimitSvc   *RateLimitService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.petSvc = svc.Service(PET_SVC).(*PetService)
	svc.sessionSvc = svc.Service(SESSION_SVC).(*SessionService)
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	svc.proofSvc = svc.Service(PROOF_SVC).(*ProofService)
	svc.configSvc = svc.Service(CONFIG_SVC).(*ConfigService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware())

	app.Get("/ping", svc.ping)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	svc.registerRoutes(v1)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) registerRoutes(v1 fiber.Router) {
	auth := svc.authSvc.RequiredAuth()
	admin := svc.authSvc.RequireAdmin()

	petHandler := handlers.NewPetHandler(svc.petSvc)
	sessionHandler := handlers.NewSessionHandler(svc.sessionSvc)
	achievementHandler := handlers.NewAchievementHandler(svc.achievementSvc)
	proofHandler := handlers.NewProofHandler(svc.proofSvc)
	configHandler := handlers.NewConfigHandler(svc.configSvc)

	// Pets
	v1.Post("/pets/:petId/status", auth, svc.rateLimitSvc.CallerRateLimit("status_update"), petHandler.UpdatePetStatus)
	v1.Post("/pets/:petId/activities", auth, svc.rateLimitSvc.CallerRateLimit("care_activity"), petHandler.RecordCareActivity)
	v1.Post("/pets/:petId/degradation", auth, svc.rateLimitSvc.CallerRateLimit("status_update"), petHandler.ProcessStatusDegradation)
	v1.Get("/pets/:petId/status", petHandler.GetPetStatus)
	v1.Get("/pets/:petId/activities", petHandler.GetCareHistory)

	// Game sessions
	v1.Post("/sessions", auth, svc.rateLimitSvc.CallerRateLimit("game_session"), sessionHandler.RecordGameSession)
	v1.Get("/sessions/:sessionId", sessionHandler.GetSession)
	v1.Get("/players/:address/sessions", sessionHandler.GetSessionsByPlayer)

	// Achievements
	v1.Post("/achievements", auth, admin, achievementHandler.RegisterAchievement)
	v1.Get("/achievements", achievementHandler.GetAllAchievements)
	v1.Get("/achievements/:achievementId", achievementHandler.GetAchievement)
	v1.Post("/achievements/:achievementId/proofs", auth, svc.rateLimitSvc.CallerRateLimit("achievement_proof"), achievementHandler.SubmitAchievementProof)
	v1.Get("/users/:address/achievements", achievementHandler.GetUserAchievements)
	v1.Get("/users/:address/achievements/:achievementId", achievementHandler.GetUserAchievement)

	// Proof registry
	v1.Get("/proofs/:proofId", proofHandler.GetProof)
	v1.Post("/proofs/:proofId/validate", auth, admin, proofHandler.ValidateProof)

	// Ledger config
	v1.Get("/config", configHandler.GetConfig)
	v1.Put("/config", auth, admin, configHandler.UpdateConfig)

	if os.Getenv("AUTH_DEV_TOKENS") == "true" {
		authHandler := handlers.NewAuthHandler(svc.jwtSvc)
		v1.Post("/auth/token", authHandler.MintDevToken)
		log.Warn().Msg("Dev token endpoint enabled")
	}
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	return shared.ResponseInternalError(c, err)
}
