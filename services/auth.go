package services

import (
	"net/http"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/aayushman-singh/xion-pet-game/shared"
)

// AuthService turns a Bearer token into the caller address every mutating
// operation is scoped to. Tokens are minted by an external identity provider
// sharing JWT_SECRET; this service only verifies.
type AuthService struct {
	context.DefaultService

	jwtSvc    *JWTService
	configSvc *ConfigService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.configSvc = svc.Service(CONFIG_SVC).(*ConfigService)
	return nil
}

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		}

		address, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if address == "" {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid address in token")
		}

		c.Locals(shared.CallerAddress, address)
		return c.Next()
	}
}

// RequireAdmin must run after RequiredAuth; it checks the caller against the
// ledger config's admin principal.
func (svc *AuthService) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, _ := c.Locals(shared.CallerAddress).(string)
		if caller == "" {
			return shared.ResponseUnauthorized(c)
		}

		if err := svc.configSvc.RequireAdmin(caller); err != nil {
			return shared.ResponseForbidden(c)
		}

		return c.Next()
	}
}
