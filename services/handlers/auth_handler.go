package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

type AuthHandler struct {
	jwtSvc JWTServiceInterface
}

func NewAuthHandler(jwtSvc JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		jwtSvc: jwtSvc,
	}
}

// @Summary Mint dev token
// @Description Issue a bearer token for a declared address. Only mounted when AUTH_DEV_TOKENS=true.
// @Tags auth
// @Accept json
// @Produce json
// @Param tokenRequest body dto.DevTokenRequest true "Address to mint for"
// @Success 200 {object} shared.Response{data=dto.TokenPair}
// @Router /api/v1/auth/token [post]
func (h *AuthHandler) MintDevToken(c *fiber.Ctx) error {
	var req dto.DevTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	pair, err := h.jwtSvc.GenerateTokenPair(req.Address)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", pair)
}
