package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

type ConfigHandler struct {
	configSvc ConfigServiceInterface
}

func NewConfigHandler(configSvc ConfigServiceInterface) *ConfigHandler {
	return &ConfigHandler{
		configSvc: configSvc,
	}
}

// @Summary Get ledger config
// @Description Current admin principal and collaborator contract addresses
// @Tags config
// @Produce json
// @Success 200 {object} shared.Response{data=model.LedgerConfig}
// @Router /api/v1/config [get]
func (h *ConfigHandler) GetConfig(c *fiber.Ctx) error {
	config, err := h.configSvc.GetConfig()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", config)
}

// @Summary Update ledger config (Admin)
// @Description Partial update of admin and collaborator addresses (admin only)
// @Tags config
// @Accept json
// @Produce json
// @Security Bearer
// @Param updateRequest body dto.UpdateConfigRequest true "Config fields to change"
// @Success 200 {object} shared.Response{data=model.LedgerConfig}
// @Router /api/v1/config [put]
func (h *ConfigHandler) UpdateConfig(c *fiber.Ctx) error {
	caller := c.Locals(shared.CallerAddress).(string)

	var req dto.UpdateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	config, err := h.configSvc.UpdateConfig(caller, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", config)
}
