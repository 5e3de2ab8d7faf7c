package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

type AchievementHandler struct {
	achievementSvc AchievementServiceInterface
}

func NewAchievementHandler(achievementSvc AchievementServiceInterface) *AchievementHandler {
	return &AchievementHandler{
		achievementSvc: achievementSvc,
	}
}

// @Summary Register achievement (Admin)
// @Description Create or replace a catalog entry (admin only)
// @Tags achievements
// @Accept json
// @Produce json
// @Security Bearer
// @Param registerRequest body dto.RegisterAchievementRequest true "Achievement definition"
// @Success 201 {object} shared.Response{data=model.Achievement}
// @Router /api/v1/achievements [post]
func (h *AchievementHandler) RegisterAchievement(c *fiber.Ctx) error {
	caller := c.Locals(shared.CallerAddress).(string)

	var req dto.RegisterAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	achievement, err := h.achievementSvc.RegisterAchievement(caller, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", achievement)
}

// @Summary Submit achievement proof
// @Description Submit a zkTLS proof against an active achievement
// @Tags achievements
// @Accept json
// @Produce json
// @Security Bearer
// @Param achievementId path string true "Achievement ID"
// @Param submitRequest body dto.SubmitAchievementProofRequest true "Proof and supporting payload"
// @Success 200 {object} shared.Response{data=dto.SubmitAchievementProofResponse}
// @Router /api/v1/achievements/{achievementId}/proofs [post]
func (h *AchievementHandler) SubmitAchievementProof(c *fiber.Ctx) error {
	caller := c.Locals(shared.CallerAddress).(string)
	achievementID := c.Params("achievementId")

	var req dto.SubmitAchievementProofRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	result, err := h.achievementSvc.SubmitAchievementProof(achievementID, caller, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary Get achievement
// @Description Point lookup of a catalog entry
// @Tags achievements
// @Produce json
// @Param achievementId path string true "Achievement ID"
// @Success 200 {object} shared.Response{data=model.Achievement}
// @Router /api/v1/achievements/{achievementId} [get]
func (h *AchievementHandler) GetAchievement(c *fiber.Ctx) error {
	achievement, err := h.achievementSvc.GetAchievement(c.Params("achievementId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", achievement)
}

// @Summary List achievements
// @Description Full achievement catalog
// @Tags achievements
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Achievement}
// @Router /api/v1/achievements [get]
func (h *AchievementHandler) GetAllAchievements(c *fiber.Ctx) error {
	achievements, err := h.achievementSvc.GetAllAchievements()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", achievements)
}

// @Summary Get user achievement progress
// @Description Point lookup of one user's progress against one achievement
// @Tags achievements
// @Produce json
// @Param address path string true "User address"
// @Param achievementId path string true "Achievement ID"
// @Success 200 {object} shared.Response{data=model.UserAchievement}
// @Router /api/v1/users/{address}/achievements/{achievementId} [get]
func (h *AchievementHandler) GetUserAchievement(c *fiber.Ctx) error {
	ua, err := h.achievementSvc.GetUserAchievement(c.Params("address"), c.Params("achievementId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", ua)
}

// @Summary List user achievements
// @Description All progress records for a user
// @Tags achievements
// @Produce json
// @Param address path string true "User address"
// @Success 200 {object} shared.Response{data=[]model.UserAchievement}
// @Router /api/v1/users/{address}/achievements [get]
func (h *AchievementHandler) GetUserAchievements(c *fiber.Ctx) error {
	uas, err := h.achievementSvc.GetUserAchievements(c.Params("address"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", uas)
}
