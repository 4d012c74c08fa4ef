package handlers

import (
	"skyfare/internal/models"
	"skyfare/internal/services/user"
	"skyfare/internal/utils/pagination"
	"skyfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input user.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	created, err := h.userService.Register(input)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, "User registered successfully", fiber.Map{
		"id":    created.ID,
		"email": created.Email,
		"name":  created.Name,
		"role":  created.Role,
	})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	u, err := h.userService.GetUser(claims.UserID)
	if err != nil {
		return response.Error(c, fiber.StatusNotFound, "User not found")
	}

	return response.Success(c, "Profile retrieved", fiber.Map{
		"id":          u.ID,
		"email":       u.Email,
		"name":        u.Name,
		"phone":       u.Phone,
		"role":        u.Role,
		"agency_name": u.AgencyName,
		"status":      u.Status,
	})
}

// GetUsersPaginated lists users for the admin user-management table.
func (h *UserHandler) GetUsersPaginated(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.userService.ListUsers(p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to fetch users")
	}
	p.Total = total

	return c.JSON(pagination.Response(p, users))
}

func (h *UserHandler) ChangeUserRole(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if err := h.userService.ChangeRole(uint(userID), input.Role); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "Role updated", nil)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(uint(userID)); err != nil {
		return response.ServerError(c, "Failed to delete user")
	}
	return response.Success(c, "User deleted", nil)
}
