package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopdb/internal/models"
	"shopdb/internal/services"
)

// UserHandler handles HTTP requests for profiles and addresses.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetMe)
	userRoutes.Delete("/me", h.HandleDeleteMe)
	userRoutes.Put("/me/profile", h.HandleSaveProfile)
	userRoutes.Get("/me/addresses", h.HandleListAddresses)
	userRoutes.Post("/me/addresses", h.HandleAddAddress)
	userRoutes.Delete("/me/addresses/:id", h.HandleRemoveAddress)
}

// HandleGetMe returns the authenticated user with profile and addresses.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		log.Printf("Error getting user %d: %v", userID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	return c.JSON(user)
}

// HandleDeleteMe removes the authenticated user and all dependent rows.
func (h *UserHandler) HandleDeleteMe(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		log.Printf("Error deleting user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete user",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}

// HandleSaveProfile creates or updates the authenticated user's profile.
func (h *UserHandler) HandleSaveProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var profile models.Profile
	if err := c.BodyParser(&profile); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	profile.UserID = userID

	if err := h.userService.SaveProfile(&profile); err != nil {
		log.Printf("Error saving profile for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Profile saved",
		"profile": profile,
	})
}

// HandleListAddresses returns all addresses of the authenticated user.
func (h *UserHandler) HandleListAddresses(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	addresses, err := h.userService.ListAddresses(userID)
	if err != nil {
		log.Printf("Error listing addresses for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list addresses",
			"error":   err.Error(),
		})
	}
	return c.JSON(addresses)
}

// HandleAddAddress adds an address for the authenticated user.
func (h *UserHandler) HandleAddAddress(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		log.Printf("Error parsing address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	address.UserID = userID

	if err := h.validate.Struct(address); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.userService.AddAddress(&address); err != nil {
		log.Printf("Error adding address for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add address",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleRemoveAddress deletes one of the authenticated user's addresses.
func (h *UserHandler) HandleRemoveAddress(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	addressID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid address ID",
		})
	}

	if err := h.userService.RemoveAddress(uint(addressID), userID); err != nil {
		log.Printf("Error removing address %d for user %d: %v", addressID, userID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Address not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Address removed",
	})
}
