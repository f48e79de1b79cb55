package controllers

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"seb/config"
	"seb/database"
	"seb/middleware"
	"seb/models"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// hubUser is the user payload returned by the Hub Central exchange endpoint
type hubUser struct {
	ID        string `json:"id"`
	FamilyID  string `json:"family_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Code      string `json:"code"`
	Role      string `json:"role"`
}

// ExchangeCode exchanges a one-time Hub Central code for a session token.
// The parent profile is upserted from the Hub Central response; the token
// is only issued for parent codes (STAR-PAD prefix).
func ExchangeCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedExchange").(*struct {
		Code string `json:"code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"code":        reqData.Code,
			"mini_app_id": config.AppConfig.MiniAppID,
		}).
		Post(config.AppConfig.HubCentralAPIURL + "/v1/auth/exchange")
	if err != nil {
		log.Printf("Hub Central exchange failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reach Hub Central!", nil)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Hub Central rejected code: %s", resp.String())
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired code!", nil)
	}

	var hubResp struct {
		User hubUser `json:"user"`
	}
	if err := json.Unmarshal(resp.Body(), &hubResp); err != nil {
		log.Printf("Failed to parse Hub Central response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Invalid Hub Central response!", nil)
	}

	// Only parent codes may use this app
	if !strings.HasPrefix(hubResp.User.Code, "STAR-PAD-") {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This code is not valid for StarEduca Senior!", nil)
	}

	return issueSession(c, hubResp.User)
}

// DevLogin issues a session for a mock parent. Only available when
// DEV_LOGIN_ENABLED is set.
func DevLogin(c *fiber.Ctx) error {
	if !config.AppConfig.DevLoginEnabled {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	}

	return issueSession(c, hubUser{
		ID:        "dev_parent_001",
		FamilyID:  "dev_family_001",
		FirstName: "María",
		LastName:  "García",
		Email:     "maria.garcia@example.com",
		Code:      "STAR-PAD-DEV001",
		Role:      "parent",
	})
}

// issueSession upserts the parent record and returns a signed JWT
func issueSession(c *fiber.Ctx, user hubUser) error {
	now := time.Now()

	var parent models.Parent
	err := database.Database.Db.Where("external_id = ?", user.ID).First(&parent).Error
	if err != nil {
		parent = models.Parent{
			ExternalID:       user.ID,
			FirstName:        user.FirstName,
			LastName:         user.LastName,
			Email:            user.Email,
			Code:             user.Code,
			FamilyID:         user.FamilyID,
			LastActivityDate: &now,
		}
		if err := database.Database.Db.Create(&parent).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create parent!", nil)
		}
	} else {
		parent.FirstName = user.FirstName
		parent.LastName = user.LastName
		parent.Email = user.Email
		parent.Code = user.Code
		parent.FamilyID = user.FamilyID
		parent.LastActivityDate = &now
		if err := database.Database.Db.Save(&parent).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update parent!", nil)
		}
	}

	token, err := middleware.GenerateJWT(parent.ID, parent.FirstName+" "+parent.LastName, parent.Code, parent.FamilyID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token":  token,
		"parent": parent,
	})
}
