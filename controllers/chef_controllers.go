package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/utils"
)

type ChefController struct {
	DB *gorm.DB
}

func NewChefController(db *gorm.DB) *ChefController {
	return &ChefController{DB: db}
}

// Register chef baru
func (cc *ChefController) Register(c *gin.Context) {
	type request struct {
		Name             string   `json:"name" binding:"required"`
		Email            string   `json:"email" binding:"required,email"`
		Password         string   `json:"password" binding:"required,min=6"`
		Phone            string   `json:"phone"`
		CuisineSpecialty []string `json:"cuisine_specialty"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	chef := models.Chef{
		Name:             req.Name,
		Email:            req.Email,
		Password:         string(hashed),
		Phone:            req.Phone,
		CuisineSpecialty: datatypes.NewJSONSlice(req.CuisineSpecialty),
		IsAvailable:      true,
		AccountStatus:    "active",
	}

	if err := cc.DB.Create(&chef).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New chef registered: %s", chef.Email)

	utils.RespondJSON(c, http.StatusCreated, "Chef registered", gin.H{
		"chef_id": chef.ID,
	})
}

// Login chef -> return JWT
func (cc *ChefController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var chef models.Chef
	if err := cc.DB.Where("email = ?", input.Email).First(&chef).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(chef.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if chef.AccountStatus != "active" {
		utils.RespondError(c, http.StatusForbidden, errors.New("account is suspended"))
		return
	}

	token, err := utils.GenerateToken(chef.ID, models.RecipientChef)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  models.RecipientChef,
	})
}

// GetAllChefs -> daftar chef yang tersedia (public, untuk browsing)
func (cc *ChefController) GetAllChefs(c *gin.Context) {
	var chefs []models.Chef
	query := cc.DB.Where("account_status = ?", "active")

	if c.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}

	if err := query.Find(&chefs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of chefs", chefs)
}

// GetProfile -> profil chef dari JWT
func (cc *ChefController) GetProfile(c *gin.Context) {
	actorID := c.GetUint("actor_id")

	var chef models.Chef
	if err := cc.DB.First(&chef, actorID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data", chef)
}

// UpdateAvailability -> chef toggle status available
func (cc *ChefController) UpdateAvailability(c *gin.Context) {
	actorID := c.GetUint("actor_id")

	var input struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var chef models.Chef
	if err := cc.DB.First(&chef, actorID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	chef.IsAvailable = *input.IsAvailable
	if err := cc.DB.Save(&chef).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Availability updated", gin.H{
		"chef_id":      chef.ID,
		"is_available": chef.IsAvailable,
	})
}

// UpdateProfile -> chef update data profil
func (cc *ChefController) UpdateProfile(c *gin.Context) {
	actorID := c.GetUint("actor_id")

	var chef models.Chef
	if err := cc.DB.First(&chef, actorID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var input struct {
		Name             *string   `json:"name"`
		Phone            *string   `json:"phone"`
		CuisineSpecialty *[]string `json:"cuisine_specialty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if input.Name != nil {
		chef.Name = *input.Name
	}
	if input.Phone != nil {
		chef.Phone = *input.Phone
	}
	if input.CuisineSpecialty != nil {
		chef.CuisineSpecialty = datatypes.NewJSONSlice(*input.CuisineSpecialty)
	}

	if err := cc.DB.Save(&chef).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", chef)
}
