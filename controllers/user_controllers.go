package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/utils"
)

// ErrNoPermission dipakai lintas controller untuk akses role yang salah
var ErrNoPermission = errors.New("you do not have permission")

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register user (customer) baru
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name          string `json:"name" binding:"required"`
		Email         string `json:"email" binding:"required,email"`
		Password      string `json:"password" binding:"required,min=6"`
		Phone         string `json:"phone"`
		Street        string `json:"street"`
		City          string `json:"city"`
		State         string `json:"state"`
		Pincode       string `json:"pincode"`
		HouseholdSize int    `json:"household_size"`
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

	householdSize := req.HouseholdSize
	if householdSize < 1 {
		householdSize = 1
	}

	user := models.User{
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hashed),
		Phone:         req.Phone,
		Street:        req.Street,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		HouseholdSize: householdSize,
		AccountStatus: "active",
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login user -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if user.AccountStatus != "active" {
		utils.RespondError(c, http.StatusForbidden, errors.New("account is suspended"))
		return
	}

	token, err := utils.GenerateToken(user.ID, models.RecipientUser)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  models.RecipientUser,
	})
}

// Logout -> blacklist token yang dipakai (berlaku untuk semua role)
func Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token != "" {
		utils.BlacklistToken(token)
	}

	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile -> profil user dari JWT
func (uc *UserController) GetProfile(c *gin.Context) {
	actorID := c.GetUint("actor_id")

	var user models.User
	if err := uc.DB.First(&user, actorID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data", user)
}

// UpdateProfile -> update data profil (field yang dikirim saja)
func (uc *UserController) UpdateProfile(c *gin.Context) {
	actorID := c.GetUint("actor_id")

	var user models.User
	if err := uc.DB.First(&user, actorID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var input struct {
		Name          *string `json:"name"`
		Phone         *string `json:"phone"`
		Street        *string `json:"street"`
		City          *string `json:"city"`
		State         *string `json:"state"`
		Pincode       *string `json:"pincode"`
		HouseholdSize *int    `json:"household_size"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Street != nil {
		user.Street = *input.Street
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.State != nil {
		user.State = *input.State
	}
	if input.Pincode != nil {
		user.Pincode = *input.Pincode
	}
	if input.HouseholdSize != nil && *input.HouseholdSize >= 1 {
		user.HouseholdSize = *input.HouseholdSize
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", user)
}
