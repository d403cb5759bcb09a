package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// Login admin -> return JWT
func (ac *AdminController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var admin models.Admin
	if err := ac.DB.Where("email = ?", input.Email).First(&admin).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(admin.ID, models.RecipientAdmin)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  models.RecipientAdmin,
	})
}

// GetDashboardStats mengambil statistik untuk dashboard admin
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalUsers       int64   `json:"total_users"`
		TotalChefs       int64   `json:"total_chefs"`
		AvailableChefs   int64   `json:"available_chefs"`
		TotalOrders      int64   `json:"total_orders"`
		TodayOrders      int64   `json:"today_orders"`
		TotalRevenue     float64 `json:"total_revenue"`
		TodayRevenue     float64 `json:"today_revenue"`
		AssignmentStats  struct {
			Active    int64 `json:"active"`
			Suspended int64 `json:"suspended"`
			Completed int64 `json:"completed"`
		} `json:"assignment_stats"`
		OrderStats struct {
			New       int64 `json:"new"`
			Confirmed int64 `json:"confirmed"`
			Preparing int64 `json:"preparing"`
			OnTheWay  int64 `json:"on_the_way"`
			Delivered int64 `json:"delivered"`
			Cancelled int64 `json:"cancelled"`
		} `json:"order_stats"`
	}

	ac.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	ac.DB.Model(&models.Chef{}).Count(&stats.TotalChefs)
	ac.DB.Model(&models.Chef{}).Where("is_available = ?", true).Count(&stats.AvailableChefs)

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)

	ac.DB.Model(&models.Assignment{}).Where("status = ?", models.AssignmentStatusActive).Count(&stats.AssignmentStats.Active)
	ac.DB.Model(&models.Assignment{}).Where("status = ?", models.AssignmentStatusSuspended).Count(&stats.AssignmentStats.Suspended)
	ac.DB.Model(&models.Assignment{}).Where("status = ?", models.AssignmentStatusCompleted).Count(&stats.AssignmentStats.Completed)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusNew).Count(&stats.OrderStats.New)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusConfirmed).Count(&stats.OrderStats.Confirmed)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPreparing).Count(&stats.OrderStats.Preparing)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusOnTheWay).Count(&stats.OrderStats.OnTheWay)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&stats.OrderStats.Delivered)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).Count(&stats.OrderStats.Cancelled)

	ac.DB.Model(&models.Payment{}).Where("status = ?", "success").
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Payment{}).
		Where("status = ? AND DATE(created_at) = ?", "success", today).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&stats.TodayRevenue)

	utils.RespondJSON(c, http.StatusOK, "Dashboard statistics", stats)
}

// Search -> cari user/chef by nama/email, dengan pagination
func (ac *AdminController) Search(c *gin.Context) {
	entity := c.DefaultQuery("entity", "users")
	q := c.Query("q")
	status := c.Query("status")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	like := "%" + q + "%"

	switch entity {
	case "users":
		query := ac.DB.Model(&models.User{})
		if q != "" {
			query = query.Where("name LIKE ? OR email LIKE ?", like, like)
		}
		if status != "" {
			query = query.Where("account_status = ?", status)
		}

		var total int64
		query.Count(&total)

		var users []models.User
		if err := query.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Search results", gin.H{
			"total":   total,
			"page":    page,
			"results": users,
		})

	case "chefs":
		query := ac.DB.Model(&models.Chef{})
		if q != "" {
			query = query.Where("name LIKE ? OR email LIKE ?", like, like)
		}
		if cuisine := c.Query("cuisine"); cuisine != "" {
			query = query.Where("cuisine_specialty LIKE ?", "%"+cuisine+"%")
		}
		if status != "" {
			query = query.Where("account_status = ?", status)
		}

		var total int64
		query.Count(&total)

		var chefs []models.Chef
		if err := query.Limit(limit).Offset(offset).Find(&chefs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Search results", gin.H{
			"total":   total,
			"page":    page,
			"results": chefs,
		})

	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("entity must be users or chefs"))
	}
}

// UpdateAccountStatus -> admin suspend/aktifkan akun user atau chef
func (ac *AdminController) UpdateAccountStatus(c *gin.Context) {
	var body struct {
		Entity string `json:"entity" binding:"required,oneof=user chef"`
		ID     uint   `json:"id" binding:"required"`
		Status string `json:"status" binding:"required,oneof=active suspended"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var err error
	switch body.Entity {
	case "user":
		err = ac.DB.Model(&models.User{}).Where("id = ?", body.ID).
			Update("account_status", body.Status).Error
	case "chef":
		err = ac.DB.Model(&models.Chef{}).Where("id = ?", body.ID).
			Update("account_status", body.Status).Error
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Account status of %s %d set to %s", body.Entity, body.ID, body.Status)

	utils.RespondJSON(c, http.StatusOK, "Account status updated", gin.H{
		"entity": body.Entity,
		"id":     body.ID,
		"status": body.Status,
	})
}
