package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/utils"
)

// setupTestDB menggunakan SQLite in-memory untuk testing.
// DSN diberi nama test supaya tiap test mendapat database bersih.
func setupTestDB(t *testing.T) *gorm.DB {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	// AutoMigrate semua model yang diperlukan
	err = db.AutoMigrate(
		&models.User{},
		&models.Chef{},
		&models.Admin{},
		&models.Assignment{},
		&models.Order{},
		&models.Notification{},
		&models.Payment{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

// authAs mensimulasikan AuthMiddleware: set actor_id dan role di context.
func authAs(actorID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor_id", actorID)
		c.Set("role", role)
		c.Next()
	}
}

// performRequest mengirim request JSON ke router dan merekam responsnya.
func performRequest(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		body = bytes.NewBuffer(payloadBytes)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseResponse membongkar envelope {status, message, data}.
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response body %q: %v", w.Body.String(), err)
	}
	return response
}

func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
}

// seedUser membuat user aktif langsung di database.
func seedUser(db *gorm.DB, email string) models.User {
	user := models.User{
		Name:          "Seed User",
		Email:         email,
		Password:      hashPassword("password123"),
		Street:        "12 MG Road",
		City:          "Pune",
		State:         "Maharashtra",
		Pincode:       "411001",
		HouseholdSize: 2,
		AccountStatus: "active",
	}
	if err := db.Create(&user).Error; err != nil {
		panic(err)
	}
	return user
}

// seedChef membuat chef aktif dan available.
func seedChef(db *gorm.DB, email string) models.Chef {
	chef := models.Chef{
		Name:          "Seed Chef",
		Email:         email,
		Password:      hashPassword("password123"),
		IsAvailable:   true,
		AccountStatus: "active",
	}
	if err := db.Create(&chef).Error; err != nil {
		panic(err)
	}
	return chef
}

// seedSubscriptionAssignment membuat assignment subscription aktif
// untuk pasangan user-chef.
func seedSubscriptionAssignment(db *gorm.DB, userID, chefID uint, deliveryDays []string) models.Assignment {
	planType := models.PlanTypeWeekly
	assignment := models.Assignment{
		UserID:         userID,
		ChefID:         chefID,
		AssignmentType: models.AssignmentTypeSubscription,
		Status:         models.AssignmentStatusActive,
		PlanType:       &planType,
		MealsPerWeek:   len(deliveryDays),
		DeliveryDays:   datatypes.NewJSONSlice(deliveryDays),
	}
	if err := db.Create(&assignment).Error; err != nil {
		panic(err)
	}
	return assignment
}
