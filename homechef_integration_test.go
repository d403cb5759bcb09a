package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/router"
	"github.com/homechefhq/homechef-api/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama marketplace:
// 0. Seed chef & admin, register user lewat HTTP, login -> token
// 1. Admin membuat assignment subscription user-chef
// 2. Admin generate order subscription untuk 2 minggu
// 3. Cek status subscription
// 4. Pause -> order pending batal, lalu resume -> order baru
// 5. Chef melihat order miliknya
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	userToken := registerAndLoginUser(t, r)
	chefToken := loginTest(t, r, "/chefs/login", "chef@example.com", "secret123")
	adminToken := loginTest(t, r, "/admin/login", "admin@example.com", "secret123")

	assignmentID := createAssignmentTest(t, r, adminToken)
	generateOrdersTest(t, r, adminToken, assignmentID)
	checkStatusTest(t, r, adminToken, assignmentID, 4)
	pauseResumeTest(t, r, adminToken, assignmentID)
	chefSeesOrdersTest(t, r, chefToken)
	userSeesOrdersTest(t, r, userToken)
	logoutTest(t, r, userToken)
}

// setupIntegrationDB -> migrasi model di SQLite in-memory + seed data
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

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
		log.Fatalf("failed to migrate: %v", err)
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.Admin{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
	})
	db.Create(&models.Chef{
		Name:          "Test Chef",
		Email:         "chef@example.com",
		Password:      string(hashedPassword),
		IsAvailable:   true,
		AccountStatus: "active",
	})

	return db
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		buf = bytes.NewBuffer(bodyBytes)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return resp
}

func registerAndLoginUser(t *testing.T, r *gin.Engine) string {
	w := doJSON(r, http.MethodPost, "/users/register", "", map[string]interface{}{
		"name":           "Integration User",
		"email":          "user@example.com",
		"password":       "secret123",
		"street":         "7 Residency Road",
		"city":           "Bangalore",
		"household_size": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register user: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}
	return loginTest(t, r, "/users/login", "user@example.com", "secret123")
}

func loginTest(t *testing.T, r *gin.Engine, path, email, password string) string {
	w := doJSON(r, http.MethodPost, path, "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d, body=%s", path, w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	var data struct {
		Token string `json:"token"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.Token == "" {
		t.Fatalf("login %s: token empty", path)
	}
	return data.Token
}

// createAssignmentTest -> POST /admin/assignments => 201, assignment active
func createAssignmentTest(t *testing.T, r *gin.Engine, adminToken string) uint {
	w := doJSON(r, http.MethodPost, "/admin/assignments", adminToken, map[string]interface{}{
		"user_id":         1,
		"chef_id":         1,
		"assignment_type": "subscription",
		"plan_type":       "weekly",
		"meals_per_week":  2,
		"delivery_days":   []string{"monday", "thursday"},
		"cuisines":        []string{"south-indian"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create assignment: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	var data struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.Status != models.AssignmentStatusActive {
		t.Fatalf("create assignment: expected status active, got %s", data.Status)
	}
	return data.ID
}

// generateOrdersTest -> 2 minggu x (senin, kamis) = 4 order confirmed
func generateOrdersTest(t *testing.T, r *gin.Engine, adminToken string, assignmentID uint) {
	path := fmt.Sprintf("/admin/assignments/%d/generate-orders", assignmentID)
	w := doJSON(r, http.MethodPost, path, adminToken, map[string]string{
		"start_date": "2024-01-01",
		"end_date":   "2024-01-15",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("generate orders: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	var data struct {
		OrdersCreated int `json:"orders_created"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.OrdersCreated != 4 {
		t.Fatalf("generate orders: expected 4 orders, got %d", data.OrdersCreated)
	}
}

func checkStatusTest(t *testing.T, r *gin.Engine, adminToken string, assignmentID uint, wantTotal int64) {
	path := fmt.Sprintf("/admin/assignments/%d/status", assignmentID)
	w := doJSON(r, http.MethodGet, path, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("subscription status: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	var data struct {
		TotalOrders int64 `json:"total_orders"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.TotalOrders != wantTotal {
		t.Fatalf("subscription status: expected %d total orders, got %d", wantTotal, data.TotalOrders)
	}
}

// pauseResumeTest -> pause membatalkan order pending, resume generate lagi
func pauseResumeTest(t *testing.T, r *gin.Engine, adminToken string, assignmentID uint) {
	pausePath := fmt.Sprintf("/admin/assignments/%d/pause", assignmentID)
	w := doJSON(r, http.MethodPatch, pausePath, adminToken, map[string]string{
		"reason": "user travelling",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("pause: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resumePath := fmt.Sprintf("/admin/assignments/%d/resume", assignmentID)
	w = doJSON(r, http.MethodPatch, resumePath, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resume: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	var data struct {
		OrdersGenerated int `json:"orders_generated"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.OrdersGenerated < 1 {
		t.Fatalf("resume: expected fresh orders, got %d", data.OrdersGenerated)
	}
}

func chefSeesOrdersTest(t *testing.T, r *gin.Engine, chefToken string) {
	w := doJSON(r, http.MethodGet, "/orders?status=confirmed", chefToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("chef orders: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	var orders []models.Order
	json.Unmarshal(resp.Data, &orders)
	if len(orders) == 0 {
		t.Fatalf("chef orders: expected at least one confirmed order")
	}
}

// logoutTest -> token masuk blacklist, request berikutnya ditolak
func logoutTest(t *testing.T, r *gin.Engine, userToken string) {
	w := doJSON(r, http.MethodPost, "/logout", userToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/orders", userToken, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token: expected 401, got %d", w.Code)
	}
}

func userSeesOrdersTest(t *testing.T, r *gin.Engine, userToken string) {
	w := doJSON(r, http.MethodGet, "/orders", userToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("user orders: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	var orders []models.Order
	json.Unmarshal(resp.Data, &orders)
	if len(orders) == 0 {
		t.Fatalf("user orders: expected orders from the subscription")
	}
}
