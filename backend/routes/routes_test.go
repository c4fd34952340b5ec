package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"examhub/backend/config"
	"examhub/backend/models"
)

var routesDBCounter int

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	routesDBCounter++
	dsn := fmt.Sprintf("file:routestest%d?mode=memory&cache=shared", routesDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Teacher{},
		&models.Class{},
		&models.Subject{},
		&models.Exam{},
		&models.Question{},
		&models.Submission{},
		&models.Result{},
	))

	cfg := &config.Config{
		JWTSecret:         "testsecret",
		JWTRefreshSecret:  "testrefreshsecret",
		JWTExpiresIn:      time.Hour,
		JWTRefreshExpires: 24 * time.Hour,
		BcryptCost:        4,
	}

	app := fiber.New()
	SetupRoutes(app, db, cfg, log.New(io.Discard, "", 0))
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	status, _ := doJSON(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":       email,
		"password":    "password123",
		"firstName":   "Test",
		"lastName":    "User",
		"role":        role,
		"parentEmail": "parent@example.com",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	return data["accessToken"].(string)
}

func TestHealth(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	app, _ := setupTestApp(t)

	// duplicate registration is a conflict
	status, _ := doJSON(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":     "dup@example.com",
		"password":  "password123",
		"firstName": "Dup",
		"lastName":  "User",
		"role":      "teacher",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":     "dup@example.com",
		"password":  "password123",
		"firstName": "Dup",
		"lastName":  "User",
		"role":      "teacher",
	})
	assert.Equal(t, fiber.StatusConflict, status)

	// bad password
	status, _ = doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "dup@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// protected route without a token
	status, _ = doJSON(t, app, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	token := registerAndLogin(t, app, "me@example.com", "teacher")
	status, body := doJSON(t, app, "GET", "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "me@example.com", data["email"])
}

func TestExamSubmissionFlow(t *testing.T) {
	app, db := setupTestApp(t)

	teacherToken := registerAndLogin(t, app, "teacher@example.com", "teacher")
	studentToken := registerAndLogin(t, app, "student@example.com", "student")

	var teacher models.Teacher
	require.NoError(t, db.First(&teacher).Error)

	start := time.Now().Add(-time.Hour).Format(time.RFC3339)
	end := time.Now().Add(time.Hour).Format(time.RFC3339)

	// teacher creates an exam with one multiple choice question
	status, body := doJSON(t, app, "POST", "/api/exams", teacherToken, map[string]interface{}{
		"formData": map[string]interface{}{
			"title":     "HTTP Midterm",
			"examType":  "regular",
			"duration":  60,
			"startDate": start,
			"endDate":   end,
			"authorId":  teacher.ID,
		},
		"questions": []map[string]interface{}{
			{
				"question":       "Pick B",
				"type":           "multiple_choice",
				"option_a":       "one",
				"option_b":       "two",
				"option_c":       "three",
				"option_d":       "four",
				"correct_answer": "B",
				"point":          10,
			},
		},
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	examData := body["data"].(map[string]interface{})
	examID := examData["id"].(string)

	// students cannot submit to a draft exam
	var question models.Question
	require.NoError(t, db.First(&question, "exam_id = ?", examID).Error)

	status, _ = doJSON(t, app, "POST", "/api/submissions", studentToken, map[string]interface{}{
		"examId":  examID,
		"answers": map[string]string{question.ID: "B"},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// publish, then submit
	status, _ = doJSON(t, app, "PATCH", "/api/exams/"+examID+"/status", teacherToken, map[string]string{
		"status": "published",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, body = doJSON(t, app, "POST", "/api/submissions", studentToken, map[string]interface{}{
		"examId":  examID,
		"answers": map[string]string{question.ID: "B"},
	})
	require.Equal(t, fiber.StatusCreated, status, "body: %v", body)

	// a second attempt conflicts
	status, _ = doJSON(t, app, "POST", "/api/submissions", studentToken, map[string]interface{}{
		"examId":  examID,
		"answers": map[string]string{question.ID: "A"},
	})
	assert.Equal(t, fiber.StatusConflict, status)

	// the fully auto-gradable submission produced a result
	var result models.Result
	require.NoError(t, db.First(&result, "exam_id = ?", examID).Error)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 100.0, result.Percentage)
	assert.Equal(t, "A+", result.Grade)

	// teachers cannot submit
	status, _ = doJSON(t, app, "POST", "/api/submissions", teacherToken, map[string]interface{}{
		"examId":  examID,
		"answers": map[string]string{},
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	// invalid lifecycle move is rejected with both ends named
	status, body = doJSON(t, app, "PATCH", "/api/exams/"+examID+"/status", teacherToken, map[string]string{
		"status": "completed",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["message"], "Cannot change status from published to completed")
}
