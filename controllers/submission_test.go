package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"layananwarga-backend/models"
	"layananwarga-backend/routes"
	"layananwarga-backend/services"
	"layananwarga-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubSender struct {
	result services.SendResult
}

func (s *stubSender) Send(ctx context.Context, to, body string) services.SendResult {
	return s.result
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Submission{},
		&models.NotificationLog{},
	))
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	return routes.SetupRouter(db, &stubSender{result: services.SendResult{Success: true}})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func budiPayload() map[string]interface{} {
	return map[string]interface{}{
		"nama":          "Budi",
		"nik":           "1234567890123456",
		"email":         "budi@x.com",
		"no_wa":         "081234567890",
		"jenis_layanan": "KTP",
		"consent":       true,
	}
}

func TestCreateSubmissionEndToEnd(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/submissions", "", budiPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Regexp(t, `^WS-\d+-[A-Z0-9]{6}$`, body["tracking_code"])

	submission, ok := body["submission"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.StatusPengajuanBaru, submission["status"])
	assert.True(t, strings.HasPrefix(submission["no_wa"].(string), "62"))

	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateSubmissionValidationReportsAllFields(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/submissions", "", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])

	fieldErrors, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"nama", "nik", "email", "no_wa", "jenis_layanan", "consent"} {
		assert.Contains(t, fieldErrors, field)
	}

	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "invalid input must not create a submission")
}

func TestCreateSubmissionInvalidNIK(t *testing.T) {
	r := newTestRouter(t, newTestDB(t))

	payload := budiPayload()
	payload["nik"] = "123"
	w := doJSON(t, r, http.MethodPost, "/submissions", "", payload)

	require.Equal(t, http.StatusBadRequest, w.Code)
	fieldErrors := decodeBody(t, w)["errors"].(map[string]interface{})
	assert.Len(t, fieldErrors, 1)
	assert.Contains(t, fieldErrors, "nik")
}

func TestTrackSubmission(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/submissions", "", budiPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	code := decodeBody(t, w)["tracking_code"].(string)

	w = doJSON(t, r, http.MethodGet, "/submissions/track/"+code, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/submissions/track/WS-0-NOPE00", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSubmissionsRequiresAuth(t *testing.T) {
	r := newTestRouter(t, newTestDB(t))

	w := doJSON(t, r, http.MethodGet, "/submissions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSubmissionsPaginationAndFilters(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	for i := 0; i < 25; i++ {
		payload := budiPayload()
		payload["nama"] = fmt.Sprintf("Warga %02d", i)
		payload["email"] = fmt.Sprintf("warga%02d@x.com", i)
		w := doJSON(t, r, http.MethodPost, "/submissions", "", payload)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	token, err := utils.GenerateToken("admin-id", models.RoleAdmin)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/submissions?page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	assert.Len(t, data, 10)

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["totalPages"])
	assert.Equal(t, float64(25), pagination["totalCount"])
	assert.Equal(t, true, pagination["hasNextPage"])
	assert.Equal(t, false, pagination["hasPrevPage"])

	// Listing rows never expose nik or no_wa
	row := data[0].(map[string]interface{})
	assert.NotContains(t, row, "nik")
	assert.NotContains(t, row, "no_wa")

	// Bogus sort falls back silently
	w = doJSON(t, r, http.MethodGet, "/submissions?sort=bogus_field", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	filters := decodeBody(t, w)["filters"].(map[string]interface{})
	assert.Equal(t, "bogus_field", filters["sort"])
	assert.Equal(t, "DESC", filters["order"])
}

func TestUpdateSubmissionStatusEndpoint(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/submissions", "", budiPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	submission := decodeBody(t, w)["submission"].(map[string]interface{})
	id := submission["id"].(string)

	token, err := utils.GenerateToken("admin-id", models.RoleAdmin)
	require.NoError(t, err)

	w = doJSON(t, r, http.MethodPatch, "/api/submissions/"+id+"/status", token, map[string]interface{}{"status": "DIPROSES"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["submission"].(map[string]interface{})
	assert.Equal(t, models.StatusDiproses, updated["status"])

	// Illegal edge from DIPROSES back to PENGAJUAN_BARU
	w = doJSON(t, r, http.MethodPatch, "/api/submissions/"+id+"/status", token, map[string]interface{}{"status": "PENGAJUAN_BARU"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No token
	w = doJSON(t, r, http.MethodPatch, "/api/submissions/"+id+"/status", "", map[string]interface{}{"status": "SELESAI"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
