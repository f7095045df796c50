package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/unohub/unohub/internal/config"
	"github.com/unohub/unohub/internal/filestore"
	"github.com/unohub/unohub/internal/handler"
	"github.com/unohub/unohub/internal/middleware"
	"github.com/unohub/unohub/internal/repo"
	"github.com/unohub/unohub/internal/service"
	"github.com/unohub/unohub/test/testutil"
)

type apiResponse struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(db)
	pageRepo := repo.NewPageRepo(db)
	txRepo := repo.NewTransactionRepo(db)
	recurringRepo := repo.NewRecurringRepo(db)
	processedRepo := repo.NewProcessedMonthRepo(db)
	materializeRepo := repo.NewMaterializeRepo(db)
	todoRepo := repo.NewTodoRepo(db)
	eventRepo := repo.NewEventRepo(db)
	habitRepo := repo.NewHabitRepo(db)
	habitLogRepo := repo.NewHabitLogRepo(db)
	dietProfileRepo := repo.NewDietProfileRepo(db)
	dietMealRepo := repo.NewDietMealRepo(db)
	dietWaterRepo := repo.NewDietWaterRepo(db)
	dietFoodRepo := repo.NewDietFoodRepo(db)

	jwtSecret := []byte("test-secret")
	authService := service.NewAuthService(userRepo, jwtSecret, time.Hour)
	pageService := service.NewPageService(pageRepo)
	financeService := service.NewFinanceService(txRepo, recurringRepo, processedRepo, materializeRepo)
	todoService := service.NewTodoService(todoRepo)
	eventService := service.NewEventService(eventRepo)
	habitService := service.NewHabitService(habitRepo, habitLogRepo)
	dietService := service.NewDietService(dietProfileRepo, dietMealRepo, dietWaterRepo, dietFoodRepo)
	exportService := service.NewExportService(pageRepo)

	tmpDir, err := os.MkdirTemp("", "unohub-upload-*")
	require.NoError(t, err)

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": tmpDir},
	})
	require.NoError(t, err)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Pages:     handler.NewPageHandler(pageService),
		Finance:   handler.NewFinanceHandler(financeService),
		Todos:     handler.NewTodoHandler(todoService),
		Events:    handler.NewEventHandler(eventService),
		Habits:    handler.NewHabitHandler(habitService),
		Diet:      handler.NewDietHandler(dietService),
		Export:    handler.NewExportHandler(exportService),
		Files:     handler.NewFileHandler(store, 20*1024*1024),
		JWTSecret: jwtSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, func() {
		cleanup()
		_ = os.RemoveAll(tmpDir)
	}
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var parsed apiResponse
	if resp.Body.Len() > 0 {
		_ = json.Unmarshal(resp.Body.Bytes(), &parsed)
	}
	return resp, parsed
}

// registerUser creates a fresh account and returns its auth token. Tests call
// this once per router; the register route is rate limited per path.
func registerUser(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	resp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}
