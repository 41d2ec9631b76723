package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/waysgoods/inventory/internal/assets"
	"github.com/waysgoods/inventory/internal/models"
	"github.com/waysgoods/inventory/internal/repo"
	"github.com/waysgoods/inventory/internal/service"
	"github.com/waysgoods/inventory/pkg/hash"
	"github.com/waysgoods/inventory/pkg/tokens"
)

type testEnv struct {
	t      *testing.T
	e      *echo.Echo
	db     *gorm.DB
	store  *assets.DiskStore
	dir    string
	secret []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// a pooled second connection would see its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	dir := t.TempDir()
	store := assets.NewDiskStore(dir, "http://localhost:8080/uploads")
	secret := []byte("test-jwt-secret")

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Users: gormRepo, JWTSecret: secret, TokenTTL: time.Hour}
	productSvc := &service.ProductService{Repo: gormRepo, Assets: store}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		ProductHandler: &ProductHTTP{Svc: productSvc, Assets: store},
		JWTSecret:      secret,
		AssetStore:     store,
		UploadDir:      dir,
		UploadMaxBytes: 1 << 20,
		PublicPath:     "/uploads",
	})

	return &testEnv{t: t, e: e, db: db, store: store, dir: dir, secret: secret}
}

func (env *testEnv) createUser(email, password, role string) models.User {
	env.t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(env.t, err)

	user := models.User{
		Email:    email,
		Password: pwHash,
		Fullname: "Test User",
		Gender:   "male",
		Address:  "Jl. Kenangan No. 1",
		Role:     role,
	}
	require.NoError(env.t, env.db.Create(&user).Error)
	return user
}

func (env *testEnv) tokenFor(user models.User) string {
	env.t.Helper()

	token, err := tokens.Sign(user.ID, user.Role, env.secret, time.Hour)
	require.NoError(env.t, err)
	return token
}

func (env *testEnv) createProduct(owner models.User, name, image string, createdAt time.Time) models.Product {
	env.t.Helper()

	prod := models.Product{
		UserID:    owner.ID,
		Name:      name,
		BuyPrice:  100,
		SellPrice: 150,
		Stock:     10,
		Image:     image,
		CreatedAt: createdAt,
	}
	require.NoError(env.t, env.db.Create(&prod).Error)
	return prod
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) jsonRequest(method, path string, body any, token string) *http.Request {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func (env *testEnv) multipartRequest(method, path string, fields map[string]string, fileName string, fileContent []byte, token string) *http.Request {
	env.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(env.t, err)
		_, err = io.Copy(fw, bytes.NewReader(fileContent))
		require.NoError(env.t, err)
	}
	require.NoError(env.t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
