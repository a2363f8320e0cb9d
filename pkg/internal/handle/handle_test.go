package handle_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/filespad/pkg/configs"
	ctxPkg "github.com/yeisme/filespad/pkg/context"
	"github.com/yeisme/filespad/pkg/crypto"
	"github.com/yeisme/filespad/pkg/internal/model"
	"github.com/yeisme/filespad/pkg/internal/router"
	"github.com/yeisme/filespad/pkg/internal/storage"
	"github.com/yeisme/filespad/pkg/internal/storage/db"
	"github.com/yeisme/filespad/pkg/internal/types"
)

// newTestEngine 组装带内存库的完整路由，复刻 app 的依赖注入中间件.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config failed: %v", err)
	}

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB failed: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&model.Space{}, &model.File{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cipher, err := crypto.New("test-secret")
	if err != nil {
		t.Fatalf("new cipher failed: %v", err)
	}

	mgr := &storage.Manager{DB: &db.Client{DB: gdb}}

	e := gin.New()
	e.Use(func(c *gin.Context) {
		ctx := ctxPkg.WithStorageManager(c.Request.Context(), mgr)
		ctx = ctxPkg.WithCipher(ctx, cipher)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.RegisterAPIRoutes(e)

	return e
}

func doJSON(t *testing.T, e *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body failed: %v", err)
		}

		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q failed: %v", w.Body.String(), err)
	}
}

func uploadFile(t *testing.T, e *gin.Engine, spaceCode, name, duration string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}

	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}

	if err := mw.WriteField("spaceCode", spaceCode); err != nil {
		t.Fatalf("write spaceCode field failed: %v", err)
	}

	if duration != "" {
		if err := mw.WriteField("duration", duration); err != nil {
			t.Fatalf("write duration field failed: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	return w
}

func TestSpaceLifecycle(t *testing.T) {
	e := newTestEngine(t)

	w := doJSON(t, e, http.MethodPost, "/api/spaces/create", gin.H{"code": "TEAM1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: want 201, got %d (%s)", w.Code, w.Body.String())
	}

	var created types.CreateSpaceResponse

	decodeBody(t, w, &created)

	if created.Code != "TEAM1" || created.Message != "Space created successfully" {
		t.Fatalf("create response: %+v", created)
	}

	w = doJSON(t, e, http.MethodPost, "/api/spaces/create", gin.H{"code": "TEAM1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: want 400, got %d", w.Code)
	}

	w = doJSON(t, e, http.MethodPost, "/api/spaces/create", gin.H{"code": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty code create: want 400, got %d", w.Code)
	}

	w = doJSON(t, e, http.MethodPost, "/api/spaces/login", gin.H{"code": "TEAM1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: want 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, e, http.MethodPost, "/api/spaces/login", gin.H{"code": "NOPE"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("login unknown: want 404, got %d", w.Code)
	}
}

func TestLockEndpoints(t *testing.T) {
	e := newTestEngine(t)

	doJSON(t, e, http.MethodPost, "/api/spaces/create", gin.H{"code": "TEAM1"})

	w := doJSON(t, e, http.MethodPost, "/api/spaces/enable-lock", gin.H{"code": "TEAM1", "lockCode": "1234"})
	if w.Code != http.StatusOK {
		t.Fatalf("enable lock: want 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, e, http.MethodPost, "/api/spaces/login", gin.H{"code": "TEAM1"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("login locked: want 403, got %d", w.Code)
	}

	var locked struct {
		Message  string `json:"message"`
		IsLocked bool   `json:"isLocked"`
	}

	decodeBody(t, w, &locked)

	if locked.Message != "Space is locked" || !locked.IsLocked {
		t.Fatalf("locked response: %+v", locked)
	}

	w = doJSON(t, e, http.MethodPost, "/api/spaces/login", gin.H{"code": "TEAM1", "lockCode": "9999"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong lock code: want 401, got %d", w.Code)
	}

	w = doJSON(t, e, http.MethodPost, "/api/spaces/login", gin.H{"code": "TEAM1", "lockCode": "1234"})
	if w.Code != http.StatusOK {
		t.Fatalf("login with lock code: want 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestTextPadEndpoints(t *testing.T) {
	e := newTestEngine(t)

	doJSON(t, e, http.MethodPost, "/api/spaces/create", gin.H{"code": "TEAM1"})

	w := doJSON(t, e, http.MethodPut, "/api/spaces/TEAM1/textpad", gin.H{"content": "hello pad"})
	if w.Code != http.StatusOK {
		t.Fatalf("update textpad: want 200, got %d (%s)", w.Code, w.Body.String())
	}

	var updated types.UpdateTextPadResponse

	decodeBody(t, w, &updated)

	if updated.Message != "TextPad updated" || updated.Content != "hello pad" {
		t.Fatalf("update response: %+v", updated)
	}

	w = doJSON(t, e, http.MethodGet, "/api/spaces/TEAM1/textpad", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get textpad: want 200, got %d", w.Code)
	}

	var pad types.TextPadResponse

	decodeBody(t, w, &pad)

	if pad.Content != "hello pad" {
		t.Fatalf("textpad content: want %q, got %q", "hello pad", pad.Content)
	}

	w = doJSON(t, e, http.MethodGet, "/api/spaces/NOPE/textpad", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("textpad unknown space: want 404, got %d", w.Code)
	}
}

func TestFileEndpoints(t *testing.T) {
	e := newTestEngine(t)

	doJSON(t, e, http.MethodPost, "/api/spaces/create", gin.H{"code": "TEAM1"})

	payload := []byte("%PDF-1.4 fake body")

	w := uploadFile(t, e, "TEAM1", "notes.pdf", "1", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: want 201, got %d (%s)", w.Code, w.Body.String())
	}

	var uploaded types.UploadFileResponse

	decodeBody(t, w, &uploaded)

	if uploaded.Message != "File uploaded" || uploaded.File.OriginalName != "notes.pdf" {
		t.Fatalf("upload response: %+v", uploaded)
	}

	if !strings.HasPrefix(uploaded.QRCode, "data:image/png;base64,") {
		t.Fatal("upload response missing qr data url")
	}

	w = doJSON(t, e, http.MethodGet, "/api/files/TEAM1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: want 200, got %d (%s)", w.Code, w.Body.String())
	}

	var metas []types.FileMeta

	decodeBody(t, w, &metas)

	if len(metas) != 1 || metas[0].OriginalName != "notes.pdf" || metas[0].DownloadURL == "" {
		t.Fatalf("list response: %+v", metas)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/files/download/"+uploaded.File.ID, nil)
	dl := httptest.NewRecorder()
	e.ServeHTTP(dl, req)

	if dl.Code != http.StatusOK {
		t.Fatalf("download: want 200, got %d (%s)", dl.Code, dl.Body.String())
	}

	if !bytes.Equal(dl.Body.Bytes(), payload) {
		t.Fatal("downloaded bytes differ from upload")
	}

	if ct := dl.Header().Get("Content-Type"); !strings.Contains(ct, "application/") {
		t.Fatalf("download content type: %q", ct)
	}

	if cd := dl.Header().Get("Content-Disposition"); !strings.Contains(cd, "notes.pdf") {
		t.Fatalf("content disposition: %q", cd)
	}

	w = doJSON(t, e, http.MethodDelete, "/api/files/"+uploaded.File.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete file: want 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, e, http.MethodGet, "/api/files/download/"+uploaded.File.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("download deleted file: want 404, got %d", w.Code)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	e := newTestEngine(t)

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("spaceCode", "TEAM1"); err != nil {
		t.Fatalf("write field failed: %v", err)
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("upload without file: want 400, got %d", w.Code)
	}

	var msg types.MessageResponse

	decodeBody(t, w, &msg)

	if msg.Message != "No file uploaded" {
		t.Fatalf("message: want %q, got %q", "No file uploaded", msg.Message)
	}
}

func TestDeleteSpaceEndpoint(t *testing.T) {
	e := newTestEngine(t)

	doJSON(t, e, http.MethodPost, "/api/spaces/create", gin.H{"code": "TEAM1"})
	uploadFile(t, e, "TEAM1", "a.txt", "", []byte("x"))

	w := doJSON(t, e, http.MethodDelete, "/api/spaces/TEAM1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete space: want 200, got %d (%s)", w.Code, w.Body.String())
	}

	var msg types.MessageResponse

	decodeBody(t, w, &msg)

	if msg.Message != "Space and all data deleted successfully" {
		t.Fatalf("message: %q", msg.Message)
	}

	w = doJSON(t, e, http.MethodGet, "/api/files/TEAM1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list after delete: want 200, got %d", w.Code)
	}

	var metas []types.FileMeta

	decodeBody(t, w, &metas)

	if len(metas) != 0 {
		t.Fatalf("files after space delete: %+v", metas)
	}
}
