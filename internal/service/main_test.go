package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"silabo_backend/internal/config"
	"silabo_backend/pkg/database"
	"silabo_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

var testDBSeq int64

// newTestDB 每次调用一个独立的内存库。
// cache=shared 让连接池共享同一个库，序号保证同一测试内两次调用互不串库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := &config.StorageConfig{
		Type:             "local",
		LocalPath:        t.TempDir(),
		BucketSilabos:    "silabos",
		BucketDocumentos: "documentos",
	}
	return &StorageService{
		Provider: &LocalStorageProvider{Config: cfg},
		Silabos:  cfg.BucketSilabos,
		Docs:     cfg.BucketDocumentos,
	}
}

// newFakeAI 用 httptest 假服务器顶替上游模型端点
func newFakeAI(t *testing.T, handler http.HandlerFunc) *AIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &AIService{
		BaseURL: srv.URL,
		APIKey:  "sk-test-0123456789",
		Model:   "deepseek-chat",
		Timeout: 2 * time.Second,
		Client:  srv.Client(),
	}
}

func chatReply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		writeJSON(w, body)
	}
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func jsonDecode(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}
