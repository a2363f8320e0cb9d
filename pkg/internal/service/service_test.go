package service_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/filespad/pkg/configs"
	ctxPkg "github.com/yeisme/filespad/pkg/context"
	"github.com/yeisme/filespad/pkg/crypto"
	"github.com/yeisme/filespad/pkg/internal/model"
	"github.com/yeisme/filespad/pkg/internal/storage"
	"github.com/yeisme/filespad/pkg/internal/storage/db"
)

// newTestContext 构造带内存 SQLite 与测试密钥的 context，供各 service 测试复用.
func newTestContext(t *testing.T) context.Context {
	t.Helper()

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config failed: %v", err)
	}

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}

	// 内存库在多连接下各自为政，收敛到单连接
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

	ctx := ctxPkg.WithStorageManager(context.Background(), mgr)
	ctx = ctxPkg.WithCipher(ctx, cipher)

	return ctx
}

// newTestDB 取出 context 里的 GORM 实例，供测试直接改表.
func newTestDB(t *testing.T, ctx context.Context) *gorm.DB {
	t.Helper()

	client := ctxPkg.GetDBClient(ctx)
	if client == nil {
		t.Fatal("no db client in context")
	}

	return client.DB
}
