package service_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yeisme/filespad/pkg/internal/model"
	"github.com/yeisme/filespad/pkg/internal/service"
)

func TestFileUploadDefaults(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	before := time.Now()

	resp, err := fs.Upload(ctx, "TEAM1", []byte("hello"), "notes.pdf", "application/pdf", "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if resp.Message != "File uploaded" {
		t.Fatalf("message: want %q, got %q", "File uploaded", resp.Message)
	}

	if resp.File.OriginalName != "notes.pdf" {
		t.Fatalf("original name: want notes.pdf, got %q", resp.File.OriginalName)
	}

	if !strings.HasSuffix(resp.File.FileName, "-notes.pdf") {
		t.Fatalf("virtual name missing timestamp prefix: %q", resp.File.FileName)
	}

	// duration 省略时默认保留 1 天
	wantExpiry := before.Add(24 * time.Hour)
	if d := resp.File.ExpiresAt.Sub(wantExpiry); d < -time.Minute || d > time.Minute {
		t.Fatalf("default expiry: want ~%v, got %v", wantExpiry, resp.File.ExpiresAt)
	}

	if !strings.Contains(resp.Link, "/api/files/download/"+resp.File.ID) {
		t.Fatalf("download link malformed: %q", resp.Link)
	}

	if !strings.HasPrefix(resp.QRCode, "data:image/png;base64,") {
		t.Fatalf("qr code is not an inline png data url: %q", resp.QRCode[:32])
	}
}

func TestFileUploadDuration(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	cases := []struct {
		duration string
		wantDays float64
	}{
		{"2", 2},
		{"0.5", 0.5},
		{"abc", 1},
		{"-3", 1},
		{"0", 1},
		{"9999", 30}, // 收敛到上限
	}

	for _, tc := range cases {
		before := time.Now()

		resp, err := fs.Upload(ctx, "TEAM1", []byte("x"), "f.bin", "application/octet-stream", tc.duration)
		if err != nil {
			t.Fatalf("upload duration=%q failed: %v", tc.duration, err)
		}

		want := before.Add(time.Duration(tc.wantDays * 24 * float64(time.Hour)))
		if d := resp.File.ExpiresAt.Sub(want); d < -time.Minute || d > time.Minute {
			t.Errorf("duration=%q: want expiry ~%v, got %v", tc.duration, want, resp.File.ExpiresAt)
		}
	}
}

func TestFileListAndDownload(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	payload := []byte("%PDF-1.4 fake body")

	resp, err := fs.Upload(ctx, "TEAM1", payload, "notes.pdf", "application/pdf", "1")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	files, err := fs.List(ctx, "TEAM1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("list: want 1 file, got %d", len(files))
	}

	if files[0].OriginalName != "notes.pdf" {
		t.Fatalf("listed original name: want notes.pdf, got %q", files[0].OriginalName)
	}

	if files[0].DownloadURL == "" {
		t.Fatal("listed file has empty download url")
	}

	// 列表不回传文件内容，大小来自落库元数据
	if files[0].Size != int64(len(payload)) {
		t.Fatalf("listed size: want %d, got %d", len(payload), files[0].Size)
	}

	got, err := fs.Download(ctx, resp.File.ID)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}

	if !bytes.Equal(got.Data, payload) {
		t.Fatal("downloaded bytes differ from upload")
	}

	if got.ContentType != "application/pdf" {
		t.Fatalf("content type: want application/pdf, got %q", got.ContentType)
	}

	if got.FileName != "notes.pdf" {
		t.Fatalf("download name: want notes.pdf, got %q", got.FileName)
	}

	// 其他空间看不到这个文件
	other, err := fs.List(ctx, "TEAM2")
	if err != nil {
		t.Fatalf("list other space failed: %v", err)
	}

	if len(other) != 0 {
		t.Fatalf("other space: want 0 files, got %d", len(other))
	}
}

func TestFileDelete(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	resp, err := fs.Upload(ctx, "TEAM1", []byte("x"), "a.txt", "text/plain", "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := fs.Delete(ctx, resp.File.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := fs.Download(ctx, resp.File.ID); !errors.Is(err, service.ErrFileNotFound) {
		t.Fatalf("download deleted file: want ErrFileNotFound, got %v", err)
	}

	if err := fs.Delete(ctx, resp.File.ID); !errors.Is(err, service.ErrFileNotFound) {
		t.Fatalf("delete twice: want ErrFileNotFound, got %v", err)
	}
}

func TestFileLegacyPlaintextNames(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	resp, err := fs.Upload(ctx, "TEAM1", []byte("x"), "enc.txt", "text/plain", "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	// 旧版本落库的明文文件名直接写进表里
	db := newTestDB(t, ctx)
	err = db.Model(&model.File{}).
		Where("id = ?", resp.File.ID).
		Updates(map[string]any{"file_name": "123-plain.txt", "original_name": "plain.txt"}).Error
	if err != nil {
		t.Fatalf("seed legacy row failed: %v", err)
	}

	files, err := fs.List(ctx, "TEAM1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(files) != 1 || files[0].OriginalName != "plain.txt" {
		t.Fatalf("legacy name fallback: got %+v", files)
	}

	got, err := fs.Download(ctx, resp.File.ID)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}

	if got.FileName != "plain.txt" {
		t.Fatalf("legacy download name: want plain.txt, got %q", got.FileName)
	}
}

func TestSweepExpired(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	expired, err := fs.Upload(ctx, "TEAM1", []byte("old"), "old.txt", "text/plain", "1")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	alive, err := fs.Upload(ctx, "TEAM1", []byte("new"), "new.txt", "text/plain", "7")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	// 把第一个文件的过期时间拨到过去
	db := newTestDB(t, ctx)
	err = db.Model(&model.File{}).
		Where("id = ?", expired.File.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error
	if err != nil {
		t.Fatalf("backdate expiry failed: %v", err)
	}

	removed, err := fs.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if removed != 1 {
		t.Fatalf("sweep: want 1 removed, got %d", removed)
	}

	if _, err := fs.Download(ctx, expired.File.ID); !errors.Is(err, service.ErrFileNotFound) {
		t.Fatalf("download swept file: want ErrFileNotFound, got %v", err)
	}

	if _, err := fs.Download(ctx, alive.File.ID); err != nil {
		t.Fatalf("unexpired file must survive sweep: %v", err)
	}

	// 没有到期文件时清理为空操作
	removed, err = fs.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}

	if removed != 0 {
		t.Fatalf("second sweep: want 0 removed, got %d", removed)
	}
}
