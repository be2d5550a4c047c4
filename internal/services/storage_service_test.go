package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownsite/server/internal/models"
)

func setupTestStorage(t *testing.T) (*MediaStorageService, string) {
	tempDir, err := os.MkdirTemp("", "crownsite-test-*")
	require.NoError(t, err)

	svc, err := NewMediaStorageService(tempDir, "/media", nil, 50)
	require.NoError(t, err)

	return svc, tempDir
}

func cleanupTestStorage(tempDir string) {
	os.RemoveAll(tempDir)
}

func TestMediaStorageService_Store(t *testing.T) {
	t.Run("stores file in Year/Month folder", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		content := []byte("fake image content")
		storedPath, err := svc.Store(bytes.NewReader(content), "banner.jpg", int64(len(content)))

		require.NoError(t, err)
		now := time.Now().UTC()
		assert.True(t, strings.HasPrefix(storedPath, now.Format("2006/01/")))
		assert.True(t, strings.HasSuffix(storedPath, ".jpg"))

		// Verify file exists
		assert.True(t, svc.Exists(storedPath))
	})

	t.Run("creates unique filename for duplicates", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		content := []byte("content")

		path1, err := svc.Store(bytes.NewReader(content), "duplicate.jpg", int64(len(content)))
		require.NoError(t, err)

		path2, err := svc.Store(bytes.NewReader(content), "duplicate.jpg", int64(len(content)))
		require.NoError(t, err)

		assert.NotEqual(t, path1, path2)
		assert.True(t, svc.Exists(path1))
		assert.True(t, svc.Exists(path2))
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		disallowed := []string{".exe", ".bat", ".sh", ".php"}
		for _, ext := range disallowed {
			_, err := svc.Store(bytes.NewReader([]byte("content")), "file"+ext, 7)
			assert.ErrorIs(t, err, models.ErrInvalidExtension, "extension %s should be rejected", ext)
		}
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		_, err := svc.Store(bytes.NewReader([]byte("content")), "big.jpg", 51*1024*1024)
		assert.ErrorIs(t, err, models.ErrFileTooLarge)
	})

	t.Run("sanitizes path traversal attempts", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		maliciousNames := []string{
			"../../../etc/passwd.jpg",
			"..\\..\\windows\\system32.jpg",
			"/etc/passwd.jpg",
		}

		for _, name := range maliciousNames {
			storedPath, err := svc.Store(bytes.NewReader([]byte("content")), name, 7)

			require.NoError(t, err)
			assert.NotContains(t, storedPath, "..")
			assert.NotContains(t, storedPath, "/etc/")
			assert.NotContains(t, storedPath, "\\windows\\")
		}
	})
}

func TestMediaStorageService_PublicURL(t *testing.T) {
	t.Run("maps stored path under the public base", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		assert.Equal(t, "/media/2026/08/banner.jpg", svc.PublicURL("2026/08/banner.jpg"))
	})

	t.Run("empty path maps to empty URL", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		assert.Equal(t, "", svc.PublicURL(""))
	})
}

func TestMediaStorageService_Delete(t *testing.T) {
	t.Run("deletes existing file", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		storedPath, err := svc.Store(bytes.NewReader([]byte("content")), "delete_me.jpg", 7)
		require.NoError(t, err)
		assert.True(t, svc.Exists(storedPath))

		result := svc.Delete(storedPath)
		assert.True(t, result)
		assert.False(t, svc.Exists(storedPath))
	})

	t.Run("returns false for non-existent file", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		result := svc.Delete("2024/01/nonexistent.jpg")
		assert.False(t, result)
	})
}

func TestMediaStorageService_GetFullPath(t *testing.T) {
	t.Run("returns full path for valid stored path", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		fullPath, err := svc.GetFullPath("2024/03/test.jpg")
		require.NoError(t, err)
		assert.True(t, filepath.HasPrefix(fullPath, tempDir))
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		svc, tempDir := setupTestStorage(t)
		defer cleanupTestStorage(tempDir)

		_, err := svc.GetFullPath("../../../etc/passwd")
		assert.Error(t, err)
	})
}
