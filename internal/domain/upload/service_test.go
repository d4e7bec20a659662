// internal/domain/upload/service_test.go
package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedExtension(t *testing.T) {
	allowed := []string{"jpg", "jpeg", "png", "webp"}

	assert.True(t, IsAllowedExtension("jpg", allowed))
	assert.True(t, IsAllowedExtension("PNG", allowed))
	assert.False(t, IsAllowedExtension("exe", allowed))
	assert.False(t, IsAllowedExtension("", allowed))
	assert.False(t, IsAllowedExtension("jpg", nil))
}

func TestMimeTypeForExtension(t *testing.T) {
	assert.Equal(t, "image/jpeg", mimeTypeForExtension("photo.jpg"))
	assert.Equal(t, "image/jpeg", mimeTypeForExtension("photo.JPEG"))
	assert.Equal(t, "image/png", mimeTypeForExtension("logo.png"))
	assert.Equal(t, "image/webp", mimeTypeForExtension("banner.webp"))
	assert.Equal(t, "application/octet-stream", mimeTypeForExtension("file.bin"))
	assert.Equal(t, "application/octet-stream", mimeTypeForExtension("noext"))
}
