package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxAvatarSize bounds the avatar upload.
const MaxAvatarSize = 5 * 1024 * 1024 // 5MB

var avatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Avatar checks the optional registration avatar file. A failure aborts only
// the registration attempt; nothing else depends on it.
func Avatar(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read avatar file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("avatar must be a file")
	}
	if !avatarExts[strings.ToLower(filepath.Ext(path))] {
		return fmt.Errorf("please select a valid image file (JPG, PNG, GIF, WebP)")
	}
	if info.Size() > MaxAvatarSize {
		return fmt.Errorf("file size must be less than 5MB")
	}
	return nil
}
