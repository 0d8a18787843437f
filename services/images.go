package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foodgram/backend/errs"
	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveRecipeImage decodes a base64 data URI ("data:image/png;base64,....")
// and writes it under mediaRoot/recipes. It returns the stored path relative
// to mediaRoot, which is what gets persisted on the recipe.
func SaveRecipeImage(mediaRoot, dataURI string) (string, error) {
	if dataURI == "" {
		return "", errs.NewValidationError("image", "image must not be empty")
	}

	mediaType, encoded, ok := splitDataURI(dataURI)
	if !ok {
		return "", errs.NewValidationError("image", "image must be a base64 data URI")
	}

	ext, ok := imageExtensions[mediaType]
	if !ok {
		return "", errs.NewValidationError("image", fmt.Sprintf("unsupported image type %q", mediaType))
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errs.NewValidationError("image", "image is not valid base64")
	}

	dir := filepath.Join(mediaRoot, "recipes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return filepath.ToSlash(filepath.Join("recipes", name)), nil
}

func splitDataURI(dataURI string) (mediaType, encoded string, ok bool) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", "", false
	}
	meta, encoded, found := strings.Cut(strings.TrimPrefix(dataURI, "data:"), ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", "", false
	}
	return strings.TrimSuffix(meta, ";base64"), encoded, true
}
