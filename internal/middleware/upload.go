package middleware

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/waysgoods/inventory/internal/assets"
	"github.com/waysgoods/inventory/internal/transport"
)

// ContextImage holds the stored filename set by FileIntake for the handler.
const ContextImage = "image"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// FileIntake accepts at most one uploaded image under Field, validates its
// extension and size, stores it under a collision-resistant name and passes
// that name down the chain.
type FileIntake struct {
	Field    string
	Store    assets.Store
	MaxBytes int64
	// Required rejects requests without a file; update routes leave it off.
	Required bool
}

func (f *FileIntake) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		fh, err := c.FormFile(f.Field)
		if err != nil {
			if f.Required {
				return c.JSON(http.StatusBadRequest, transport.Fail("Image is required"))
			}
			return next(c)
		}

		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			return c.JSON(http.StatusBadRequest, transport.Fail("Only PNG or JPG file are allowed"))
		}

		if fh.Size > f.MaxBytes {
			return c.JSON(http.StatusBadRequest, transport.Fail(fmt.Sprintf("Max file size is %dKB", f.MaxBytes/1024)))
		}

		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
		}
		defer src.Close()

		name := storedName(fh.Filename)
		if err := f.Store.Save(c.Request().Context(), name, src); err != nil {
			return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
		}

		c.Set(ContextImage, name)
		return next(c)
	}
}

// storedName derives a collision-resistant filename from the upload time and
// the sanitized original name.
func storedName(original string) string {
	base := filepath.Base(original)
	base = strings.Join(strings.Fields(base), "")
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], base)
}
