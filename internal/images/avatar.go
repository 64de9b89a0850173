package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const DefaultSize = 125

// MaxDimension ограничивает сторону исходного изображения: декодер выделяет
// память под заявленный размер, даже если файл маленький
const MaxDimension = 4096

var ErrUnsupportedFormat = errors.New("неподдерживаемый формат изображения")

// Avatars сохраняет загруженные аватары в Dir, уменьшая их до Size×Size
type Avatars struct {
	Dir  string
	Size int
}

func NewAvatars(dir string) *Avatars {
	return &Avatars{Dir: dir, Size: DefaultSize}
}

// Allowed сообщает, можно ли загрузить файл с таким именем
func Allowed(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

// Save декодирует изображение, уменьшает его и записывает под случайным именем
// с исходным расширением. Возвращает новое имя файла.
// Старый аватар пользователя не удаляется.
func (a *Avatars) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !Allowed(filename) {
		return "", ErrUnsupportedFormat
	}

	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return "", fmt.Errorf("%w: размер %dx%d больше допустимого", ErrUnsupportedFormat, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка создания каталога аватаров: %w", err)
	}

	name := randomName() + ext
	f, err := os.Create(filepath.Join(a.Dir, name))
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer f.Close()

	if err := encode(f, ext, Thumbnail(src, a.Size)); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("ошибка сохранения изображения: %w", err)
	}
	return name, nil
}

// Thumbnail уменьшает изображение, чтобы оно поместилось в квадрат size×size,
// сохраняя пропорции. Маленькие изображения не увеличиваются.
func Thumbnail(src image.Image, size int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return src
	}

	nw, nh := size, size
	if w > h {
		nh = max(1, h*size/w)
	} else if h > w {
		nw = max(1, w*size/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// EnsureDefault создаёт аватар по умолчанию, если его ещё нет в каталоге
func (a *Avatars) EnsureDefault(name string) error {
	path := filepath.Join(a.Dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return fmt.Errorf("ошибка создания каталога аватаров: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, a.Size, a.Size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0x5f, G: 0x78, B: 0x8a, A: 0xff}}, image.Point{}, draw.Src)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания аватара по умолчанию: %w", err)
	}
	defer f.Close()
	return encode(f, strings.ToLower(filepath.Ext(name)), img)
}

func encode(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	}
}

func randomName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
