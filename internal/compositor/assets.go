package compositor

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/sourcegraph/conc/pool"
	xdraw "golang.org/x/image/draw"

	"github.com/pcist/pcist-backend/internal/config"
	ierr "github.com/pcist/pcist-backend/internal/errors"
)

// logoSizePx is the fixed square size every logo is normalized to. Fixing
// both the pixel size and the PNG compression level keeps the embedded
// bytes identical across environments with different default codecs.
const logoSizePx = 240

// LogoSet holds the two normalized corner logos as PNG bytes.
type LogoSet struct {
	Left  []byte
	Right []byte
}

// AssetNormalizer loads the organization logos and normalizes them to a
// fixed size on a transparent background. Assets never change at runtime,
// so the normalized set is computed once and cached.
type AssetNormalizer struct {
	cfg config.CompositorConfig

	once sync.Once
	set  *LogoSet
	err  error
}

func NewAssetNormalizer(cfg config.CompositorConfig) *AssetNormalizer {
	return &AssetNormalizer{cfg: cfg}
}

// Logos returns the normalized logo set, loading it on first use. A
// missing or unreadable asset is fatal; there is no placeholder fallback.
func (n *AssetNormalizer) Logos() (*LogoSet, error) {
	n.once.Do(func() {
		var left, right []byte
		p := pool.New().WithErrors()
		p.Go(func() error {
			var err error
			left, err = n.normalize(filepath.Join(n.cfg.AssetsDir, n.cfg.LeftLogoFile))
			return err
		})
		p.Go(func() error {
			var err error
			right, err = n.normalize(filepath.Join(n.cfg.AssetsDir, n.cfg.RightLogoFile))
			return err
		})
		if err := p.Wait(); err != nil {
			n.err = err
			return
		}
		n.set = &LogoSet{Left: left, Right: right}
	})
	return n.set, n.err
}

func (n *AssetNormalizer) normalize(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to read logo asset").
			WithHint("logo asset missing or unreadable").
			Mark(ierr.ErrAsset)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to decode logo asset").
			Mark(ierr.ErrAsset)
	}

	dst := image.NewRGBA(image.Rect(0, 0, logoSizePx, logoSizePx))
	xdraw.CatmullRom.Scale(dst, fitRect(src.Bounds(), logoSizePx), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, dst); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to encode normalized logo").
			Mark(ierr.ErrAsset)
	}
	return buf.Bytes(), nil
}

// fitRect centers the source aspect ratio inside a size x size square,
// leaving transparent padding on the short axis.
func fitRect(src image.Rectangle, size int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 {
		return image.Rect(0, 0, size, size)
	}
	if sw >= sh {
		h := size * sh / sw
		off := (size - h) / 2
		return image.Rect(0, off, size, off+h)
	}
	w := size * sw / sh
	off := (size - w) / 2
	return image.Rect(off, 0, off+w, size)
}
