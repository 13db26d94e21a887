package gochart

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// faceKey identifies a rendered face by family, pixel size and weight.
type faceKey struct {
	family string
	size   float64
	bold   bool
}

// sansFamilies is the search order for chart text, matching the families
// plotting libraries usually ship or find on the host.
var sansFamilies = []string{"dejavu sans", "liberation sans", "arial", "helvetica", "noto sans", "freesans"}

// FontCache loads TrueType and OpenType fonts from the system font
// directories plus any extra directories, and caches parsed fonts and
// sized faces. It is safe for concurrent use.
type FontCache struct {
	mu      sync.RWMutex
	dirs    []string
	fonts   map[string]*opentype.Font // lowercase family or file name -> font
	faces   map[faceKey]font.Face
	scanned bool
}

// NewFontCache creates a FontCache that searches the given directories
// plus the OS default font directories.
func NewFontCache(extraDirs ...string) *FontCache {
	dirs := append(systemFontDirs(), extraDirs...)
	return &FontCache{
		dirs:  dirs,
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Face returns a sans-serif face of the given pixel size. When no font file
// can be found it falls back to the built-in 7x13 bitmap face.
func (fc *FontCache) Face(sizePx float64, bold bool) font.Face {
	for _, family := range sansFamilies {
		if face := fc.GetFace(family, sizePx, bold); face != nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// GetFace returns a face for the named family, or nil if it is not loaded.
func (fc *FontCache) GetFace(family string, sizePx float64, bold bool) font.Face {
	fc.ensureScanned()

	key := faceKey{family: strings.ToLower(family), size: sizePx, bold: bold}
	fc.mu.RLock()
	if face, ok := fc.faces[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	fc.mu.RUnlock()

	f := fc.findFont(key.family, bold)
	if f == nil {
		return nil
	}
	// DPI 72 makes Size a pixel size.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil
	}

	fc.mu.Lock()
	fc.faces[key] = face
	fc.mu.Unlock()
	return face
}

// findFont looks up a parsed font, preferring a bold variant when asked.
func (fc *FontCache) findFont(family string, bold bool) *opentype.Font {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	if bold {
		for _, suffix := range []string{" bold", "-bold", "bd", "b"} {
			if f, ok := fc.fonts[family+suffix]; ok {
				return f
			}
		}
	}
	return fc.fonts[family]
}

// LoadFont loads a font file and registers it under the given name.
// Returns an error if the file exceeds maxFontFileSize.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	fc.mu.Lock()
	fc.fonts[strings.ToLower(name)] = f
	fc.registerByFamilyName(f)
	fc.mu.Unlock()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true
	for _, dir := range fc.dirs {
		fc.scanDir(dir, 0)
	}
}

// maxFontScanDepth limits recursive directory traversal when scanning for fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

func (fc *FontCache) scanDir(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		ext := filepath.Ext(lower)
		if ext != ".ttf" && ext != ".otf" && ext != ".ttc" {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		base := strings.TrimSuffix(lower, ext)
		if ext == ".ttc" {
			fc.loadCollection(data, base)
			continue
		}
		if f, err := opentype.Parse(data); err == nil {
			fc.fonts[base] = f
			fc.registerByFamilyName(f)
		}
	}
}

// loadCollection registers every font of a TTC file by family name and the
// first one also by file name.
func (fc *FontCache) loadCollection(data []byte, base string) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return
	}
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		if i == 0 {
			fc.fonts[base] = f
		}
		fc.registerByFamilyName(f)
	}
}

// registerByFamilyName registers f under its family and full names. Callers
// hold the write lock.
func (fc *FontCache) registerByFamilyName(f *opentype.Font) {
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil && family != "" {
		if _, taken := fc.fonts[strings.ToLower(family)]; !taken {
			fc.fonts[strings.ToLower(family)] = f
		}
	}
	if full, err := f.Name(nil, sfnt.NameIDFull); err == nil && full != "" {
		fc.fonts[strings.ToLower(full)] = f
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs := []string{filepath.Join(windir, "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
