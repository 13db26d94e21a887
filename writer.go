package gochart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer is the interface for figure serializers.
type Writer interface {
	Save(path string) error
	WriteTo(w io.Writer) error
}

// Format represents an output format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatEPS  Format = "eps"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatPNG, FormatJPEG, FormatSVG, FormatPDF, FormatEPS, FormatHTML, FormatXLSX}
}

// ParseFormat converts a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	case "pdf":
		return FormatPDF, nil
	case "eps":
		return FormatEPS, nil
	case "html", "htm":
		return FormatHTML, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Ext returns the canonical file extension, without the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// OutputName returns "<stem>_<version>.<ext>", or "<stem>.<ext>" when
// version is not positive. An empty stem uses the kind's file stem.
func OutputName(kind Kind, stem string, version int, f Format) string {
	if stem == "" {
		stem = kind.FileStem()
	}
	if version > 0 {
		return fmt.Sprintf("%s_%d.%s", stem, version, f.Ext())
	}
	return fmt.Sprintf("%s.%s", stem, f.Ext())
}

// NewWriter creates a writer for the given format.
func NewWriter(fig *Figure, format Format, opts *RenderOptions) (Writer, error) {
	if fig == nil {
		return nil, fmt.Errorf("figure is nil")
	}
	switch format {
	case FormatPNG, FormatJPEG:
		o := opts.normalized(fig)
		o.Format = ImageFormatPNG
		if format == FormatJPEG {
			o.Format = ImageFormatJPEG
		}
		return &ImageWriter{figure: fig, opts: o}, nil
	case FormatSVG, FormatPDF, FormatEPS:
		return &VectorWriter{figure: fig, format: format, opts: opts.normalized(fig)}, nil
	case FormatHTML:
		return &HTMLWriter{figure: fig, opts: opts.normalized(fig)}, nil
	case FormatXLSX:
		return &XLSXWriter{figure: fig}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the figure to path, choosing the format by extension. Parent
// directories are created as needed.
func Save(fig *Figure, path string, opts *RenderOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	w, err := NewWriter(fig, format, opts)
	if err != nil {
		return err
	}
	return w.Save(path)
}

// Write serializes the figure in the given format to w.
func Write(w io.Writer, fig *Figure, format Format, opts *RenderOptions) error {
	fw, err := NewWriter(fig, format, opts)
	if err != nil {
		return err
	}
	return fw.WriteTo(w)
}

// saveFile creates path (and its directory) and streams write into it. The
// partial file is removed when writing fails.
func saveFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writeErr := write(f)
	closeErr := f.Close()
	if writeErr != nil {
		os.Remove(path)
		return writeErr
	}
	return closeErr
}

// ImageWriter writes PNG or JPEG images with the built-in rasterizer.
type ImageWriter struct {
	figure *Figure
	opts   *RenderOptions
}

// Save writes the image to a file.
func (w *ImageWriter) Save(path string) error { return saveFile(path, w.WriteTo) }

// WriteTo encodes the image to a writer.
func (w *ImageWriter) WriteTo(out io.Writer) error {
	return w.figure.WriteImage(out, w.opts)
}
