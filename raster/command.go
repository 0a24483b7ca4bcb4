package raster

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
)

// RenderTool identifies the external program used to render PDF pages.
type RenderTool string

const (
	// ToolPdftoppm renders via poppler-utils.
	ToolPdftoppm RenderTool = "pdftoppm"
	// ToolMutool renders via mupdf-tools.
	ToolMutool RenderTool = "mutool"
	// ToolImageMagick renders via ImageMagick.
	ToolImageMagick RenderTool = "imagemagick"
)

// Driver renders one PDF page to a PNG file. Implementations shell out to a
// render tool; a fake Driver stands in for tests.
type Driver interface {
	// Available reports whether the underlying tool can be executed.
	Available() bool
	// RenderPage renders the 1-based page of pdfPath at the given DPI into
	// outDir and returns the path of the produced PNG.
	RenderPage(ctx context.Context, pdfPath string, page, dpi int, outDir string) (string, error)
}

type execDriver struct {
	tool RenderTool
	path string
}

// NewDriver builds a Driver for the named tool. An empty toolPath uses the
// conventional binary name for the current platform.
func NewDriver(tool RenderTool, toolPath string) Driver {
	if toolPath == "" {
		toolPath = defaultToolPath(tool)
	}
	return &execDriver{tool: tool, path: toolPath}
}

func defaultToolPath(tool RenderTool) string {
	switch tool {
	case ToolPdftoppm:
		return "pdftoppm"
	case ToolMutool:
		return "mutool"
	case ToolImageMagick:
		// ImageMagick 7 installs "magick"; Linux distributions commonly still
		// ship the v6 "convert" entry point.
		if runtime.GOOS == "linux" {
			return "convert"
		}
		return "magick"
	default:
		return string(tool)
	}
}

func (d *execDriver) Available() bool {
	_, err := exec.LookPath(d.path)
	return err == nil
}

func (d *execDriver) RenderPage(ctx context.Context, pdfPath string, page, dpi int, outDir string) (string, error) {
	var args []string
	switch d.tool {
	case ToolPdftoppm:
		args = []string{
			"-png",
			"-r", strconv.Itoa(dpi),
			"-f", strconv.Itoa(page),
			"-l", strconv.Itoa(page),
			pdfPath,
			filepath.Join(outDir, "page"),
		}
	case ToolMutool:
		args = []string{
			"convert",
			"-F", "png",
			"-O", fmt.Sprintf("resolution=%d", dpi),
			"-o", filepath.Join(outDir, "page-%d.png"),
			pdfPath,
			strconv.Itoa(page),
		}
	case ToolImageMagick:
		// ImageMagick addresses pages 0-based.
		args = []string{
			"-density", strconv.Itoa(dpi),
			fmt.Sprintf("%s[%d]", pdfPath, page-1),
			filepath.Join(outDir, "page.png"),
		}
	default:
		return "", fmt.Errorf("unsupported render tool: %s", d.tool)
	}

	cmd := exec.CommandContext(ctx, d.path, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s failed: %w, output: %s", d.tool, err, output)
	}
	return singlePNG(outDir)
}

// singlePNG locates the one PNG a per-page render drops into its scratch
// directory. Tools differ in how they suffix output names (pdftoppm
// zero-pads page numbers by document size), so globbing beats reconstructing
// the name.
func singlePNG(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("expected one rendered page in %s, found %d", dir, len(matches))
	}
	return matches[0], nil
}
