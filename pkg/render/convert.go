package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"

	errs "github.com/matzehuels/seqalign/pkg/errors"
)

// converter is the librsvg command line tool used for PDF and PNG output.
const converter = "rsvg-convert"

// ConverterAvailable reports whether rsvg-convert is on the PATH.
func ConverterAvailable() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

// ToPDF converts an SVG document to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts an SVG document to a PNG on a white background, scaled by
// scale (2 doubles the resolution).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	return convert(svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64), "--background-color", "white")
}

func convert(svg []byte, format string, args ...string) ([]byte, error) {
	if len(bytes.TrimSpace(svg)) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no SVG to convert to %s", format)
	}
	if !ConverterAvailable() {
		return nil, errs.New(errs.ErrCodeUnsupported,
			"%s output needs %s from librsvg (brew install librsvg, apt install librsvg2-bin)", format, converter)
	}

	cmd := exec.Command(converter, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "%s: %s", converter, bytes.TrimSpace(stderr.Bytes()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%s produced no %s output", converter, format)
	}
	return stdout.Bytes(), nil
}
