package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poly2dev/poly2/internal/codec"
	"github.com/poly2dev/poly2/internal/config"
)

// execute runs the root command in an isolated config directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, filepath.Join(dir, "config"))
	t.Setenv(config.EnvAPIKey, "")
	return dir
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: 90, B: uint8(y * 20), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestTransformLocal(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "in.jpg")
	outPath := filepath.Join(dir, "out.png")
	writeJPEG(t, in, 10, 10)

	out, err := execute(t, "transform", "-i", in, "-o", outPath, "-p", "saturn", "--local")
	if err != nil {
		t.Fatalf("transform: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Local transformation complete!") {
		t.Errorf("missing local status in output:\n%s", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	info, err := codec.GetInfo(data)
	if err != nil {
		t.Fatal(err)
	}
	if info.Format != "png" || info.Width != 10 || info.Height != 10 {
		t.Errorf("unexpected output: %+v", info)
	}
}

func TestTransformUnknownPreset(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "in.jpg")
	writeJPEG(t, in, 2, 2)

	if _, err := execute(t, "transform", "-i", in, "-o", filepath.Join(dir, "a.png"), "-p", "dreamcast", "--lenient=false"); err == nil {
		t.Error("unknown preset accepted without --lenient")
	}
	if out, err := execute(t, "transform", "-i", in, "-o", filepath.Join(dir, "b.png"), "-p", "dreamcast", "--lenient"); err != nil {
		t.Errorf("--lenient transform failed: %v\n%s", err, out)
	}
}

func TestFilterThenEncode(t *testing.T) {
	dir := isolate(t)
	raw := filepath.Join(dir, "in.rgba")
	filtered := filepath.Join(dir, "out.raw")
	pngPath := filepath.Join(dir, "out.png")
	if err := os.WriteFile(raw, []byte{200, 100, 50, 255}, 0644); err != nil {
		t.Fatal(err)
	}

	if out, err := execute(t, "filter", "-i", raw, "-o", filtered, "--width", "1", "--height", "1", "-p", "playstation1"); err != nil {
		t.Fatalf("filter: %v\n%s", err, out)
	}
	got, err := os.ReadFile(filtered)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{249, 124, 62, 255}) {
		t.Errorf("filtered pixel = %v", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.json")); err != nil {
		t.Errorf("sidecar missing: %v", err)
	}

	if out, err := execute(t, "encode", "-i", filtered, "-o", pngPath, "--width", "1", "--height", "1"); err != nil {
		t.Fatalf("encode: %v\n%s", err, out)
	}
	if _, err := execute(t, "encode", "-i", filtered, "-o", pngPath, "--width", "2", "--height", "1"); err == nil {
		t.Error("encode accepted a buffer of the wrong size")
	}
}

func TestKeyLifecycle(t *testing.T) {
	isolate(t)

	out, err := execute(t, "key", "show")
	if err != nil || !strings.Contains(out, "No API key configured") {
		t.Fatalf("key show (empty): %v\n%s", err, out)
	}
	if out, err := execute(t, "key", "set", "abcdefgh1234"); err != nil {
		t.Fatalf("key set: %v\n%s", err, out)
	}
	out, err = execute(t, "key", "show")
	if err != nil || !strings.Contains(out, "1234") || strings.Contains(out, "abcdefgh") {
		t.Errorf("key show did not mask the key: %v\n%s", err, out)
	}
	if out, err := execute(t, "key", "clear"); err != nil {
		t.Fatalf("key clear: %v\n%s", err, out)
	}
	out, _ = execute(t, "key", "show")
	if !strings.Contains(out, "No API key configured") {
		t.Errorf("key still configured after clear:\n%s", out)
	}
}

func TestPresetsList(t *testing.T) {
	out, err := execute(t, "presets", "--prompts=false")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"playstation1", "nintendo64", "saturn", "early3d"} {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %s:\n%s", name, out)
		}
	}
}
