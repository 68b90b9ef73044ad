package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeBlobPNG(t *testing.T, dir string, size int, sigma float64) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, size, size))
	c := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x-c), float64(y-c)
			v := 255 * math.Exp(-(dx*dx+dy*dy)/(2*sigma*sigma))
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(v))})
		}
	}

	path := filepath.Join(dir, "blob.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestParseLevels(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"-1,0,1,2,3,4", []int{-1, 0, 1, 2, 3, 4}, false},
		{" 0, 1 ,2,3 ", []int{0, 1, 2, 3}, false},
		{"0,1,,2", []int{0, 1, 2}, false},
		{"", []int{}, false},
		{"0,one,2", nil, true},
		{"1.5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevels(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevels(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseLevels(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestFormatLevels(t *testing.T) {
	if got := formatLevels([]int{-1, 0, 4}); got != "-1,0,4" {
		t.Errorf("formatLevels: got %q, want %q", got, "-1,0,4")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	imgPath := writeBlobPNG(t, dir, 64, 1.5)
	overlayPath := filepath.Join(dir, "overlay.png")

	var stdout bytes.Buffer
	if err := run([]string{"-overlay", overlayPath, "-scale", "1", imgPath}, &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var doc output
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse output: %v\n%s", err, stdout.String())
	}
	if doc.Width != 64 || doc.Height != 64 {
		t.Errorf("dimensions: got %dx%d, want 64x64", doc.Width, doc.Height)
	}
	if len(doc.DoGLevels) != 5 {
		t.Errorf("dog_levels: got %v, want 5 entries", doc.DoGLevels)
	}

	found := false
	for _, kp := range doc.Keypoints {
		if kp.X == 32 && kp.Y == 32 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a keypoint at the blob center, got %v", doc.Keypoints)
	}

	f, err := os.Open(overlayPath)
	if err != nil {
		t.Fatalf("overlay not written: %v", err)
	}
	defer f.Close()
	ov, err := png.Decode(f)
	if err != nil {
		t.Fatalf("overlay is not a PNG: %v", err)
	}
	if b := ov.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("overlay size: got %dx%d, want 64x64", b.Dx(), b.Dy())
	}
}

func TestRun_OutputFile(t *testing.T) {
	dir := t.TempDir()
	imgPath := writeBlobPNG(t, dir, 32, 2)
	outPath := filepath.Join(dir, "kp.json")

	var stdout bytes.Buffer
	args := []string{"-o", outPath, "-levels", "0,1,2,3", "-contrast", "0.01", imgPath}
	if err := run(args, &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty when -o is set, got %q", stdout.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	var doc output
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, doc.Config.Levels); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}
	if doc.Config.ContrastThreshold != 0.01 {
		t.Errorf("th_contrast: got %v, want 0.01", doc.Config.ContrastThreshold)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	imgPath := writeBlobPNG(t, dir, 16, 2)

	tests := []struct {
		name string
		args []string
	}{
		{"no image", nil},
		{"two images", []string{imgPath, imgPath}},
		{"missing file", []string{filepath.Join(dir, "missing.png")}},
		{"too few levels", []string{"-levels", "-1,0,1", imgPath}},
		{"bad levels", []string{"-levels", "a,b", imgPath}},
		{"non-positive k", []string{"-k", "0", imgPath}},
		{"unknown flag", []string{"-nope", imgPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			if err := run(tt.args, &stdout); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
