package util

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// ExtractPDFText returns the text layer of every page in document order, pages joined by "\n".
func ExtractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

// ExtractPDFTextWithOCR reads the text layer and falls back to OCR when the PDF has none,
// which is what scanned resumes look like.
func ExtractPDFTextWithOCR(log *zap.Logger) func(path string) (string, error) {
	return func(path string) (string, error) {
		text, err := ExtractPDFText(path)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
		log.Info("PDF has no text layer, falling back to OCR", zap.String("path", path))
		return ExtractPDFOCR(path, log)
	}
}

// ExtractPDFOCR rasterises each page and runs it through tesseract.
func ExtractPDFOCR(path string, log *zap.Logger) (string, error) {
	if err := checkTesseract(log); err != nil {
		return "", fmt.Errorf("tesseract check failed: %w", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := ocrPage(doc, n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			log.Warn("OCR page failed", zap.Int("page", n+1), zap.Error(err))
			continue
		}
		if pageText == "" {
			continue
		}
		if fullText.Len() > 0 {
			fullText.WriteString("\n")
		}
		fullText.WriteString(pageText)
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
		}
		return "", fmt.Errorf("no text extracted from PDF (PDF might be empty or images are unreadable)")
	}

	log.Debug("OCR finished", zap.Int("pages", doc.NumPage()), zap.Int("chars", len(result)))
	return result, nil
}

func ocrPage(doc *fitz.Document, n int) (string, error) {
	img, err := doc.Image(n)
	if err != nil {
		return "", fmt.Errorf("failed to extract image: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := savePNG(tmpPath, img); err != nil {
		return "", fmt.Errorf("failed to save PNG: %w", err)
	}

	out, err := exec.Command("tesseract", tmpPath, "stdout", "-l", "eng").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract(log *zap.Logger) error {
	out, err := exec.Command("tesseract", "-v").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w\nOutput: %s", err, string(out))
	}
	log.Debug("tesseract available", zap.String("version", strings.Split(string(out), "\n")[0]))
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
