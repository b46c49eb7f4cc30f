package ocr

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Line is one recognized text line with the top edge of its bounding box in
// pixels of the preprocessed image.
type Line struct {
	Text string
	Y    float64
}

// Result is the output of one recognition run: the full recognized text and
// the ordered per-line breakdown. Lines may be empty when Tesseract could not
// produce line geometry; callers fall back to whole-text extraction then.
type Result struct {
	Text  string
	Lines []Line
}

// Recognizer runs Tesseract over screenshot images. The zero value is ready
// to use.
type Recognizer struct {
	// Language passed to Tesseract; defaults to "eng".
	Language string
}

// Recognize preprocesses the image and runs two OCR passes: a base pass over
// a binarized upscale for the main text plus line boxes, and a sparse-text
// pass over an adaptively thresholded variant whose text is appended so
// names lost to line merging still appear in the full text.
func (r Recognizer) Recognize(path string) (Result, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open image: %w", err)
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}
	base := binarize(gray, 210)
	sparse := dilate(adaptiveThreshold(gray, 15, 7), 1)

	tmpBase, err := saveTemp(base, "ocr-base-*.png")
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(tmpBase)

	lang := r.Language
	if lang == "" {
		lang = "eng"
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(lang)
	if err := client.SetImage(tmpBase); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("ocr error: %w", err)
	}
	text = normalizeText(text)

	var lines []Line
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE); err == nil {
		for _, b := range boxes {
			t := normalizeText(b.Word)
			if t == "" {
				continue
			}
			lines = append(lines, Line{Text: t, Y: float64(b.Box.Min.Y)})
		}
	}

	// sparse pass: recovers tokens the block segmenter merged away
	if tmpSparse, err := saveTemp(sparse, "ocr-sparse-*.png"); err == nil {
		defer os.Remove(tmpSparse)
		cl := gosseract.NewClient()
		_ = cl.SetLanguage(lang)
		_ = cl.SetPageSegMode(gosseract.PSM_SPARSE_TEXT)
		if err := cl.SetImage(tmpSparse); err == nil {
			if t, terr := cl.Text(); terr == nil {
				if extra := normalizeText(t); extra != "" {
					text += "\n" + extra
				}
			}
		}
		cl.Close()
	}

	if text == "" && len(lines) == 0 {
		return Result{}, ErrNoText
	}
	return Result{Text: text, Lines: lines}, nil
}

// saveTemp writes an image to a fresh temp file and returns its path.
func saveTemp(img image.Image, pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	_ = f.Close()
	if err := imaging.Save(img, f.Name()); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("save temp image: %w", err)
	}
	return f.Name(), nil
}
