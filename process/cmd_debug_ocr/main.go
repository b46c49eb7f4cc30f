// Dumps what the engine sees for one screenshot: recognized text, detected
// format, and every extracted candidate.
package main

import (
	"flag"
	"fmt"
	"log"

	"teamsheet/pkg/ocr"
	"teamsheet/pkg/roster"
)

func main() {
	f := flag.String("file", "", "image file to OCR")
	full := flag.Bool("text", false, "print full recognized text")
	flag.Parse()
	if *f == "" {
		log.Fatalf("-file required")
	}
	res, err := ocr.Recognizer{}.Recognize(*f)
	if err != nil {
		log.Fatalf("ocr error: %v", err)
	}
	rec := roster.BuildRecord(roster.RecognizedText{Text: res.Text, Lines: toLines(res.Lines)}, roster.DefaultExtractorConfig())
	fmt.Printf("format=%s lines=%d candidates=%d\n", rec.Format, len(rec.Lines), len(rec.Candidates))
	for _, c := range roster.Deduplicate(rec.Candidates) {
		price := "-"
		if c.Price != nil {
			price = fmt.Sprintf("%d", *c.Price)
		}
		fmt.Printf("  y=%6.0f %-24s positions=%v price=%s\n", c.YPosition, c.Name, c.Positions, price)
	}
	if *full {
		fmt.Println("---")
		fmt.Println(res.Text)
	}
}

func toLines(in []ocr.Line) []roster.Line {
	out := make([]roster.Line, len(in))
	for i, l := range in {
		out[i] = roster.Line{Text: l.Text, Y: l.Y}
	}
	return out
}
