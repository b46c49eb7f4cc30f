package roster

import "sync"

// TextSource is the OCR adapter contract: recognized full text plus ordered
// lines with vertical positions for one image.
type TextSource interface {
	Recognize(path string) (RecognizedText, error)
}

// ValidationSource fetches the authoritative player list.
type ValidationSource interface {
	FetchValidationList() ([]ValidationEntry, error)
}

// Session owns the state of one upload session: every screenshot record
// accumulated so far and the cached validation list. One session serves one
// team list; Clear resets it. Safe for concurrent use: a session is shared
// across the requests of one user.
type Session struct {
	cfg ExtractorConfig

	mu          sync.Mutex
	screenshots []ScreenshotRecord
	validation  []ValidationEntry
}

func NewSession() *Session {
	return &Session{cfg: DefaultExtractorConfig()}
}

// NewSessionWith uses non-default extractor constants.
func NewSessionWith(cfg ExtractorConfig) *Session {
	return &Session{cfg: cfg}
}

// Screenshots returns a snapshot of the accumulated records in upload order.
func (s *Session) Screenshots() []ScreenshotRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ScreenshotRecord(nil), s.screenshots...)
}

// Clear drops all accumulated screenshots. The cached validation list is
// kept; it is player data, not team data.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screenshots = nil
}

// AddBatch OCRs and extracts each image strictly in order, reporting overall
// percent progress after each one, and returns the records it committed. An
// OCR failure aborts the whole batch: nothing from it is committed, and
// previously accumulated screenshots are untouched.
func (s *Session) AddBatch(src TextSource, paths []string, progress func(pct float64)) ([]ScreenshotRecord, error) {
	// OCR runs outside the lock; only the commit needs it.
	batch := make([]ScreenshotRecord, 0, len(paths))
	for i, path := range paths {
		rec, err := src.Recognize(path)
		if err != nil {
			return nil, err
		}
		batch = append(batch, BuildRecord(rec, s.cfg))
		if progress != nil {
			progress(float64(i+1) / float64(len(paths)) * 100)
		}
	}
	s.mu.Lock()
	s.screenshots = append(s.screenshots, batch...)
	s.mu.Unlock()
	return batch, nil
}

// BuildRecord classifies and extracts one screenshot's recognized text.
func BuildRecord(rec RecognizedText, cfg ExtractorConfig) ScreenshotRecord {
	return ScreenshotRecord{
		RawText:    rec.Text,
		Lines:      rec.Lines,
		Format:     DetectFormat(rec.Text),
		Candidates: ExtractCandidates(rec, cfg),
	}
}

// ValidationEntries returns the session's validation list, fetching it on
// first use and re-fetching on demand while it is still empty. The mutex
// serializes concurrent callers so only one fetch is in flight. A failed
// fetch returns nil, which downstream treats as degraded mode.
func (s *Session) ValidationEntries(src ValidationSource) []ValidationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.validation) > 0 {
		return s.validation
	}
	if src == nil {
		return nil
	}
	entries, err := src.FetchValidationList()
	if err != nil {
		return nil
	}
	s.validation = entries
	return s.validation
}

// Roster runs the full reconciliation over everything accumulated so far:
// merge + slot, validate, backfill prices. Always returns exactly 21 slots
// in template order.
func (s *Session) Roster(vs ValidationSource, ps PriceSource) []Slot {
	slots := MergeScreenshots(s.Screenshots())
	slots = Validate(slots, s.ValidationEntries(vs))
	slots = ResolvePrices(slots, ps)
	return slots
}
