package roster

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

type stubTextSource struct {
	texts map[string]string
}

func (s stubTextSource) Recognize(path string) (RecognizedText, error) {
	text, ok := s.texts[path]
	if !ok {
		return RecognizedText{}, errors.New("no text found in image")
	}
	return RecognizedText{Text: text, Lines: []Line{{Text: text, Y: 10}}}, nil
}

type stubValidationSource struct {
	entries []ValidationEntry
	err     error
	calls   int
}

func (s *stubValidationSource) FetchValidationList() ([]ValidationEntry, error) {
	s.calls++
	return s.entries, s.err
}

func TestAddBatchAccumulates(t *testing.T) {
	sess := NewSession()
	src := stubTextSource{texts: map[string]string{
		"a.png": "J. Tedesco |WFB| $845k",
		"b.png": "N. Hynes |HLF| $910k",
	}}

	var pcts []float64
	records, err := sess.AddBatch(src, []string{"a.png", "b.png"}, func(pct float64) {
		pcts = append(pcts, pct)
	})
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	if len(records) != 2 || len(sess.Screenshots()) != 2 {
		t.Fatalf("records = %d, screenshots = %d", len(records), len(sess.Screenshots()))
	}
	if len(pcts) != 2 || pcts[0] != 50 || pcts[1] != 100 {
		t.Fatalf("progress = %v", pcts)
	}
	if sess.Screenshots()[0].Format != Format1 {
		t.Fatalf("format = %v", sess.Screenshots()[0].Format)
	}
}

func TestAddBatchFailureCommitsNothing(t *testing.T) {
	sess := NewSession()
	src := stubTextSource{texts: map[string]string{
		"ok.png": "J. Tedesco |WFB| $845k",
	}}
	if _, err := sess.AddBatch(src, []string{"ok.png"}, nil); err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	records, err := sess.AddBatch(src, []string{"ok.png", "broken.png"}, nil)
	if err == nil {
		t.Fatalf("expected the batch to fail")
	}
	if records != nil {
		t.Fatalf("failed batch returned records: %v", records)
	}
	// the readable first image of the failed batch is discarded too
	if len(sess.Screenshots()) != 1 {
		t.Fatalf("screenshots = %d, want only the earlier batch", len(sess.Screenshots()))
	}
}

func TestClearKeepsValidationCache(t *testing.T) {
	sess := NewSession()
	vs := &stubValidationSource{entries: testEntries}
	sess.ValidationEntries(vs)
	sess.Clear()
	if len(sess.Screenshots()) != 0 {
		t.Fatalf("screenshots survived Clear")
	}
	sess.ValidationEntries(vs)
	if vs.calls != 1 {
		t.Fatalf("validation refetched after Clear: %d calls", vs.calls)
	}
}

func TestValidationEntriesCached(t *testing.T) {
	sess := NewSession()
	vs := &stubValidationSource{entries: testEntries}
	for i := 0; i < 3; i++ {
		if got := sess.ValidationEntries(vs); len(got) != len(testEntries) {
			t.Fatalf("entries = %d", len(got))
		}
	}
	if vs.calls != 1 {
		t.Fatalf("calls = %d, want 1", vs.calls)
	}
}

func TestValidationEntriesRetriesAfterFailure(t *testing.T) {
	sess := NewSession()
	vs := &stubValidationSource{err: errors.New("upstream down")}
	if got := sess.ValidationEntries(vs); got != nil {
		t.Fatalf("failed fetch should return nil, got %v", got)
	}
	vs.err = nil
	vs.entries = testEntries
	if got := sess.ValidationEntries(vs); len(got) != len(testEntries) {
		t.Fatalf("entries after recovery = %d", len(got))
	}
	if vs.calls != 2 {
		t.Fatalf("calls = %d, want 2", vs.calls)
	}
}

func TestSessionConcurrentUploadAndRead(t *testing.T) {
	// one session serves all of a user's in-flight requests; uploads must
	// not race roster reads (run with -race)
	sess := NewSession()
	src := stubTextSource{texts: map[string]string{
		"a.png": "J. Tedesco |WFB| $845k",
	}}

	const uploads = 8
	var wg sync.WaitGroup
	for i := 0; i < uploads; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := sess.AddBatch(src, []string{"a.png"}, nil); err != nil {
				t.Errorf("AddBatch: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			_ = sess.Screenshots()
			slots := sess.Roster(nil, nil)
			if len(slots) != TeamSize {
				t.Errorf("len = %d", len(slots))
			}
		}()
	}
	wg.Wait()

	if got := len(sess.Screenshots()); got != uploads {
		t.Fatalf("screenshots = %d, want %d", got, uploads)
	}
	slots := sess.Roster(nil, nil)
	if slots[0].Player == nil || slots[0].Player.Name != "J. Tedesco" {
		t.Fatalf("slot 0 = %+v", slots[0].Player)
	}
}

func TestSessionRosterEndToEnd(t *testing.T) {
	sess := NewSession()
	texts := map[string]string{}
	var paths []string
	surnames := []string{
		"Tedesco", "Hynes", "Cleary", "Munster", "Grant",
		"Cotter", "Haas", "Fifita", "Yeo", "Turbo",
		"Walsh", "Ponga", "Mitchell",
	}
	var entries []ValidationEntry
	for i, sn := range surnames {
		path := fmt.Sprintf("s%d.png", i)
		texts[path] = fmt.Sprintf("J. %s |WFB| $450k", sn)
		paths = append(paths, path)
		entries = append(entries, ValidationEntry{
			FullName:        "James " + sn,
			AbbreviatedName: "J. " + sn,
			Surname:         sn,
		})
	}
	// one OCR misread that validation must clear out
	texts["bad.png"] = "J. Qqzzk |WFB| $450k"
	paths = append(paths, "bad.png")

	if _, err := sess.AddBatch(stubTextSource{texts: texts}, paths, nil); err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	vs := &stubValidationSource{entries: entries}
	ps := &stubPriceSource{prices: map[string]int{}}
	slots := sess.Roster(vs, ps)

	if len(slots) != TeamSize {
		t.Fatalf("len = %d", len(slots))
	}
	if slots[0].Player == nil || slots[0].Player.Name != "J. Tedesco" {
		t.Fatalf("slot 0 = %+v", slots[0].Player)
	}
	if slots[13].Player != nil {
		t.Fatalf("misread survived into slot 13: %+v", slots[13].Player)
	}
	if slots[13].OriginalFailedName != "J. Qqzzk" {
		t.Fatalf("OriginalFailedName = %q", slots[13].OriginalFailedName)
	}
}
