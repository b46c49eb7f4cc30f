// Command process ingests team-list screenshots from a drop directory into a
// user's open session: OCR + extraction per image, then one reconciliation
// over everything seen so far. With -watch it keeps running and picks up new
// files as they land.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"teamsheet/models"
	"teamsheet/pkg/ocr"
	"teamsheet/pkg/roster"
	"teamsheet/pkg/upstream"
)

var db *gorm.DB

var (
	verbose bool
	watch   bool
)

func main() {
	dir := flag.String("dir", "", "directory of screenshots to ingest")
	username := flag.String("user", "admin", "owner of the session")
	statsURL := flag.String("stats", os.Getenv("STATS_BASE_URL"), "stats backend base URL")
	flag.BoolVar(&watch, "watch", false, "keep watching the directory for new files")
	flag.BoolVar(&verbose, "verbose", false, "verbose logging")
	flag.Parse()
	if *dir == "" {
		log.Fatal("-dir required")
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set")
	}
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("connect postgres: ", err)
	}

	var user models.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.Fatalf("user %q not found: %v", *username, err)
	}
	ts := openTeamSession(user.ID)

	ing := &ingester{
		session: roster.NewSession(),
		row:     ts,
		dir:     *dir,
	}
	if *statsURL != "" {
		ing.stats = upstream.NewClient(*statsURL)
	}

	initial := listImageFiles(*dir)
	log.Printf("ingesting %d existing screenshots from %s into session %d", len(initial), *dir, ts.ID)
	for _, name := range initial {
		ing.ingest(name)
	}
	ing.rebuild()

	if !watch {
		return
	}
	if err := watchDirectory(*dir, ing); err != nil {
		log.Fatal("watch: ", err)
	}
}

// textSource adapts the OCR recognizer to the engine contract. Local copy;
// the process binary cannot reach helpers in the server's root package.
type textSource struct {
	r ocr.Recognizer
}

func (t textSource) Recognize(path string) (roster.RecognizedText, error) {
	res, err := t.r.Recognize(path)
	if err != nil {
		return roster.RecognizedText{}, err
	}
	lines := make([]roster.Line, len(res.Lines))
	for i, l := range res.Lines {
		lines[i] = roster.Line{Text: l.Text, Y: l.Y}
	}
	return roster.RecognizedText{Text: res.Text, Lines: lines}, nil
}

// ingester accumulates one engine session and mirrors it into the DB.
type ingester struct {
	session *roster.Session
	row     *models.TeamSession
	dir     string
	stats   *upstream.Client
}

// ingest runs OCR + extraction for one file. A failed image is recorded with
// its reason and skipped; it never poisons the rest of the directory.
func (g *ingester) ingest(name string) {
	full := filepath.Join(g.dir, name)
	recs, err := g.session.AddBatch(textSource{}, []string{full}, nil)
	shot := models.Screenshot{SessionID: g.row.ID, FileName: name, StorePath: full}
	if err != nil {
		shot.Failed = true
		shot.FailedReason = err.Error()
		log.Printf("%s: OCR failed: %v", name, err)
	} else {
		rec := recs[0]
		shot.Format = rec.Format.String()
		shot.RawText = rec.RawText
		if verbose {
			log.Printf("%s: format=%s candidates=%d", name, rec.Format, len(rec.Candidates))
		}
	}
	if err := db.Create(&shot).Error; err != nil {
		log.Printf("%s: screenshot row save failed: %v", name, err)
	}
}

// rebuild reconciles everything accumulated so far and replaces the stored
// slots.
func (g *ingester) rebuild() {
	var vs roster.ValidationSource
	var ps roster.PriceSource
	if g.stats != nil {
		vs, ps = g.stats, g.stats
	}
	slots := g.session.Roster(vs, ps)
	if err := db.Where("session_id = ?", g.row.ID).Delete(&models.RosterSlot{}).Error; err != nil {
		log.Printf("slot cleanup failed: %v", err)
	}
	filled := 0
	for _, s := range slots {
		row := models.RosterSlot{
			SessionID:          g.row.ID,
			SlotIndex:          s.Index,
			Position:           string(s.Position),
			OriginalFailedName: s.OriginalFailedName,
		}
		if s.Player != nil {
			row.PlayerName = s.Player.Name
			row.Price = s.Player.Price
			filled++
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("slot save failed: %v", err)
		}
	}
	log.Printf("session %d: %d/%d slots filled", g.row.ID, filled, roster.TeamSize)
}

func openTeamSession(userID uint) *models.TeamSession {
	var ts models.TeamSession
	if err := db.Where("user_id = ? AND open = true", userID).First(&ts).Error; err == nil {
		return &ts
	}
	ts = models.TeamSession{UserID: userID, Open: true}
	if err := db.Create(&ts).Error; err != nil {
		log.Fatal("create session: ", err)
	}
	return &ts
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	// ignore OCR-generated temp files to avoid recursive processing
	if strings.Contains(name, ".ocr.") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

// watchDirectory debounces create events and feeds stable files to the
// ingester one at a time; image processing stays strictly sequential.
func watchDirectory(dir string, ing *ingester) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				name := filepath.Base(ev.Name)
				if isSupportedExt(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			changed := false
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					ing.ingest(name)
					delete(pending, name)
					changed = true
				}
			}
			if changed {
				ing.rebuild()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
