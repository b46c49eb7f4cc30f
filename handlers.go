package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"teamsheet/models"
	"teamsheet/pkg/ocr"
	"teamsheet/pkg/roster"
	"teamsheet/pkg/upstream"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/screenshots", uploadScreenshotsHandler)
	authGroup.GET("/screenshots", listScreenshotsHandler)
	authGroup.DELETE("/screenshots", clearScreenshotsHandler)
	authGroup.GET("/roster", getRosterHandler)
	authGroup.POST("/roster/slots/:index", fillSlotHandler)
	authGroup.GET("/roster/suggest", suggestHandler)
	authGroup.GET("/roster/export", exportRosterHandler)
	authGroup.POST("/roster/analyze", analyzeRosterHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	username := usernameVal.(string)
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// getUserFromContext fetches the currently authenticated user using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// textSource adapts the OCR recognizer to the engine's TextSource contract.
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

// In-memory reconciliation sessions, one per user, living alongside the
// persisted TeamSession rows. The engine session owns the accumulated
// screenshot records and the cached validation list.
var sessions = struct {
	mu     sync.Mutex
	byUser map[uint]*roster.Session
}{byUser: map[uint]*roster.Session{}}

func sessionFor(userID uint) *roster.Session {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	s, ok := sessions.byUser[userID]
	if !ok {
		s = roster.NewSession()
		sessions.byUser[userID] = s
	}
	return s
}

func dropSession(userID uint) {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	delete(sessions.byUser, userID)
}

// openTeamSession returns the user's open TeamSession row, creating one if
// none exists.
func openTeamSession(userID uint) (*models.TeamSession, error) {
	var ts models.TeamSession
	if err := db.Where("user_id = ? AND open = true", userID).First(&ts).Error; err == nil {
		return &ts, nil
	}
	ts = models.TeamSession{UserID: userID, Open: true}
	if err := db.Create(&ts).Error; err != nil {
		return nil, err
	}
	return &ts, nil
}

// uploadScreenshotsHandler accepts one or more team-list screenshots, runs
// OCR + extraction over the new batch, then rebuilds the roster from every
// screenshot accumulated in the session so far. An OCR failure on any image
// aborts the whole batch and commits nothing from it.
func uploadScreenshotsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	ts, err := openTeamSession(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session create failed"})
		return
	}

	dir := uploadBaseDir() + "/" + strconv.FormatUint(uint64(user.ID), 10)
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	var paths []string
	var names []string
	var contentTypes []string
	for _, fh := range files {
		if fh.Size > 10*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 10MB)"})
			return
		}
		full := dir + "/" + fh.Filename
		if err := c.SaveUploadedFile(fh, full); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
			return
		}
		paths = append(paths, full)
		names = append(names, fh.Filename)
		contentTypes = append(contentTypes, fh.Header.Get("Content-Type"))
	}

	sess := sessionFor(user.ID)
	records, err := sess.AddBatch(textSource{}, paths, func(pct float64) {
		log.Printf("session %d: batch progress %.0f%%", ts.ID, pct)
	})
	if err != nil {
		log.Printf("session %d: OCR failed, batch discarded: %v", ts.ID, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not read the uploaded screenshots"})
		return
	}

	// screenshot rows are committed only after the whole batch succeeded
	for i, rec := range records {
		shot := models.Screenshot{
			SessionID:   ts.ID,
			FileName:    names[i],
			StorePath:   paths[i],
			ContentType: contentTypes[i],
			Format:      rec.Format.String(),
			RawText:     rec.RawText,
		}
		if err := db.Create(&shot).Error; err != nil {
			log.Printf("session %d: screenshot row save failed: %v", ts.ID, err)
		}
	}

	slots := sess.Roster(stats, stats)
	persistRoster(ts.ID, slots)
	c.JSON(http.StatusOK, gin.H{"slots": toSlotDTOs(slots)})
}

func listScreenshotsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	ts, err := openTeamSession(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
		return
	}
	var shots []models.Screenshot
	if err := db.Where("session_id = ?", ts.ID).Order("id asc").Find(&shots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, shots)
}

// clearScreenshotsHandler closes the current session and forgets its
// screenshots; the next upload starts a fresh team list.
func clearScreenshotsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	dropSession(user.ID)
	if err := db.Model(&models.TeamSession{}).Where("user_id = ? AND open = true", user.ID).Update("open", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "screenshots cleared"})
}

func getRosterHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	sess := sessionFor(user.ID)
	slots := sess.Roster(stats, stats)
	c.JSON(http.StatusOK, gin.H{"slots": toSlotDTOs(slots)})
}

// fillSlotHandler manually fills (or corrects) one slot by index. This is the
// interactive follow-up for slots that failed validation.
func fillSlotHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 || idx >= roster.TeamSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot index out of range"})
		return
	}
	var req struct {
		Name  string `json:"name" binding:"required"`
		Price *int   `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ts, err := openTeamSession(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
		return
	}
	var slot models.RosterSlot
	if err := db.Where("session_id = ? AND slot_index = ?", ts.ID, idx).First(&slot).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "slot not found; upload screenshots first"})
		return
	}
	slot.PlayerName = req.Name
	slot.Price = req.Price
	slot.OriginalFailedName = ""
	if err := db.Save(&slot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, slot)
}

// suggestHandler offers fuzzy player-name matches from the validation list,
// used when correcting a failed slot by hand.
func suggestHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter required"})
		return
	}
	sess := sessionFor(user.ID)
	entries := sess.ValidationEntries(stats)
	if len(entries) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "player list unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": roster.Suggest(q, entries, 10)})
}

func exportRosterHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	sess := sessionFor(user.ID)
	slots := sess.Roster(stats, stats)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="team_list.csv"`)
	if err := roster.ExportCSV(c.Writer, slots); err != nil {
		log.Printf("export failed: %v", err)
	}
}

// analyzeRosterHandler forwards the filled slots to the trade/analysis
// backend and relays its response untouched.
func analyzeRosterHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	sess := sessionFor(user.ID)
	slots := sess.Roster(stats, stats)
	players := upstream.FilledPlayers(slots)
	if len(players) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no players extracted yet"})
		return
	}
	result, err := stats.CalculateTeamTrades(players)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "trade analysis unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// persistRoster replaces the session's stored slots with the given 21.
func persistRoster(sessionID uint, slots []roster.Slot) {
	if err := db.Where("session_id = ?", sessionID).Delete(&models.RosterSlot{}).Error; err != nil {
		log.Printf("session %d: slot cleanup failed: %v", sessionID, err)
	}
	for _, s := range slots {
		row := models.RosterSlot{
			SessionID:          sessionID,
			SlotIndex:          s.Index,
			Position:           string(s.Position),
			OriginalFailedName: s.OriginalFailedName,
		}
		if s.Player != nil {
			row.PlayerName = s.Player.Name
			row.Price = s.Player.Price
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("session %d: slot save failed: %v", sessionID, err)
		}
	}
}

type slotDTO struct {
	Index              int      `json:"index"`
	Position           string   `json:"position"`
	Name               string   `json:"name,omitempty"`
	Positions          []string `json:"positions,omitempty"`
	Price              *int     `json:"price,omitempty"`
	IsEmpty            bool     `json:"isEmpty"`
	OriginalFailedName string   `json:"originalFailedName,omitempty"`
}

func toSlotDTOs(slots []roster.Slot) []slotDTO {
	out := make([]slotDTO, len(slots))
	for i, s := range slots {
		d := slotDTO{Index: s.Index, Position: string(s.Position), IsEmpty: s.IsEmpty(), OriginalFailedName: s.OriginalFailedName}
		if s.Player != nil {
			d.Name = s.Player.Name
			d.Price = s.Player.Price
			for _, p := range s.Player.Positions {
				d.Positions = append(d.Positions, string(p))
			}
		}
		out[i] = d
	}
	return out
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := Register(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	// Generate JWT token. Resolve role name from RoleID (we only store role_id now).
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// create refresh token
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	// generate random 32-byte token (hex)
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	// hash for storage
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// helper to find refresh token record by raw token string
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	// load user
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	// create access token
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}
