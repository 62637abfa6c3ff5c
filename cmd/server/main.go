package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"famboard/internal/blob"
	"famboard/internal/config"
	"famboard/internal/database"
	"famboard/internal/gateway"
	"famboard/internal/identity"
	"famboard/internal/mail"
	"famboard/internal/models"
	"famboard/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	// Blob storage for log photos
	var blobs blob.Store
	switch cfg.BlobBackend {
	case "s3":
		if cfg.S3Bucket == "" {
			log.Fatal("S3_BUCKET is required for the s3 blob backend")
		}
		blobs = blob.NewS3Store(awsCfg, cfg.S3Bucket)
		log.Printf("Blob storage: s3 bucket %s", cfg.S3Bucket)
	default:
		fsStore, err := blob.NewFSStore(cfg.BlobDir, cfg.BlobBaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize blob storage: %v", err)
		}
		blobs = fsStore
		log.Printf("Blob storage: directory %s", cfg.BlobDir)
	}

	gw := gateway.NewSQL(db)
	st := store.New(gw, blobs)
	st.SetPhotoMaxSize(cfg.PhotoMaxSize)
	ident := identity.NewTokenProvider(cfg.SessionSecret)
	mailer := mail.NewInviteMailer(awsCfg, cfg.SESFromEmail, cfg.SESFromName)

	// Keep the store in step with auth state: load on sign-in, clear on
	// sign-out.
	ident.OnChange(func(userID string) {
		if userID == "" {
			st.Reset()
			log.Println("Signed out, store cleared")
			return
		}
		if err := st.LoadForUser(context.Background(), userID); err != nil {
			log.Printf("Failed to load data for user %s: %v", userID, err)
		}
	})

	srv := &server{store: st, ident: ident, mailer: mailer}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/signin", srv.signIn)
	mux.HandleFunc("POST /auth/signout", srv.signOut)
	mux.HandleFunc("GET /state", srv.state)
	mux.HandleFunc("POST /family", srv.createFamily)
	mux.HandleFunc("POST /family/invite", srv.sendInvite)
	mux.HandleFunc("POST /members", srv.addMember)
	mux.HandleFunc("POST /members/{id}/update", srv.updateMember)
	mux.HandleFunc("POST /members/{id}/status", srv.updateMemberStatus)
	mux.HandleFunc("POST /members/{id}/delete", srv.deleteMember)
	mux.HandleFunc("POST /messages", srv.addMessage)
	mux.HandleFunc("POST /messages/{id}/pin", srv.toggleMessagePin)
	mux.HandleFunc("POST /messages/{id}/delete", srv.deleteMessage)
	mux.HandleFunc("POST /messages/read", srv.markMessagesRead)
	mux.HandleFunc("POST /tasks", srv.addTask)
	mux.HandleFunc("POST /tasks/{id}/toggle", srv.toggleTask)
	mux.HandleFunc("POST /tasks/{id}/delete", srv.deleteTask)
	mux.HandleFunc("POST /logs", srv.addLog)
	mux.HandleFunc("POST /logs/{id}/delete", srv.deleteLog)
	mux.HandleFunc("POST /buttons", srv.addButton)
	mux.HandleFunc("POST /timeline/read", srv.markTimelineRead)

	if cfg.BlobBackend != "s3" {
		mux.Handle("GET /photos/", http.StripPrefix("/photos/", http.FileServer(http.Dir(cfg.BlobDir))))
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: mux,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	st.Reset()
}

// server exposes the synchronized store over a small JSON surface
type server struct {
	store  *store.Store
	ident  *identity.TokenProvider
	mailer *mail.InviteMailer
}

func (s *server) signIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.ident.SignIn(req.Token); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *server) signOut(w http.ResponseWriter, r *http.Request) {
	s.ident.SignOut()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *server) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *server) createFamily(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string             `json:"name"`
		Members []models.NewMember `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID, err := s.ident.CurrentUserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if err := s.store.CreateFamily(r.Context(), userID, req.Name, req.Members); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.store.Snapshot())
}

func (s *server) sendInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fam := s.store.Family()
	if fam == nil {
		writeError(w, http.StatusConflict, "no family loaded")
		return
	}
	if err := s.mailer.SendInviteEmail(r.Context(), req.Email, req.Name, fam.Name, fam.InviteCode); err != nil {
		log.Printf("Failed to send invite: %v", err)
		writeError(w, http.StatusBadGateway, "failed to send invite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *server) addMember(w http.ResponseWriter, r *http.Request) {
	var req models.NewMember
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, s.store.AddMember(r.Context(), req))
}

func (s *server) updateMember(w http.ResponseWriter, r *http.Request) {
	var req models.MemberUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, s.store.UpdateMember(r.Context(), r.PathValue("id"), req))
}

func (s *server) updateMemberStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.MemberStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, s.store.UpdateMemberStatus(r.Context(), r.PathValue("id"), req.Status))
}

func (s *server) deleteMember(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteMember(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrMemberInUse) {
		writeError(w, http.StatusConflict, "member still has related data")
		return
	}
	s.mutate(w, err)
}

func (s *server) addMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content           string `json:"content"`
		CreatedByMemberID string `json:"createdByMemberId"`
		Pinned            bool   `json:"pinned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, s.store.AddMessage(r.Context(), req.Content, req.CreatedByMemberID, req.Pinned))
}

func (s *server) toggleMessagePin(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.store.ToggleMessagePin(r.Context(), r.PathValue("id")))
}

func (s *server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.store.DeleteMessage(r.Context(), r.PathValue("id")))
}

func (s *server) addTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title              string `json:"title"`
		AssignedToMemberID string `json:"assignedToMemberId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, s.store.AddTask(r.Context(), req.Title, req.AssignedToMemberID))
}

func (s *server) toggleTask(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.store.ToggleTaskComplete(r.Context(), r.PathValue("id")))
}

func (s *server) deleteTask(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.store.DeleteTask(r.Context(), r.PathValue("id")))
}

func (s *server) addLog(w http.ResponseWriter, r *http.Request) {
	var req models.NewLog
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, s.store.AddLog(r.Context(), req))
}

func (s *server) deleteLog(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.store.DeleteLog(r.Context(), r.PathValue("id")))
}

func (s *server) addButton(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
		Icon  string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, s.store.AddCustomButton(r.Context(), req.Label, req.Icon))
}

func (s *server) markTimelineRead(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.store.MarkTimelineAsRead(r.Context()))
}

func (s *server) markMessagesRead(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, s.store.MarkMessagesAsRead(r.Context()))
}

// mutate finishes a mutation request with the common success/error shape
func (s *server) mutate(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
