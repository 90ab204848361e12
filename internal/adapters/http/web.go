package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"gymdesk/internal/adapters/backend"
	"gymdesk/internal/adapters/email"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/storage/settings"
	"gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/dashboard"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
	"gymdesk/internal/domain/session"
	"gymdesk/internal/domain/theme"
	"gymdesk/internal/domain/view"
)

// BackendAPI is the full surface of the gym backend the panel talks to.
// *backend.Client satisfies it; handler tests substitute a fake.
type BackendAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	DashboardStats(ctx context.Context) (dashboard.Stats, error)
	RegisterMember(ctx context.Context, reg member.Registration) (backend.RegisteredMember, error)
	ListMembers(ctx context.Context) ([]member.Member, error)
	UpdateMember(ctx context.Context, m member.Member) (member.Member, error)
	DeleteMember(ctx context.Context, id string) error
	CheckIn(ctx context.Context, memberID string) (attendance.ScanResult, error)
	AttendanceHistory(ctx context.Context) ([]attendance.Record, error)
	RecordPayment(ctx context.Context, p payment.Request) (time.Time, error)
	PaymentHistory(ctx context.Context, memberID string) ([]payment.Record, error)
}

var _ BackendAPI = (*backend.Client)(nil)

// Ports holds every dependency the handlers reach for.
type Ports struct {
	Backend    BackendAPI
	Settings   settings.Store
	Theme      *theme.Holder
	Gate       *session.Gate
	Sender     email.Sender
	ReportFrom string
}

// loadCSRFKey reads the CSRF secret from GYMDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("GYMDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("GYMDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("GYMDESK_ENV") == "production" {
		log.Fatal("GYMDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set GYMDESK_CSRF_KEY for production.")
	return key
}

// Global ports instance (set by NewMux)
var ports *Ports

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/theme/toggle", handleThemeToggle)

	protected := map[string]http.HandlerFunc{
		view.Dashboard.Path():       handleDashboard,
		"/dashboard/report":         handleReportDownload,
		"/dashboard/report/preview": handleReportPreview,
		"/dashboard/report/email":   handleReportEmail,
		view.AddMember.Path():       handleAddMember,
		view.Scanner.Path():         handleScanner,
		view.Payment.Path():         handlePayments,
		view.Members.Path():         handleMembers,
		"/members/update":           handleMemberUpdate,
		"/members/delete":           handleMemberDelete,
	}
	for path, handler := range protected {
		mux.Handle(path, middleware.RequireAuth(handler))
	}
}

// NewMux wires HTTP handlers for the panel.
func NewMux(staticDir string, p *Ports) http.Handler {
	ports = p
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("GYMDESK_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.HandleFunc("/", handleIndex)
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware, outermost first: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
