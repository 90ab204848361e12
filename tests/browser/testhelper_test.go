package browser_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"gymdesk/internal/adapters/backend"
	"gymdesk/internal/adapters/email"
	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/storage"
	settingsStore "gymdesk/internal/adapters/storage/settings"
	"gymdesk/internal/application/orchestrators"
)

const (
	testAdminUser = "admin"
	testAdminPass = "secret"
	testToken     = "test-token"
	testQRDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="
)

// gymAPI is an in-memory stand-in for the external gym service. It speaks
// the same JSON dialect the panel's client expects.
type gymAPI struct {
	mu       sync.Mutex
	members  []memberRecord
	expired  map[string]bool
	checkins []checkinRecord
	payments map[string][]paymentRecord
	nextID   int
}

type memberRecord struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	Contact        string  `json:"contact"`
	PlanType       string  `json:"planType"`
	CashAmountPaid float64 `json:"cashAmountPaid"`
}

type checkinRecord struct {
	MemberID    string    `json:"memberId"`
	MemberName  string    `json:"memberName"`
	CheckInTime time.Time `json:"checkInTime"`
}

type paymentRecord struct {
	Amount           float64   `json:"amount"`
	PaymentDate      time.Time `json:"paymentDate"`
	DurationInMonths int       `json:"durationInMonths"`
	PaymentMethod    string    `json:"paymentMethod"`
}

func newGymAPI() *gymAPI {
	return &gymAPI{
		expired:  map[string]bool{},
		payments: map[string][]paymentRecord{},
		nextID:   100001,
	}
}

func (g *gymAPI) addMember(name string, age int, gender, contact, plan string, cash float64) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("GM-%d", g.nextID)
	g.nextID++
	g.members = append(g.members, memberRecord{
		ID: id, Name: name, Age: age, Gender: gender,
		Contact: contact, PlanType: plan, CashAmountPaid: cash,
	})
	return id
}

func (g *gymAPI) find(id string) (memberRecord, bool) {
	for _, m := range g.members {
		if m.ID == id {
			return m, true
		}
	}
	return memberRecord{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (g *gymAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != testAdminUser || creds.Password != testAdminPass {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": testToken})
	})

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
				return
			}
			h(w, r)
		}
	}

	mux.HandleFunc("/api/dashboard/stats", authed(func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		expired := 0
		var income float64
		for _, m := range g.members {
			if g.expired[m.ID] {
				expired++
			}
			income += m.CashAmountPaid
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"memberStats": map[string]int{
				"totalMembers":   len(g.members),
				"activeMembers":  len(g.members) - expired,
				"expiredMembers": expired,
			},
			"financialStats":  map[string]float64{"totalMonthlyIncome": income},
			"attendanceStats": map[string]int{"dailyAttendanceCount": len(g.checkins)},
			"alerts":          map[string]any{"upcomingRenewals": []any{}},
		})
	}))

	mux.HandleFunc("/api/members/register", authed(func(w http.ResponseWriter, r *http.Request) {
		var reg struct {
			Name       string  `json:"name"`
			Age        int     `json:"age"`
			Gender     string  `json:"gender"`
			Contact    string  `json:"contact"`
			PlanType   string  `json:"planType"`
			CashAmount float64 `json:"cashAmount"`
		}
		json.NewDecoder(r.Body).Decode(&reg)
		id := g.addMember(reg.Name, reg.Age, reg.Gender, reg.Contact, reg.PlanType, reg.CashAmount)
		writeJSON(w, http.StatusCreated, map[string]any{
			"member":      map[string]string{"memberId": id},
			"qrCodeImage": testQRDataURI,
		})
	}))

	mux.HandleFunc("/api/members", authed(func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		writeJSON(w, http.StatusOK, g.members)
	}))

	mux.HandleFunc("/api/members/", authed(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/members/")
		g.mu.Lock()
		defer g.mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			var upd memberRecord
			json.NewDecoder(r.Body).Decode(&upd)
			for i, m := range g.members {
				if m.ID == id {
					upd.ID = id
					g.members[i] = upd
					writeJSON(w, http.StatusOK, map[string]any{"updatedMember": upd})
					return
				}
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Member not found"})
		case http.MethodDelete:
			for i, m := range g.members {
				if m.ID == id {
					g.members = append(g.members[:i], g.members[i+1:]...)
					writeJSON(w, http.StatusOK, map[string]string{"message": "Member deleted"})
					return
				}
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Member not found"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/api/attendance/scan", authed(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MemberID string `json:"memberId"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		g.mu.Lock()
		defer g.mu.Unlock()
		m, ok := g.find(body.MemberID)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Member not found"})
			return
		}
		if g.expired[m.ID] {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Membership expired"})
			return
		}
		g.checkins = append([]checkinRecord{{MemberID: m.ID, MemberName: m.Name, CheckInTime: time.Now()}}, g.checkins...)
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Check-in recorded",
			"member":  map[string]string{"name": m.Name},
		})
	}))

	mux.HandleFunc("/api/attendance/history", authed(func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"history": g.checkins})
	}))

	mux.HandleFunc("/api/payments/record", authed(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MemberID         string  `json:"memberId"`
			Amount           float64 `json:"amount"`
			DurationInMonths int     `json:"durationInMonths"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		g.mu.Lock()
		defer g.mu.Unlock()
		if _, ok := g.find(body.MemberID); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Member not found"})
			return
		}
		g.payments[body.MemberID] = append([]paymentRecord{{
			Amount:           body.Amount,
			PaymentDate:      time.Now(),
			DurationInMonths: body.DurationInMonths,
			PaymentMethod:    "Cash",
		}}, g.payments[body.MemberID]...)
		renewal := time.Now().AddDate(0, body.DurationInMonths, 0)
		writeJSON(w, http.StatusOK, map[string]any{"newRenewalDate": renewal})
	}))

	mux.HandleFunc("/api/payments/history/", authed(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/payments/history/")
		g.mu.Lock()
		defer g.mu.Unlock()
		records := g.payments[id]
		if records == nil {
			records = []paymentRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	}))

	return mux
}

// testApp holds the running panel, the fake gym service, and Playwright handles.
type testApp struct {
	BaseURL string
	Gym     *gymAPI
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp starts a fake gym API, wires the panel against it, and
// launches a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	gym := newGymAPI()
	apiSrv := httptest.NewServer(gym.handler())
	t.Cleanup(apiSrv.Close)

	tmpDir := t.TempDir()
	db, err := storage.Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	settings := settingsStore.NewSQLiteStore(storage.NewTimedDB(db))
	holder := orchestrators.LoadTheme(context.Background(), settings)
	gate := orchestrators.RestoreSession(context.Background(), settings)
	client := backend.NewClient(apiSrv.URL, gate)

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	// Browsers fetch assets aggressively; keep the limiter out of the way
	web.RateLimitPerSecond = 1000

	mux := web.NewMux("static", &web.Ports{
		Backend:    client,
		Settings:   settings,
		Theme:      holder,
		Gate:       gate,
		Sender:     email.NewNoopSender(),
		ReportFrom: "GymDesk <reports@example.com>",
	})
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()
	t.Cleanup(func() { srv.Close() })

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
	})

	return &testApp{
		BaseURL: baseURL,
		Gym:     gym,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login navigates to the login page and logs in as the admin.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=username]").Fill(testAdminUser); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill(testAdminPass); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
