package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"gymdesk/internal/adapters/backend"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/dashboard"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
	"gymdesk/internal/domain/report"
	"gymdesk/internal/domain/view"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// templatesDir is resolved relative to the working directory. The server
// runs from the repo root; package tests point this at the local dir.
var templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data map[string]any) {
	_, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn": func() bool { return loggedIn },
		"csrfToken":  func() string { return csrf.Token(r) },
		"themeClass": func() string {
			if ports.Theme.Current().IsDark() {
				return "dark"
			}
			return ""
		},
		"navViews": view.All,
		"inr":      dashboard.FormatINR,
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleIndex redirects the root to the default view.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, view.Default.Path(), http.StatusSeeOther)
}

// --- Auth ---

// handleLogin handles GET (form) and POST (credential exchange) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, go straight to the dashboard
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, view.Default.Path(), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{"Username": ""})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}
		deps := orchestrators.LoginDeps{
			Backend:  ports.Backend,
			Settings: ports.Settings,
			Gate:     ports.Gate,
		}

		if err := orchestrators.ExecuteLogin(r.Context(), input, deps); err != nil {
			msg := backend.ErrorMessage(err, "Login failed. Please try again.")
			if err == orchestrators.ErrMissingCredentials {
				msg = "Please enter username and password."
			}
			renderTemplate(w, r, "login.html", map[string]any{
				"Error":    msg,
				"Username": input.Username,
			})
			return
		}

		token, err := sessions.Create()
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, view.Default.Path(), http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token, ok := middleware.SessionToken(r); ok {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)

	orchestrators.ExecuteLogout(r.Context(), orchestrators.LogoutDeps{
		Settings: ports.Settings,
		Gate:     ports.Gate,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// --- Theme ---

// handleThemeToggle handles POST /theme/toggle and bounces back to the
// page the toggle was pressed on.
func handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	orchestrators.ExecuteToggleTheme(r.Context(), orchestrators.ToggleThemeDeps{
		Holder:   ports.Theme,
		Settings: ports.Settings,
	})

	target := r.FormValue("redirect")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		target = view.Default.Path()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// --- Dashboard ---

// handleDashboard handles GET /dashboard.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data := map[string]any{"Active": view.Dashboard}
	switch r.URL.Query().Get("report") {
	case "sent":
		data["Flash"] = "Report sent."
	case "failed":
		data["FlashError"] = "Could not send the report."
	}

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{Backend: ports.Backend})
	if err != nil {
		data["Error"] = backend.ErrorMessage(err, "Could not load dashboard stats.")
		renderTemplate(w, r, "dashboard.html", data)
		return
	}

	data["Stats"] = result.Stats
	renderTemplate(w, r, "dashboard.html", data)
}

// buildReport fetches a fresh snapshot and builds the report document.
func buildReport(r *http.Request) (report.Document, error) {
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{Backend: ports.Backend})
	if err != nil {
		return report.Document{}, err
	}
	return report.Build(result.Stats, timeNow()), nil
}

// handleReportDownload handles GET /dashboard/report.
func handleReportDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	doc, err := buildReport(r)
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename()+`"`)
	w.Write([]byte(doc.Body))
}

// handleReportPreview handles GET /dashboard/report/preview.
func handleReportPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	doc, err := buildReport(r)
	if err != nil {
		internalError(w, err)
		return
	}
	html, err := doc.HTML()
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "report_preview.html", map[string]any{
		"Active": view.Dashboard,
		"Title":  doc.Title,
		// The fragment comes from goldmark over panel-built Markdown, not
		// from user input.
		"Report": template.HTML(html),
	})
}

// handleReportEmail handles POST /dashboard/report/email.
func handleReportEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	doc, err := buildReport(r)
	if err != nil {
		http.Redirect(w, r, "/dashboard?report=failed", http.StatusSeeOther)
		return
	}

	err = orchestrators.ExecuteEmailReport(r.Context(), orchestrators.EmailReportInput{
		To:       r.FormValue("to"),
		Document: doc,
	}, orchestrators.EmailReportDeps{Sender: ports.Sender, From: ports.ReportFrom})
	if err != nil {
		http.Redirect(w, r, "/dashboard?report=failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard?report=sent", http.StatusSeeOther)
}

// --- Registration ---

// registrationFormData rebuilds the add-member form, keeping entered values.
func registrationFormData(reg member.Registration) map[string]any {
	return map[string]any{
		"Active":    view.AddMember,
		"Form":      reg,
		"Genders":   member.Genders(),
		"PlanTypes": member.PlanTypes(),
	}
}

// parseRegistrationForm coerces the form fields. Numeric coercion failures
// are reported as field errors, the way the browser-side panel rejected them.
func parseRegistrationForm(r *http.Request) (member.Registration, string) {
	reg := member.Registration{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Gender:   r.FormValue("gender"),
		Contact:  strings.TrimSpace(r.FormValue("contact")),
		PlanType: r.FormValue("planType"),
	}

	age, err := strconv.Atoi(strings.TrimSpace(r.FormValue("age")))
	if err != nil {
		return reg, "Age must be a number."
	}
	reg.Age = age

	cash, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("cashAmount")), 64)
	if err != nil {
		return reg, "Cash amount must be a number."
	}
	reg.CashAmount = cash

	return reg, ""
}

// handleAddMember handles GET (form) and POST (register) for /members/new.
func handleAddMember(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "register_member.html", registrationFormData(member.Defaults()))
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		reg, fieldErr := parseRegistrationForm(r)
		if fieldErr != "" {
			data := registrationFormData(reg)
			data["Error"] = fieldErr
			renderTemplate(w, r, "register_member.html", data)
			return
		}

		result, err := orchestrators.ExecuteRegisterMember(r.Context(), orchestrators.RegisterMemberInput{Registration: reg},
			orchestrators.RegisterMemberDeps{Backend: ports.Backend})
		if err != nil {
			data := registrationFormData(reg)
			data["Error"] = backend.ErrorMessage(err, err.Error())
			renderTemplate(w, r, "register_member.html", data)
			return
		}

		renderTemplate(w, r, "register_member.html", map[string]any{
			"Active": view.AddMember,
			"Registered": map[string]any{
				"MemberID": result.MemberID,
				// QR codes arrive as data URIs; template.URL keeps the
				// contextual escaper from rewriting the scheme.
				"QRCodeImage": template.URL(result.QRCodeImage),
			},
			"Name": reg.Name,
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// --- Scanner ---

// scannerData rebuilds the scanner page with a fresh history window.
func scannerData(r *http.Request) map[string]any {
	history := projections.QueryGetAttendanceHistory(r.Context(), projections.GetAttendanceHistoryDeps{Backend: ports.Backend})
	return map[string]any{
		"Active":    view.Scanner,
		"History":   history.Records,
		"ScannedID": "",
	}
}

// handleScanner handles GET (form + history) and POST (scan) for /scanner.
func handleScanner(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "scanner.html", scannerData(r))
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		memberID := strings.TrimSpace(r.FormValue("memberId"))
		result, err := orchestrators.ExecuteCheckInMember(r.Context(), orchestrators.CheckInMemberInput{MemberID: memberID},
			orchestrators.CheckInMemberDeps{Backend: ports.Backend})

		data := scannerData(r)
		if err != nil {
			data["Error"] = "Please enter a member ID."
			renderTemplate(w, r, "scanner.html", data)
			return
		}

		// The input clears after every attempt so the next scan can start
		// immediately.
		data["Result"] = result
		renderTemplate(w, r, "scanner.html", data)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// --- Payments ---

// paymentsData rebuilds the payments page around one searched member.
func paymentsData(r *http.Request, memberID string) map[string]any {
	history := projections.QueryGetPaymentHistory(r.Context(),
		projections.GetPaymentHistoryQuery{MemberID: memberID},
		projections.GetPaymentHistoryDeps{Backend: ports.Backend})
	return map[string]any{
		"Active":    view.Payment,
		"History":   history,
		"Durations": payment.AllowedDurations,
	}
}

// handlePayments handles GET (form + history search) and POST (record) for
// /payments. The searched member rides in the ?member query param.
func handlePayments(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "payments.html", paymentsData(r, strings.TrimSpace(r.URL.Query().Get("member"))))
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		memberID := strings.TrimSpace(r.FormValue("memberId"))

		amount, amountErr := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
		months, monthsErr := strconv.Atoi(r.FormValue("duration"))
		if amountErr != nil || monthsErr != nil {
			// History is only fetched on search or a successful record,
			// so the failure branch keeps the panel unsearched.
			data := paymentsData(r, "")
			data["Error"] = "Amount and duration must be numbers."
			data["FormMemberID"] = memberID
			renderTemplate(w, r, "payments.html", data)
			return
		}

		req := payment.Request{MemberID: memberID, Amount: amount, DurationInMonths: months}
		result, err := orchestrators.ExecuteRecordPayment(r.Context(), orchestrators.RecordPaymentInput{Request: req},
			orchestrators.RecordPaymentDeps{Backend: ports.Backend})
		if err != nil {
			data := paymentsData(r, "")
			data["Error"] = backend.ErrorMessage(err, err.Error())
			data["FormMemberID"] = memberID
			renderTemplate(w, r, "payments.html", data)
			return
		}

		// Re-fetch the history after recording so the new payment shows up.
		data := paymentsData(r, memberID)
		data["Recorded"] = map[string]any{
			"MemberID":   memberID,
			"Amount":     dashboard.FormatINR(amount),
			"RenewalDue": result.NewRenewalDate.Local().Format("Mon Jan 2 2006"),
		}
		renderTemplate(w, r, "payments.html", data)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// --- Member list ---

func memberListData(members []member.Member, editingID, confirmingID string) map[string]any {
	return map[string]any{
		"Active":       view.Members,
		"Members":      members,
		"EditingID":    editingID,
		"ConfirmingID": confirmingID,
		"Genders":      member.Genders(),
		"PlanTypes":    member.PlanTypes(),
	}
}

// handleMembers handles GET /members. The ?edit query param opens the
// inline edit row for at most one member; ?delete opens the delete
// confirmation row the same way.
func handleMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListDeps{Backend: ports.Backend})
	if err != nil {
		data := memberListData(nil, "", "")
		data["Error"] = backend.ErrorMessage(err, "Could not load members.")
		renderTemplate(w, r, "members.html", data)
		return
	}

	q := r.URL.Query()
	renderTemplate(w, r, "members.html", memberListData(result.Members, q.Get("edit"), q.Get("delete")))
}

func memberID(m member.Member) string { return m.ID }

// parseMemberForm coerces the inline edit row into a full member record.
func parseMemberForm(r *http.Request) (member.Member, string) {
	m := member.Member{
		ID:       r.FormValue("id"),
		Name:     strings.TrimSpace(r.FormValue("name")),
		Gender:   r.FormValue("gender"),
		Contact:  strings.TrimSpace(r.FormValue("contact")),
		PlanType: r.FormValue("planType"),
	}

	age, err := strconv.Atoi(strings.TrimSpace(r.FormValue("age")))
	if err != nil {
		return m, "Age must be a number."
	}
	m.Age = age

	cash, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("cashAmountPaid")), 64)
	if err != nil {
		return m, "Cash amount must be a number."
	}
	m.CashAmountPaid = cash

	return m, ""
}

// handleMemberUpdate handles POST /members/update. The row is swapped in
// the already-fetched list rather than re-fetching the roster.
func handleMemberUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	list, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListDeps{Backend: ports.Backend})
	if err != nil {
		internalError(w, err)
		return
	}

	edited, fieldErr := parseMemberForm(r)
	if fieldErr != "" {
		data := memberListData(list.Members, edited.ID, "")
		data["Error"] = fieldErr
		renderTemplate(w, r, "members.html", data)
		return
	}

	updated, err := orchestrators.ExecuteUpdateMember(r.Context(), orchestrators.UpdateMemberInput{Member: edited},
		orchestrators.UpdateMemberDeps{Backend: ports.Backend})
	if err != nil {
		data := memberListData(list.Members, edited.ID, "")
		data["Error"] = backend.ErrorMessage(err, err.Error())
		renderTemplate(w, r, "members.html", data)
		return
	}

	members := listutil.ReplaceByID(list.Members, updated.ID, updated, memberID)
	renderTemplate(w, r, "members.html", memberListData(members, "", ""))
}

// handleMemberDelete handles POST /members/delete. A submission without
// the confirmed field re-renders the confirmation row instead of deleting,
// so a single click can never remove a member. On success the row is
// dropped from the already-fetched list rather than re-fetching the roster.
func handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	list, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListDeps{Backend: ports.Backend})
	if err != nil {
		internalError(w, err)
		return
	}

	id := r.FormValue("id")
	if r.FormValue("confirmed") == "" {
		renderTemplate(w, r, "members.html", memberListData(list.Members, "", id))
		return
	}

	if err := orchestrators.ExecuteDeleteMember(r.Context(), orchestrators.DeleteMemberInput{MemberID: id},
		orchestrators.DeleteMemberDeps{Backend: ports.Backend}); err != nil {
		data := memberListData(list.Members, "", "")
		data["Error"] = backend.ErrorMessage(err, err.Error())
		renderTemplate(w, r, "members.html", data)
		return
	}

	members := listutil.RemoveByID(list.Members, id, memberID)
	renderTemplate(w, r, "members.html", memberListData(members, "", ""))
}
