// Package backend is the HTTP client for the external gym-management API.
// All business logic (membership lifecycle, QR generation, attendance
// validation, renewal computation, statistics) lives behind this API; the
// panel only forwards input and renders what comes back.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/dashboard"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
)

// TokenSource supplies the bearer token for authenticated calls. The session
// gate implements it.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the gym backend. Every call is a single request: no
// retries, no caching, no deduplication.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

// NewClient creates a Client for the given base URL (e.g. http://localhost:5000).
// PRE: baseURL has no trailing slash; tokens may be nil for unauthenticated use
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// APIError is a non-2xx response from the backend, carrying the message field
// from the response body when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// ErrorMessage extracts the backend's message from err, falling back to the
// given string for transport failures or empty messages.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// messageBody is the error envelope the backend uses on failures.
type messageBody struct {
	Message string `json:"message"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// do sends the request and decodes a 2xx body into out (when non-nil). A
// non-2xx response becomes an *APIError with the body's message field.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg messageBody
		_ = json.Unmarshal(raw, &msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// --- Auth ---

// Login exchanges admin credentials for an opaque token.
// POST api/auth/login
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login failed: invalid response from server")
	}
	return out.Token, nil
}

// --- Dashboard ---

type renewalAlertDTO struct {
	MemberID    string    `json:"memberId"`
	Name        string    `json:"name"`
	RenewalDate time.Time `json:"renewalDate"`
}

type statsDTO struct {
	MemberStats struct {
		TotalMembers   int `json:"totalMembers"`
		ActiveMembers  int `json:"activeMembers"`
		ExpiredMembers int `json:"expiredMembers"`
	} `json:"memberStats"`
	FinancialStats struct {
		TotalMonthlyIncome float64 `json:"totalMonthlyIncome"`
	} `json:"financialStats"`
	AttendanceStats struct {
		DailyAttendanceCount int `json:"dailyAttendanceCount"`
	} `json:"attendanceStats"`
	Alerts struct {
		UpcomingRenewals []renewalAlertDTO `json:"upcomingRenewals"`
	} `json:"alerts"`
}

// DashboardStats fetches one aggregate snapshot.
// GET api/dashboard/stats
func (c *Client) DashboardStats(ctx context.Context) (dashboard.Stats, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/dashboard/stats", nil)
	if err != nil {
		return dashboard.Stats{}, err
	}
	var dto statsDTO
	if err := c.do(req, &dto); err != nil {
		return dashboard.Stats{}, err
	}

	stats := dashboard.Stats{
		MemberStats: dashboard.MemberStats{
			TotalMembers:   dto.MemberStats.TotalMembers,
			ActiveMembers:  dto.MemberStats.ActiveMembers,
			ExpiredMembers: dto.MemberStats.ExpiredMembers,
		},
		FinancialStats:  dashboard.FinancialStats{TotalMonthlyIncome: dto.FinancialStats.TotalMonthlyIncome},
		AttendanceStats: dashboard.AttendanceStats{DailyAttendanceCount: dto.AttendanceStats.DailyAttendanceCount},
	}
	for _, a := range dto.Alerts.UpcomingRenewals {
		stats.Alerts.UpcomingRenewals = append(stats.Alerts.UpcomingRenewals, dashboard.RenewalAlert{
			MemberID:    a.MemberID,
			Name:        a.Name,
			RenewalDate: a.RenewalDate,
		})
	}
	return stats, nil
}

// --- Members ---

type memberDTO struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	Contact        string  `json:"contact"`
	PlanType       string  `json:"planType"`
	CashAmountPaid float64 `json:"cashAmountPaid"`
}

func (d memberDTO) toDomain() member.Member {
	return member.Member{
		ID:             d.ID,
		Name:           d.Name,
		Age:            d.Age,
		Gender:         d.Gender,
		Contact:        d.Contact,
		PlanType:       d.PlanType,
		CashAmountPaid: d.CashAmountPaid,
	}
}

// RegisteredMember is the outcome of a successful registration: the
// server-assigned id and the QR code image (an opaque data URI).
type RegisteredMember struct {
	MemberID    string
	QRCodeImage string
}

// RegisterMember creates a new member.
// POST api/members/register
func (c *Client) RegisterMember(ctx context.Context, reg member.Registration) (RegisteredMember, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/members/register", map[string]any{
		"name":       reg.Name,
		"age":        reg.Age,
		"gender":     reg.Gender,
		"contact":    reg.Contact,
		"planType":   reg.PlanType,
		"cashAmount": reg.CashAmount,
	})
	if err != nil {
		return RegisteredMember{}, err
	}
	var out struct {
		Member struct {
			MemberID string `json:"memberId"`
		} `json:"member"`
		QRCodeImage string `json:"qrCodeImage"`
	}
	if err := c.do(req, &out); err != nil {
		return RegisteredMember{}, err
	}
	return RegisteredMember{MemberID: out.Member.MemberID, QRCodeImage: out.QRCodeImage}, nil
}

// ListMembers fetches every member.
// GET api/members
func (c *Client) ListMembers(ctx context.Context) ([]member.Member, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/members", nil)
	if err != nil {
		return nil, err
	}
	var dtos []memberDTO
	if err := c.do(req, &dtos); err != nil {
		return nil, err
	}
	members := make([]member.Member, 0, len(dtos))
	for _, d := range dtos {
		members = append(members, d.toDomain())
	}
	return members, nil
}

// UpdateMember submits the full edited record and returns the backend's
// updated copy.
// PUT api/members/{id}
func (c *Client) UpdateMember(ctx context.Context, m member.Member) (member.Member, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/api/members/"+m.ID, map[string]any{
		"name":           m.Name,
		"age":            m.Age,
		"gender":         m.Gender,
		"contact":        m.Contact,
		"planType":       m.PlanType,
		"cashAmountPaid": m.CashAmountPaid,
	})
	if err != nil {
		return member.Member{}, err
	}
	var out struct {
		UpdatedMember memberDTO `json:"updatedMember"`
	}
	if err := c.do(req, &out); err != nil {
		return member.Member{}, err
	}
	return out.UpdatedMember.toDomain(), nil
}

// DeleteMember removes a member.
// DELETE api/members/{id}
func (c *Client) DeleteMember(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/members/"+id, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// --- Attendance ---

// CheckIn submits a check-in attempt and classifies the response. Any HTTP
// response, success or failure, yields a classified ScanResult; only
// transport failures return an error.
// POST api/attendance/scan
func (c *Client) CheckIn(ctx context.Context, memberID string) (attendance.ScanResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/attendance/scan", map[string]string{
		"memberId": memberID,
	})
	if err != nil {
		return attendance.ScanResult{}, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return attendance.ScanResult{}, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Message string `json:"message"`
		Member  struct {
			Name string `json:"name"`
		} `json:"member"`
	}
	// A malformed body still classifies; the message just falls back.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return attendance.ScanResult{
		Outcome:    attendance.ClassifyScan(resp.StatusCode),
		Message:    body.Message,
		MemberName: body.Member.Name,
	}, nil
}

type attendanceRecordDTO struct {
	MemberID    string    `json:"memberId"`
	MemberName  string    `json:"memberName"`
	CheckInTime time.Time `json:"checkInTime"`
}

func toRecords(dtos []attendanceRecordDTO) []attendance.Record {
	records := make([]attendance.Record, 0, len(dtos))
	for _, d := range dtos {
		records = append(records, attendance.Record{
			MemberID:    d.MemberID,
			MemberName:  d.MemberName,
			CheckInTime: d.CheckInTime,
		})
	}
	return records
}

// AttendanceHistory fetches the recent check-in window. The backend has
// shipped two response shapes, a bare array and {"history": [...]}, so both
// are accepted and normalized.
// GET api/attendance/history
func (c *Client) AttendanceHistory(ctx context.Context) ([]attendance.Record, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/attendance/history", nil)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}

	var bare []attendanceRecordDTO
	if err := json.Unmarshal(raw, &bare); err == nil {
		return toRecords(bare), nil
	}
	var wrapped struct {
		History []attendanceRecordDTO `json:"history"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode attendance history: %w", err)
	}
	return toRecords(wrapped.History), nil
}

// --- Payments ---

// RecordPayment records a cash payment and returns the recomputed renewal date.
// POST api/payments/record
func (c *Client) RecordPayment(ctx context.Context, p payment.Request) (time.Time, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/payments/record", map[string]any{
		"memberId":         p.MemberID,
		"amount":           p.Amount,
		"durationInMonths": p.DurationInMonths,
	})
	if err != nil {
		return time.Time{}, err
	}
	var out struct {
		NewRenewalDate time.Time `json:"newRenewalDate"`
	}
	if err := c.do(req, &out); err != nil {
		return time.Time{}, err
	}
	return out.NewRenewalDate, nil
}

type paymentRecordDTO struct {
	Amount           float64   `json:"amount"`
	PaymentDate      time.Time `json:"paymentDate"`
	DurationInMonths int       `json:"durationInMonths"`
	PaymentMethod    string    `json:"paymentMethod"`
}

// PaymentHistory fetches all payments for one member, newest first.
// GET api/payments/history/{memberId}
func (c *Client) PaymentHistory(ctx context.Context, memberID string) ([]payment.Record, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/payments/history/"+memberID, nil)
	if err != nil {
		return nil, err
	}
	var dtos []paymentRecordDTO
	if err := c.do(req, &dtos); err != nil {
		return nil, err
	}
	records := make([]payment.Record, 0, len(dtos))
	for _, d := range dtos {
		records = append(records, payment.Record{
			Amount:           d.Amount,
			PaymentDate:      d.PaymentDate,
			DurationInMonths: d.DurationInMonths,
			PaymentMethod:    d.PaymentMethod,
		})
	}
	return records, nil
}
