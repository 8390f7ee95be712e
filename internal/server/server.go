package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/balkashynov/punchcard/internal/attendance"
	"github.com/balkashynov/punchcard/internal/db"
)

// Server is the read-side query surface exposed to the presentation layer.
// It only reads from the store (plus the one explicit rename operation);
// all writes happen through the ingestion engine.
type Server struct {
	store *db.DB
	token string
	log   *slog.Logger
}

func New(store *db.DB, token string, log *slog.Logger) *Server {
	return &Server{store: store, token: token, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.auth)

	r.Get("/api/employees", s.listEmployees)
	r.Post("/api/employees/{employeeID}", s.renameEmployee)
	r.Get("/api/logs/{employeeID}", s.listPunches)
	r.Get("/api/attendance/{employeeID}", s.monthAttendance)

	return r
}

// auth requires the shared internal token on every request. An unset token
// refuses everything; this API is only for the local presentation layer.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Internal-Token")
		if s.token == "" || token != s.token {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.ListEmployees()
	if err != nil {
		s.log.Error("failed to list employees", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, employees)
}

func (s *Server) renameEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.store.RenameEmployee(employeeID, body.Name); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	s.log.Info("employee renamed", "employee", employeeID)
	writeJSON(w, map[string]bool{"ok": true})
}

// listPunches serves a single day with ?date=, a range with ?from=&to=,
// and every stored punch otherwise.
func (s *Server) listPunches(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	q := r.URL.Query()

	var (
		punches any
		err     error
	)
	switch {
	case q.Get("date") != "":
		punches, err = s.store.PunchesForDate(employeeID, q.Get("date"))
	case q.Get("from") != "" && q.Get("to") != "":
		punches, err = s.store.PunchesInRange(employeeID, q.Get("from"), q.Get("to"))
	default:
		punches, err = s.store.PunchesForEmployee(employeeID)
	}
	if err != nil {
		s.log.Error("failed to list punches", "employee", employeeID, "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, punches)
}

// monthAttendance derives day summaries for ?month=YYYY-MM (every calendar
// date of that month), or for every date the employee has punches when no
// month is given.
func (s *Server) monthAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month := r.URL.Query().Get("month")
	now := time.Now()

	if month != "" {
		from, to, err := attendance.MonthRange(month)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		byDate, err := s.store.PunchTimesByDate(employeeID, from, to)
		if err != nil {
			s.log.Error("failed to fetch punches", "employee", employeeID, "error", err)
			writeError(w, http.StatusInternalServerError, "query failed")
			return
		}

		summaries, err := attendance.MonthSummaries(month, byDate, now)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, summaries)
		return
	}

	byDate, err := s.store.PunchTimesByDate(employeeID, "", "")
	if err != nil {
		s.log.Error("failed to fetch punches", "employee", employeeID, "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	today := now.Format("2006-01-02")
	summaries := []attendance.DaySummary{}
	for _, date := range sortedDates(byDate) {
		summaries = append(summaries, attendance.DeriveDay(date, byDate[date], date < today))
	}
	writeJSON(w, summaries)
}

func sortedDates(byDate map[string][]string) []string {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	// ISO dates sort lexicographically
	sort.Strings(dates)
	return dates
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
