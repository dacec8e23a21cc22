// Package web serves a small HTML page for the correction client: a text
// field, a Check button and a result region rendered on the server.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Alfex4936/corrector/corrector"
)

// Checker is the part of corrector.Client the page uses.
type Checker interface {
	Check(ctx context.Context, rawInput string) (*corrector.Result, error)
}

// Server holds the page handlers.
type Server struct {
	checker Checker
	log     *slog.Logger
}

// NewServer creates a Server. log may be nil.
func NewServer(c Checker, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{checker: c, log: log}
}

// Routes registers the handlers on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/check", s.CheckHandler)
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/", s.IndexHandler)
	return mux
}

// pageData feeds pageTemplate. Result is the only pre-escaped value: it
// comes from render.Display.HTML, which builds a DOM tree.
type pageData struct {
	Text    string
	Message string
	Result  template.HTML
}

// IndexHandler serves the empty page at GET /.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.page(w, http.StatusOK, pageData{})
}

// CheckHandler handles the form POST /check and re-renders the page with
// the result or a short error message.
func (s *Server) CheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	text := r.PostFormValue("text")
	data := pageData{Text: text}

	res, err := s.checker.Check(r.Context(), text)
	if err != nil {
		var ve *corrector.ValidationError
		if errors.As(err, &ve) {
			s.log.Debug("check rejected", "err", err)
		} else {
			s.log.Error("check failed", "err", err)
		}
		data.Message = corrector.UserMessage(err)
		s.page(w, http.StatusOK, data)
		return
	}
	data.Result = template.HTML(res.Display.HTML())
	s.page(w, http.StatusOK, data)
}

// HealthHandler handles GET /health requests
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "corrector",
	})
}

func (s *Server) page(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.Error("page template", "err", err)
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Corrector</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
  <h1>Corrector</h1>
  <form method="post" action="/check">
    <input type="text" name="text" value="{{.Text}}" placeholder="Type a word or sentence" autofocus>
    <button type="submit">Check</button>
  </form>
  <div id="result">
    {{- if .Message}}<p class="error">{{.Message}}</p>{{end -}}
    {{- .Result -}}
  </div>
</body>
</html>`))
