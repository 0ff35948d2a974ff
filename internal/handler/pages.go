package handler

import (
	"html/template"
	"net/http"
)

// PageHandler serves the small HTML shells around the onboarding flow.
// The wizard itself lives in internal/wizard and is driven over the API
// (see cmd/onboard); these pages cover browser entry points.
type PageHandler struct {
	tmpl *template.Template
}

func NewPageHandler() *PageHandler {
	return &PageHandler{tmpl: template.Must(template.New("pages").Parse(pageTemplates))}
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", nil)
}

func (h *PageHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	h.render(w, "onboarding", nil)
}

func (h *PageHandler) Success(w http.ResponseWriter, r *http.Request) {
	h.render(w, "success", nil)
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

const pageTemplates = `
{{define "login"}}<!doctype html>
<html><head><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
<form id="login">
  <input name="email" type="email" placeholder="Email" required>
  <input name="password" type="password" placeholder="Password" required>
  <button type="submit">Sign in</button>
</form>
<script>
document.getElementById("login").addEventListener("submit", async (e) => {
  e.preventDefault();
  const f = new FormData(e.target);
  const res = await fetch("/api/auth/login", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({email: f.get("email"), password: f.get("password")}),
  });
  if (res.ok) { window.location.href = "/onboarding"; }
});
</script>
</body></html>{{end}}

{{define "onboarding"}}<!doctype html>
<html><head><title>Client Onboarding</title></head>
<body>
<h1>Client Onboarding</h1>
<p>Complete the three steps below. Your progress is kept until you submit.</p>
<p>Step 1: client name &middot; Step 2: email and details &middot; Step 3: attachments and submit.</p>
<p>Submit via the API at <code>POST /api/form</code>, upload attachments at <code>POST /api/upload</code>.</p>
</body></html>{{end}}

{{define "success"}}<!doctype html>
<html><head><title>Submission Successful</title></head>
<body>
<h1>Submission Successful!</h1>
<p>Thank you for completing the onboarding process.</p>
<a href="/">Return to Home</a>
</body></html>{{end}}
`
