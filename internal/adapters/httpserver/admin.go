package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const adminCookie = "admin_token"

// requireAdmin is the session guard for every admin page: it runs before
// any data fetch, and any verification failure counts as no session.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(adminCookie)
	if err != nil || c.Value == "" {
		http.Redirect(w, r, "/admin/auth", http.StatusFound)
		return "", false
	}
	email, err := s.verifyAdminToken(c.Value)
	if err != nil {
		http.Redirect(w, r, "/admin/auth", http.StatusFound)
		return "", false
	}
	return email, true
}

func (s *Server) handleAdminAuth(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if c, err := r.Cookie(adminCookie); err == nil && c.Value != "" {
			if _, err := s.verifyAdminToken(c.Value); err == nil {
				http.Redirect(w, r, "/admin", http.StatusFound)
				return
			}
		}
		s.render(w, "admin_auth.html", map[string]any{
			"GoogleLogin": s.oauthCfg != nil,
		})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", 400)
			return
		}
		user := strings.TrimSpace(r.FormValue("user"))
		pass := strings.TrimSpace(r.FormValue("pass"))
		cfgUser := os.Getenv("ADMIN_USER")
		cfgPass := os.Getenv("ADMIN_PASS")
		if cfgUser == "" {
			cfgUser = "admin"
		}
		if cfgPass == "" {
			cfgPass = "admin123"
		}
		if !secureCompare(user, cfgUser) || !secureCompare(pass, cfgPass) {
			s.render(w, "admin_auth.html", map[string]any{
				"Error":       "Invalid credentials.",
				"User":        user,
				"GoogleLogin": s.oauthCfg != nil,
			})
			return
		}
		s.setAdminSession(w, r, user+"@local")
		http.Redirect(w, r, "/admin", http.StatusFound)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) setAdminSession(w http.ResponseWriter, r *http.Request, email string) {
	tok, _, err := s.issueAdminToken(email, 6*time.Hour)
	if err != nil {
		http.Error(w, "token", 500)
		return
	}
	secure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name: adminCookie, Value: tok, Path: "/", MaxAge: 60 * 60 * 6,
		HttpOnly: true, Secure: secure, SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	secure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name: adminCookie, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, Secure: secure, SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, "/admin/auth", http.StatusFound)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", 500)
		return
	}
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 300, HttpOnly: true})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", 500)
		return
	}
	q := r.URL.Query()
	c, _ := r.Cookie("oauth_state")
	if c == nil || c.Value == "" || c.Value != q.Get("state") {
		http.Error(w, "state", 400)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		http.Error(w, "oauth", 400)
		return
	}
	resp, err := s.oauthCfg.Client(r.Context(), tok).Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil || resp.StatusCode != 200 {
		log.Error().Err(err).Msg("oauth userinfo")
		http.Error(w, "userinfo", 400)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var info struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(body, &info)
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" {
		http.Error(w, "email", 400)
		return
	}
	if _, ok := s.adminAllowed[email]; !ok {
		http.Error(w, "forbidden", 403)
		return
	}
	s.setAdminSession(w, r, email)
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *Server) issueAdminToken(email string, dur time.Duration) (string, time.Time, error) {
	head := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	exp := time.Now().Add(dur)
	claims := map[string]any{"sub": email, "email": email, "role": "admin", "exp": exp.Unix(), "iat": time.Now().Unix(), "iss": "aurelia"}
	b, _ := json.Marshal(claims)
	pay := base64.RawURLEncoding.EncodeToString(b)
	unsigned := head + "." + pay
	h := hmac.New(sha256.New, s.adminSecret)
	h.Write([]byte(unsigned))
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return unsigned + "." + sig, exp, nil
}

func (s *Server) verifyAdminToken(tok string) (string, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("format")
	}
	unsigned := parts[0] + "." + parts[1]
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("sig")
	}
	h := hmac.New(sha256.New, s.adminSecret)
	h.Write([]byte(unsigned))
	if !hmac.Equal(sig, h.Sum(nil)) {
		return "", fmt.Errorf("signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("payload")
	}
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return "", fmt.Errorf("json")
	}
	role, _ := m["role"].(string)
	email, _ := m["email"].(string)
	expF, _ := m["exp"].(float64)
	if role != "admin" || email == "" {
		return "", fmt.Errorf("claims")
	}
	if time.Now().Unix() > int64(expF) {
		return "", fmt.Errorf("expired")
	}
	return email, nil
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
