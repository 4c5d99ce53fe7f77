package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/prepworks/satprep/internal/platform/config"
)

// Auth implements the session-cookie auth flow: email verification codes
// for first contact, optional passwords afterwards. Session tokens are
// random; only their sha256 hash is stored.
type Auth struct {
	store          Store
	codes          CodeStore
	cookieName     string
	sessionTTL     time.Duration
	codeTTL        time.Duration
	allowPasswords bool
}

// NewAuth wires the auth flow from configuration.
func NewAuth(store Store, codes CodeStore, cfg config.AuthConfig) *Auth {
	return &Auth{
		store:          store,
		codes:          codes,
		cookieName:     cfg.CookieName,
		sessionTTL:     time.Duration(cfg.SessionTTL) * time.Hour,
		codeTTL:        time.Duration(cfg.CodeTTL) * time.Minute,
		allowPasswords: cfg.AllowPasswords,
	}
}

// HandleSendCode issues a verification code for an email address. The
// response does not reveal whether the account already exists.
func (a *Auth) HandleSendCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	email, err := normalizeEmail(body.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "valid email required")
		return
	}

	code, err := randomDigits(6)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "code generation failed")
		return
	}
	if err := a.codes.PutCode(r.Context(), email, code, a.codeTTL); err != nil {
		slog.Error("storing verification code failed", "error", err)
		writeError(w, http.StatusInternalServerError, "code storage failed")
		return
	}

	// Delivery is a deployment concern (SMTP sidecar reads this log in
	// dev); the code never goes back in the response.
	slog.Info("verification code issued", "email", email)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleVerifyCode redeems a verification code, creating the account on
// first use, and starts a session.
func (a *Auth) HandleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	email, err := normalizeEmail(body.Email)
	if err != nil || strings.TrimSpace(body.Code) == "" {
		writeError(w, http.StatusBadRequest, "email and code required")
		return
	}

	stored, err := a.codes.TakeCode(r.Context(), email)
	if err != nil || subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(body.Code))) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}

	user, err := a.store.UpsertUser(r.Context(), email)
	if err != nil {
		slog.Error("upserting user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "account error")
		return
	}

	a.startSession(w, r, user)
}

// HandleLogin authenticates an email + password pair.
func (a *Auth) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !a.allowPasswords {
		writeError(w, http.StatusForbidden, "password login disabled")
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	email, err := normalizeEmail(body.Email)
	if err != nil || body.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	userID, hash, err := a.store.Credentials(r.Context(), email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	a.startSession(w, r, User{ID: userID, Email: email})
}

// HandleSetPassword stores a password for the authenticated account so
// later logins can skip the verification-code flow.
func (a *Auth) HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	if !a.allowPasswords {
		writeError(w, http.StatusForbidden, "password login disabled")
		return
	}
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil || len(body.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password of at least 8 characters required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hashing failed")
		return
	}
	if err := a.store.SetPassword(r.Context(), user.ID, string(hash)); err != nil {
		slog.Error("setting password failed", "error", err)
		writeError(w, http.StatusInternalServerError, "account error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleLogout deletes the current session.
func (a *Auth) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(a.cookieName); err == nil && cookie.Value != "" {
		_ = a.store.DeleteSession(r.Context(), hashToken(cookie.Value))
	}
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleUser reports the current session's account, if any.
func (a *Auth) HandleUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.authenticate(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": user})
}

// Require rejects requests without a valid session and stores the account
// on the request context.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (a *Auth) authenticate(r *http.Request) (User, error) {
	cookie, err := r.Cookie(a.cookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return User{}, fmt.Errorf("no session cookie")
	}
	return a.store.UserBySession(r.Context(), hashToken(cookie.Value))
}

func (a *Auth) startSession(w http.ResponseWriter, r *http.Request, user User) {
	token, err := randomToken(32)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}
	expiresAt := time.Now().Add(a.sessionTTL)
	if err := a.store.CreateSession(r.Context(), hashToken(token), user.ID, expiresAt); err != nil {
		slog.Error("creating session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(a.sessionTTL.Seconds()),
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": user})
}

type userContextKey struct{}

func withUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// UserFromContext returns the authenticated account stored by Require.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userContextKey{}).(User)
	return u, ok
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("invalid email: %w", err)
	}
	return email, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomToken(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
