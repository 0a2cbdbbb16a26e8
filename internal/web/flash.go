package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const flashCookieName = "flash"

// Flash is a one-shot message carried across a redirect in a short-lived
// cookie; reading it clears it.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

func SetFlash(w http.ResponseWriter, r *http.Request, message string, category string) {
	payload, err := json.Marshal(Flash{Message: message, Category: category})
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

func PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return Flash{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Flash{}, false
	}

	var flash Flash
	if err := json.Unmarshal(payload, &flash); err != nil {
		return Flash{}, false
	}
	return flash, true
}
