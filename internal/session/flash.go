package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "helpdesk_flash"

// Flash is a one-shot message shown on the page after a redirect.
type Flash struct {
	Kind    string `json:"kind"` // success | error
	Message string `json:"message"`
}

func SetFlash(w http.ResponseWriter, kind, msg string) {
	raw, _ := json.Marshal(Flash{Kind: kind, Message: msg})
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the pending flash, if any.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if json.Unmarshal(raw, &f) != nil || f.Message == "" {
		return nil
	}
	return &f
}
