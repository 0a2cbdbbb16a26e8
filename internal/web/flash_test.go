package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlash_RoundTrip(t *testing.T) {
	setRec := httptest.NewRecorder()
	SetFlash(setRec, httptest.NewRequest(http.MethodPost, "/register", nil), "Account created", "success")

	cookies := setRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SetFlash did not set a cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	popRec := httptest.NewRecorder()
	flash, ok := PopFlash(popRec, req)
	if !ok {
		t.Fatal("PopFlash did not find the flash")
	}
	if flash.Message != "Account created" || flash.Category != "success" {
		t.Errorf("unexpected flash %+v", flash)
	}

	var cleared bool
	for _, c := range popRec.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("PopFlash must clear the cookie")
	}
}

func TestPopFlash_NoCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, ok := PopFlash(rec, httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Error("expected no flash without a cookie")
	}
}
