package session

import (
	"testing"
	"time"

	"postboard/internal/common/clock"
	"postboard/internal/common/crypto"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(clk clock.Clock) *Codec {
	return NewCodec(testSecret, 24*time.Hour, crypto.NewUUIDGenerator(), clk)
}

func TestCodec_IssueAndParse(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	codec := newTestCodec(clk)

	token, issued, err := codec.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if issued.JTI == "" {
		t.Fatal("issued claims missing jti")
	}

	parsed, err := codec.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if parsed.UserID != "user-1" {
		t.Errorf("expected user id user-1, got %q", parsed.UserID)
	}
	if parsed.Username != "alice" {
		t.Errorf("expected username alice, got %q", parsed.Username)
	}
	if parsed.JTI != issued.JTI {
		t.Errorf("jti changed across parse: %q vs %q", parsed.JTI, issued.JTI)
	}
}

func TestCodec_ExpiredToken(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	codec := newTestCodec(clk)

	token, _, err := codec.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	clk.Advance(25 * time.Hour)

	if _, err := codec.Parse(token); err == nil {
		t.Error("expected parse of expired token to fail")
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	codec := newTestCodec(clk)

	token, _, err := codec.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	other := NewCodec("ffffffffffffffffffffffffffffffff", 24*time.Hour, crypto.NewUUIDGenerator(), clk)
	if _, err := other.Parse(token); err == nil {
		t.Error("expected parse with a different secret to fail")
	}
}

func TestCodec_GarbageToken(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	codec := newTestCodec(clk)

	if _, err := codec.Parse("not.a.token"); err == nil {
		t.Error("expected parse of garbage to fail")
	}
}
