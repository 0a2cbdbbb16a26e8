package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"postboard/internal/common/clock"
	"postboard/internal/common/crypto"
)

const CookieName = "session"

// Claims is the parsed session token payload.
type Claims struct {
	UserID   string
	Username string
	JTI      string
	ExpireAt time.Time
}

// Codec issues and parses signed session tokens.
type Codec struct {
	secret      []byte
	ttl         time.Duration
	idGenerator crypto.IDGenerator
	clock       clock.Clock
}

func NewCodec(secret string, ttl time.Duration, idGenerator crypto.IDGenerator, clk clock.Clock) *Codec {
	return &Codec{
		secret:      []byte(secret),
		ttl:         ttl,
		idGenerator: idGenerator,
		clock:       clk,
	}
}

func (c *Codec) Issue(userID string, username string) (string, Claims, error) {
	jti, err := c.idGenerator.NewID()
	if err != nil {
		return "", Claims{}, err
	}

	now := c.clock.Now()
	expiresAt := now.Add(c.ttl)
	claims := jwt.MapClaims{
		"sub": userID,
		"usr": username,
		"jti": jti,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(c.secret)
	if err != nil {
		return "", Claims{}, err
	}

	return tokenString, Claims{
		UserID:   userID,
		Username: username,
		JTI:      jti,
		ExpireAt: expiresAt,
	}, nil
}

func (c *Codec) Parse(tokenString string) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.clock.Now))
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["usr"].(string)
	jti, _ := mapClaims["jti"].(string)
	if sub == "" || username == "" || jti == "" {
		return Claims{}, errors.New("missing sub, usr or jti claims")
	}

	var expiresAt time.Time
	if exp, ok := mapClaims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return Claims{
		UserID:   sub,
		Username: username,
		JTI:      jti,
		ExpireAt: expiresAt,
	}, nil
}

func SetCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	if token == "" {
		return
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	}

	http.SetCookie(w, cookie)
}

func ClearCookie(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	}

	http.SetCookie(w, cookie)
}
