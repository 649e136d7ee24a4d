package utils

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"promptvault-backend/config"
	"promptvault-backend/internal/models"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "session"

	// SessionDuration bounds both the JWT expiry and the cookie lifetime.
	SessionDuration = time.Hour * 72
)

// GenerateSessionToken signs a session payload for the given user. The
// payload is what the session middleware trusts on later requests.
func GenerateSessionToken(user models.User) (string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"username": user.Username,
		"user_id":  user.ID,
		"exp":      time.Now().Add(SessionDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

// ValidateSessionToken verifies the signature and expiry and returns the
// claims. Tampered or expired tokens fail here.
func ValidateSessionToken(tokenString string) (jwt.MapClaims, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// SetSessionCookie attaches the session token as an HTTP-only cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, int(SessionDuration.Seconds()), "/", "", false, true)
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
