package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AuthTokenCookieName = "auth_token"

func parseToken(c *gin.Context, jwtSecret string) (jwt.MapClaims, error) {
	var tokenString string

	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		bearerToken := strings.SplitN(authHeader, " ", 2)
		if len(bearerToken) == 2 && strings.EqualFold(bearerToken[0], "Bearer") {
			tokenString = strings.TrimSpace(bearerToken[1])
		}
	}

	if tokenString == "" {
		if cookieToken, err := c.Cookie(AuthTokenCookieName); err == nil {
			tokenString = strings.TrimSpace(cookieToken)
		}
	}

	if tokenString == "" {
		return nil, fmt.Errorf("authorization credentials required")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// AuthMiddleware guards admin routes. The blog has a single identity, so
// a valid token is by definition the site owner.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if id, ok := claims["admin_id"].(float64); ok {
			c.Set("admin_id", uint(id))
		}
		if username, ok := claims["username"].(string); ok {
			c.Set("username", username)
		}
		c.Set("is_admin", true)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the identity on public routes where
// behavior differs for the admin (comment self-moderation bypass) but
// anonymous access is still allowed.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseToken(c, jwtSecret); err == nil {
			if id, ok := claims["admin_id"].(float64); ok {
				c.Set("admin_id", uint(id))
			}
			if username, ok := claims["username"].(string); ok {
				c.Set("username", username)
			}
			c.Set("is_admin", true)
		}

		c.Next()
	}
}
