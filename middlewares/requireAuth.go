package middlewares

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/davidwere/sokoni-api/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey = "userId"
	CtxClaimsKey = "user"
)

// RequireAuth validates the bearer token (signature, expiry, issuer,
// audience) and stores the numeric user id plus raw claims on the request
// context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header"})
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(parts[1]),
			func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			},
			jwt.WithIssuer(cfg.JWTIssuer),
			jwt.WithAudience(cfg.JWTAudience),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		userID, err := subjectUserID(claims["sub"])
		if err != nil || userID == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		ctx.Set(CtxUserIDKey, userID)
		ctx.Set(CtxClaimsKey, claims)
		ctx.Next()
	}
}

// The subject claim is numeric but arrives as float64 after JSON decoding.
func subjectUserID(v any) (uint, error) {
	switch sub := v.(type) {
	case float64:
		if sub < 0 {
			return 0, errors.New("negative subject")
		}
		return uint(sub), nil
	case string:
		id, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(id), nil
	default:
		return 0, errors.New("invalid subject claim")
	}
}
