package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
)

type ctxKey int

const adminIDKey ctxKey = iota

// AdminIDFromContext идентификатор администратора, установленный AdminAuth
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey).(string)
	return id, ok && id != ""
}

// WithAdminID кладет идентификатор администратора в контекст
func WithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// AdminAuth проверяет HS256 bearer токен; sub токена становится идентификатором администратора
func AdminAuth(secret string, logger Logger) func(http.Handler) http.Handler {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				logger.Warn("AdminAuth: missing bearer token on %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w)
				return
			}

			claims := &jwt.RegisteredClaims{}
			token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
				return key, nil
			})
			if err != nil || !token.Valid {
				logger.Warn("AdminAuth: invalid token on %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w)
				return
			}

			if claims.Subject == "" {
				logger.Warn("AdminAuth: token without subject on %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdminID(r.Context(), claims.Subject)))
		})
	}
}

// CronAuth пропускает только запросы с Authorization: Bearer <secret>
func CronAuth(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok || secret == "" || subtle.ConstantTimeCompare([]byte(raw), []byte(secret)) != 1 {
				logger.Warn("CronAuth: rejected %s %s from %s", r.Method, r.URL.Path, ClientIP(r))
				handlers.RespondUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IssueAdminToken подписывает токен администратора (используется в тестах и утилитах)
func IssueAdminToken(secret, adminID string, claims jwt.RegisteredClaims) (string, error) {
	if adminID == "" {
		return "", errors.New("admin id is required")
	}
	claims.Subject = adminID
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
