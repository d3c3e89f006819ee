package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/blogem/weblog/authenticator"
	"github.com/blogem/weblog/models"
)

// RequireToken rejects requests without a valid bearer token
// If the token is missing or invalid, responds with 401 and a JSON body
func RequireToken(decoder authenticator.TokenDecoder, header, prefix string, logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := authenticator.ExtractToken(r.Header.Get(header), prefix)
			if token == "" {
				unauthorized(w, "missing token")
				return
			}

			if _, err := decoder.Subject(r.Context(), token); err != nil {
				logger.WithError(err).WithField("path", r.URL.Path).Debug("rejected token")
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.CommonResult{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
