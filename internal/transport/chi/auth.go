package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// publicRoutes stay reachable for probes and scrapers without a token.
var publicRoutes = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware guards the /v1 API with static bearer tokens.
// No configured keys disables the check.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	tokens := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			tokens = append(tokens, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(tokens) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicRoutes[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, msg := bearerToken(r.Header.Get("Authorization"))
			if msg == "" && !knownToken(tokens, token) {
				msg = "invalid api key"
			}
			if msg != "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="prodsearch"`)
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the credential; the scheme is case-insensitive.
// A non-empty second result describes why the header was rejected.
func bearerToken(header string) ([]byte, string) {
	if header == "" {
		return nil, "missing authorization header"
	}
	scheme, cred, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return nil, "authorization header must use Bearer scheme"
	}
	cred = strings.TrimSpace(cred)
	if cred == "" {
		return nil, "empty bearer token"
	}
	return []byte(cred), ""
}

// knownToken compares against every key so timing does not reveal which matched.
func knownToken(tokens [][]byte, candidate []byte) bool {
	match := 0
	for _, t := range tokens {
		match |= subtle.ConstantTimeCompare(t, candidate)
	}
	return match == 1
}
