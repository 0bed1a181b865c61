package middleware

import (
	"net"
	"net/http"

	"healthcare-booking/pkg/utils"
)

// ClientInfo records the caller's IP address and user agent on the context.
// It expects chi's RealIP to have run first.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := utils.SetClientContext(r.Context(), utils.ClientInfo{
			UserAgent: r.UserAgent(),
			IPAddress: clientIP(r),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
