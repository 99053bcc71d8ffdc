package middleware

import (
	"net/http"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/employee"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/handler/http/response"
)

// RequireHR gates administrative attendance, schedule and office endpoints to
// HR staff.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := employee.Role(Role(r.Context()))
		if !role.IsHR() {
			response.Forbidden(w, "HR access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
