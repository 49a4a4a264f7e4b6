package middleware

import (
	"net/http"

	"github.com/Bee-255/keu-backend-go/internal/domain/payroll"
	"github.com/Bee-255/keu-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// CallerRole extracts the role claim from the verified token. Handlers pass
// it as an explicit argument into every service call.
func CallerRole(r *http.Request) (payroll.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}

	role := payroll.Role(roleStr)
	if role != payroll.RoleOperator && role != payroll.RoleTreasurer {
		return "", false
	}
	return role, true
}
