package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
)

// AdminPasscodeHeader заголовок с паролем администратора
const AdminPasscodeHeader = "X-Admin-Passcode"

const msgAdminRequired = "admin passcode required"

// CheckPasscode сравнивает пароль за постоянное время
func CheckPasscode(got, want string) bool {
	return want != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// AdminAuth пропускает запрос только с верным X-Admin-Passcode
func AdminAuth(passcode string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !CheckPasscode(r.Header.Get(AdminPasscodeHeader), passcode) {
				handlers.RespondUnauthorized(w, msgAdminRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
