package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	registerHandler(w, r)
}
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	loginHandler(w, r)
}
func AdminLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	adminLoginHandler(w, r)
}
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logoutHandler(w, r)
}
func RequestPasswordReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestResetHandler(w, r)
}
func ConfirmPasswordReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	confirmResetHandler(w, r)
}
