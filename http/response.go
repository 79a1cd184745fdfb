package http

import "net/http"

// redirect sends a 303 See Other to location. Every redirect in the
// application uses 303 so a POST is always followed by a GET.
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
