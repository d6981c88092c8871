package api

import "net/http"

func RootHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, DefaultResponse{Message: "Home"})
}
