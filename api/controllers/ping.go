package controllers

import (
	"net/http"

	"github.com/angelmondragon/rentledger-backend/api/middleware"
	"github.com/angelmondragon/rentledger-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if identity := middleware.IdentityFromContext(r.Context()); identity != "" {
			payload["identity"] = identity
		}
		responses.WriteSuccess(w, payload)
	}
}
