package httpapi

import (
	"net/http"
	"slices"
)

// LangsResponse lists the language codes guilds may pick.
type LangsResponse struct {
	Langs []string `json:"langs"`
}

// LangsHandler serves the configured languages. The list is copied, so
// later changes to langs are not visible.
func LangsHandler(langs []string) http.HandlerFunc {
	body := LangsResponse{Langs: slices.Clone(langs)}
	if body.Langs == nil {
		body.Langs = []string{}
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, body)
	}
}
