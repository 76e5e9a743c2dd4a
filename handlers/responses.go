package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cryptowatch/crypto-sheets/table"
)

type message struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type missing struct {
	Error    string   `json:"error"`
	Message  string   `json:"message"`
	Kind     string   `json:"kind"`
	Required []string `json:"required"`
}

type failure struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message"`
	Hint      string `json:"hint,omitempty"`
	Timestamp string `json:"timestamp"`
}

type published struct {
	Success   bool                `json:"success"`
	Count     int                 `json:"count"`
	Coins     []map[string]string `json:"coins"`
	Timestamp string              `json:"timestamp"`
}

type rows struct {
	Success    bool                `json:"success"`
	Timestamp  string              `json:"timestamp"`
	SheetTitle string              `json:"sheet_title"`
	Coins      []map[string]string `json:"coins"`
	Alerts     []map[string]string `json:"alerts"`
	Count      int                 `json:"count"`
}

type live struct {
	Success     bool          `json:"success"`
	Coins       []table.Coin  `json:"coins"`
	Alerts      []table.Alert `json:"alerts"`
	LastUpdated string        `json:"lastUpdated"`
	Count       int           `json:"count"`
}

// preflight writes the CORS headers and answers OPTIONS and unsupported methods. It returns true
// if the request has been handled.
func preflight(w http.ResponseWriter, rq *http.Request, methods ...string) bool {
	allowed := append(append([]string{}, methods...), http.MethodOptions)

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", strings.Join(allowed, ", "))
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if rq.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}

	for _, m := range methods {
		if rq.Method == m {
			return false
		}
	}

	reply(w, http.StatusMethodNotAllowed, message{Error: "Method not allowed"})

	return true
}

func reply(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Error formatting response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(b)
}
