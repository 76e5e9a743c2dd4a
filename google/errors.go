package google

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// Explain turns the errors users actually hit into something they can act on. Anything else is
// returned as is.
func Explain(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden {
		return "Service account lacks permission to access the spreadsheet."
	}

	switch {
	case strings.Contains(msg, "DECODER routines"),
		strings.Contains(msg, "private key should be a PEM"),
		strings.Contains(msg, "private key is invalid"):
		return "Private key decoding failed. Please check your private key format."

	case strings.Contains(msg, "No permission"),
		strings.Contains(msg, "PERMISSION_DENIED"):
		return "Service account lacks permission to access the spreadsheet."
	}

	return msg
}
