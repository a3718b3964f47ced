package httpwrap

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// HTTPError is returned for any response outside the 2xx range.
type HTTPError struct {
	URL        string
	Status     string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

func (e *HTTPError) Log() {
	logrus.WithFields(logrus.Fields{
		"url":     e.URL,
		"status":  e.Status,
		"content": string(e.Body),
	}).Error("Unexpected response status")
}
