package domain

import "net/http"

// Doer sends HTTP requests. *http.Client satisfies it; tests substitute their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
