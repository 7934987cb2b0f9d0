package fetcher

import "fmt"

// Feiltypene her er kontrakten oppover: runner avgjør jobbstatus og
// feilmelding ut fra hvilken type som kommer tilbake.

// ValidationError er ugyldig input (token-form, URL-form) og oppstår
// alltid før noe nettverkskall.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthError er 401/403 fra GitHub, etter at fallback til uautentisert
// kall også har feilet.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("GitHub avviste forespørselen: status %d", e.Status)
}

// NotFoundError er 404 – repoet finnes ikke, eller er privat uten
// tilgang.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fant ikke %s", e.Resource)
}

// RateLimitError betyr at kvoten er brukt opp. Vi venter aldri selv –
// brukeren må prøve igjen senere.
type RateLimitError struct {
	Reset int64 // unix-tid fra X-RateLimit-Reset, 0 hvis ukjent
}

func (e *RateLimitError) Error() string {
	return "GitHub rate limit er brukt opp"
}

// NetworkError er transportfeil (DNS, timeout, brutt forbindelse).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("nettverksfeil mot GitHub: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
