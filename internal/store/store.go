// Package store er nøkkel/verdi-lagringen bak pipelinen: aktivt token,
// jobbhistorikk, egendefinerte maler og brukerinnstillinger. Verdiene
// er JSON-dokumenter.
package store

import "fmt"

// Faste nøkler. Fravær av en nøkkel betyr tom tilstand.
const (
	KeyToken           = "token"
	KeyJobs            = "jobs"
	KeyCustomTemplates = "custom_templates"
	KeySettings        = "settings"
)

// Store er en enkel persistert nøkkel/verdi-butikk.
type Store interface {
	// Get returnerer (nil, nil) når nøkkelen ikke finnes.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// PersistenceError betyr at butikken ikke fikk lest eller skrevet.
// Lesefeil skal behandles som tom tilstand av kallere, aldri stoppe
// pipelinen.
type PersistenceError struct {
	Key string
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("lagringsfeil ved %s av %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
