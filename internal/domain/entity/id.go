package entity

import "github.com/google/uuid"

// CanonicalID normaliza un UUID a su forma canónica (minúsculas, con guiones).
// uuid.Parse acepta mayúsculas, {…} y urn:uuid:, que deben tratarse como el mismo id.
func CanonicalID(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
