package models

import "github.com/google/uuid"

func newKey() string {
	return uuid.NewString()
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
