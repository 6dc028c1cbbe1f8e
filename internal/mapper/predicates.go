package mapper

import "strings"

// Present is true when the key exists, even with an empty value.
func Present(_ string, present bool) bool {
	return present
}

// NonEmpty is true when the key exists with a non-empty value.
func NonEmpty(value string, present bool) bool {
	return present && value != ""
}

// Truthy is true for "true", "yes", "on" and "1", case-insensitively.
func Truthy(value string, present bool) bool {
	if !present {
		return false
	}
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}

// Absent is true when the key does not exist.
func Absent(_ string, present bool) bool {
	return !present
}

// Equals returns a predicate matching want case-insensitively.
func Equals(want string) func(string, bool) bool {
	return func(value string, present bool) bool {
		return present && strings.EqualFold(value, want)
	}
}
