package zsh

import "fmt"

// UnsupportedFeatureError aborts generation when a definition uses a
// construct the generator has no directive form for.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("completion for %s is not implemented", e.Feature)
}
