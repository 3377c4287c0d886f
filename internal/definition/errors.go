package definition

import "fmt"

type DefinitionError struct {
	Field   string
	Message string
}

func (e DefinitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
