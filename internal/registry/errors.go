package registry

import "fmt"

// AlreadyExistsError is returned when a package is created twice in the
// same category.
type AlreadyExistsError struct {
	Category string
	Name     string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("package %q already exists in %s", e.Name, e.Category)
}

// NotFoundError is returned when a package is not registered in a category.
type NotFoundError struct {
	Category string
	Name     string
}

func (e *NotFoundError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("package %q not found", e.Name)
	}
	return fmt.Sprintf("package %q not found in %s", e.Name, e.Category)
}
