package class

// Class is a server-owned class record. Name is free text and often a grade number, e.g. "10".
type Class struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
}

// Label renders the class for display, e.g. "10 (B)".
func (c Class) Label() string {
	if c.Section == "" {
		return c.Name
	}
	return c.Name + " (" + c.Section + ")"
}

// Page is one page of a class listing.
type Page struct {
	Items      []Class
	TotalPages int
}

// Find returns the class with the given id.
func Find(all []Class, id string) (Class, bool) {
	for _, c := range all {
		if c.ID == id {
			return c, true
		}
	}
	return Class{}, false
}

// Contains reports whether a class with the given id is in classes.
func Contains(classes []Class, id string) bool {
	_, ok := Find(classes, id)
	return ok
}
