package category

// Category is a taxonomy record owned by the caller, e.g. a row of its
// categories table. The suggester only returns labels; Resolve maps them here.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
