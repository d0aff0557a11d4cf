package summary

// Splitter breaks text into sentences.
type Splitter interface {
	Split(text string) ([]string, error)
}
