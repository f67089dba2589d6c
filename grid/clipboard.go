package grid

// Clipboard receives copied cell text. Errors are ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
