package piclist

type Options struct {
	// Verify turns on precondition checks and a full list walk after every
	// mutation. Violations are fatal.
	Verify bool
}

var DefaultOptions = Options{
	Verify: false,
}
