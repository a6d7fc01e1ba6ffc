package internal

// PanicOnError panics when err is set. Only use it for states that a
// correct caller can never produce.
func PanicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
