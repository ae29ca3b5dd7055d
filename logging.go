package kad

type logging interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type discard struct{}

func (discard) Output(int, string) error {
	return nil
}

// Println replicates the behaviour of the standard logger.
func (t discard) Println(v ...any) {
}

func (t discard) Printf(format string, v ...any) {
}

func (t discard) Print(v ...any) {

}

func LogDiscard() discard {
	return discard{}
}
