package ports

// Presenter renders status lines while a batch runs.
//
//go:generate mockgen -source=presenter.go -destination=mocks/mock_presenter.go -package=mocks
type Presenter interface {
	// Render shows a status line. A nil progress marks a plain message.
	Render(text string, progress *int) error
	// Println prints a full line, ending any in-place status first.
	Println(text string) error
	// Break ends any in-place status line.
	Break() error
}
