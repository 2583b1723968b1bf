package ui

// Options configures the playground window.
type Options struct {
	Title  string
	Width  int
	Height int
}

// DefaultOptions returns the window settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		Title:  "dragbounds",
		Width:  800,
		Height: 600,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Title == "" {
		o.Title = def.Title
	}
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	return o
}
