package assets

// ResolvedStyle is the stylesheet chosen for a conversion.
type ResolvedStyle struct {
	CSS    string
	Custom bool // CSS came from the user file

	// FallbackReason explains why a requested user file was not used.
	// Nil when no file was requested or the file was used.
	FallbackReason error
}

// StyleResolver picks the stylesheet for a conversion: a user file when one
// is given and readable, the default otherwise.
type StyleResolver struct {
	defaultStyle func() (string, error)
}

// NewStyleResolver creates a StyleResolver. defaultStyle supplies the
// fallback stylesheet; nil uses the embedded default style.
func NewStyleResolver(defaultStyle func() (string, error)) *StyleResolver {
	if defaultStyle == nil {
		defaultStyle = func() (string, error) {
			return LoadStyle(DefaultStyleName)
		}
	}
	return &StyleResolver{defaultStyle: defaultStyle}
}

// Resolve returns the stylesheet to embed for path. A path that cannot be
// used falls back to the default and records why in FallbackReason. The
// error is non-nil only when the default itself cannot be loaded.
func (r *StyleResolver) Resolve(path string) (ResolvedStyle, error) {
	var reason error
	if path != "" {
		css, err := ReadStyleFile(path)
		if err == nil {
			return ResolvedStyle{CSS: css, Custom: true}, nil
		}
		reason = err
	}
	css, err := r.defaultStyle()
	if err != nil {
		return ResolvedStyle{FallbackReason: reason}, err
	}
	return ResolvedStyle{CSS: css, FallbackReason: reason}, nil
}
