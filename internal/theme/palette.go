package theme

// Page backgrounds behind the particle layer.
const (
	DarkBackground  = "#0f172a"
	LightBackground = "#f8fafc"
)

func Background(dark bool) string {
	if dark {
		return DarkBackground
	}
	return LightBackground
}
