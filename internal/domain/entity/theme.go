package entity

// Theme is a per-user UI preference with get-or-create semantics.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type ThemePreference struct {
	UserID string
	Theme  Theme
}
