package core

// Color is a semantic colour role for a screen cell.
// The platform maps roles to concrete terminal colours through the active theme,
// so games never pick palette values themselves.
type Color uint8

const (
	ColorDefault   Color = iota
	ColorAccent          // titles, current item
	ColorMuted           // hints, borders
	ColorSuccess         // correct answers, matched cards
	ColorDanger          // lost lives, wrong answers
	ColorWarning         // countdown running low, cooldowns
	ColorCardBack        // face-down card
	ColorCardFace        // face-up card
	ColorHighlight       // cursor
)

// String returns the role name, used as the key in theme palettes.
func (c Color) String() string {
	switch c {
	case ColorAccent:
		return "accent"
	case ColorMuted:
		return "muted"
	case ColorSuccess:
		return "success"
	case ColorDanger:
		return "danger"
	case ColorWarning:
		return "warning"
	case ColorCardBack:
		return "card_back"
	case ColorCardFace:
		return "card_face"
	case ColorHighlight:
		return "highlight"
	default:
		return "default"
	}
}
