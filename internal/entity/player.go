package entity

const (
	KindHuman    = "human"
	KindComputer = "computer"
)

// ParseKind maps a selection token to a player kind. Only "h" selects a
// human; anything else is a computer.
func ParseKind(token string) string {
	if token == "h" {
		return KindHuman
	}

	return KindComputer
}
