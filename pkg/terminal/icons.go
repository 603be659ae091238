package terminal

// Icons for terminal output
const (
	IconError   = "❌"
	IconWarning = "⚠️"
	IconHint    = "💡"
	IconCrash   = "💥"
	IconArrow   = "→"
	IconDot     = "•"
)
