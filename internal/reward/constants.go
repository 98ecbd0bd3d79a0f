package reward

const (
	rangeSeparator = "-"
	percentScale   = 100.0
)

// DropSpecError reasons
const (
	reasonEmpty      = "empty spec"
	reasonNotInteger = "not an integer"
	reasonBadBounds  = "range bounds must be integers"
	reasonNegative   = "range bounds must be non-negative"
	reasonInverted   = "range lower bound exceeds upper bound"
)
