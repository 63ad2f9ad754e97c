package codes

// ExitCodes maps configuration tool exit codes to their descriptions
var ExitCodes = map[int]string{
	-1: "Terminated before exiting (signal or spawn failure)",
	0:  "Success",
	1:  "Configuration failed",
}

// IsSuccess returns true if the exit code indicates a successful configure step
func IsSuccess(code int) bool {
	return code == 0
}

// Describe returns the description for a given exit code, or a generic message if unknown
func Describe(code int) string {
	if msg, ok := ExitCodes[code]; ok {
		return msg
	}

	return "Unknown error"
}
