package constants

// Persisted keys. The four todo keys are written together on every mutation.
const (
	KeyTasks            = "todoTasks"
	KeyDays             = "todoDays"
	KeyWeeks            = "todoWeeks"
	KeyCurrentWeekIndex = "todoCurrentWeekIndex"

	KeyUserTheme    = "user-theme"
	KeyCustomColors = "custom-colors"
)
