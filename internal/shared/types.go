package shared

// Background task types
const (
	TypeProcessBookCover = "book:process_cover"
	TypeInventoryReport  = "report:inventory"
)

// Asynq queues
const (
	QueueDefault = "default"
	QueueBook    = "book"
	QueueReport  = "report"
)
