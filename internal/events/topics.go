package events

// Topic constants for notifications emitted by the storefront core.
const (
	TopicCartUpdated  = "cart.updated"
	TopicCartCleared  = "cart.cleared"
	TopicStockUpdated = "catalog.stock_updated"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicCartUpdated,
		TopicCartCleared,
		TopicStockUpdated,
	}
}
