package types

// Environment is a Confluent Cloud environment. List order is the API
// arrival order and is preserved by callers.
type Environment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
