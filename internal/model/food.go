package model

// FoodChoice is one entry in the food randomizer pool. Names are not
// unique; the id is.
type FoodChoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}
