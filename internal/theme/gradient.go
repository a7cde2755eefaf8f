package theme

// Gradient identifies one of the pre-defined decorative card gradients.
type Gradient string

// The fixed gradient set used by the home and dashboard cards.
const (
	GradientGreen       Gradient = "green-green"
	GradientOrange      Gradient = "orange-orange"
	GradientGreenOrange Gradient = "green-orange"
	GradientRedOrange   Gradient = "red-orange"
)

// darkGradients maps each light-mode gradient to its dark-mode override.
// Gradients without an entry keep their light-mode rendering.
var darkGradients = map[Gradient]string{
	GradientGreen:       "linear-gradient(to bottom right, rgba(6, 78, 59, 0.4), rgba(5, 150, 105, 0.3))",
	GradientOrange:      "linear-gradient(to bottom right, rgba(124, 45, 18, 0.4), rgba(154, 52, 18, 0.3))",
	GradientGreenOrange: "linear-gradient(to bottom right, rgba(6, 78, 59, 0.4), rgba(154, 52, 18, 0.3))",
	GradientRedOrange:   "linear-gradient(to bottom right, rgba(127, 29, 29, 0.4), rgba(124, 45, 18, 0.3))",
}

// Card is one decorated region whose background depends on the theme.
type Card struct {
	Gradient Gradient
	// Override is the active dark-mode background; empty means the card
	// renders its light-mode gradient.
	Override string
}

// ApplyDark sets or clears the dark-mode overrides for a card set. Clearing
// restores every card to its original light-mode state, so a full on/off
// cycle is a no-op.
func ApplyDark(cards []Card, dark bool) {
	for i := range cards {
		if !dark {
			cards[i].Override = ""
			continue
		}
		override, ok := darkGradients[cards[i].Gradient]
		if !ok {
			cards[i].Override = ""
			continue
		}
		cards[i].Override = override
	}
}
