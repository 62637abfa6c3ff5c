package models

// CustomButton is a quick-action button for one-tap activity logging.
// Icon is a symbolic icon name resolved by the presentation layer.
type CustomButton struct {
	ID       string
	FamilyID string
	Label    string
	Icon     string
}

// ButtonSeed holds the label and icon of a button to be created
type ButtonSeed struct {
	Label string
	Icon  string
}
