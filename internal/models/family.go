package models

// Family is the household workspace that scopes every other entity.
// Created once during onboarding; the store holds at most one family's
// data in memory at a time.
type Family struct {
	ID         string
	Name       string
	InviteCode string
}
