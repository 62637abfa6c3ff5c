package models

// FallbackAvatarIcon is shown for members without an avatar image
const FallbackAvatarIcon = "👤"

// MemberColors is the theme color palette offered for member profiles
var MemberColors = []string{
	"#FF6B6B", // coral red
	"#4ECDC4", // teal
	"#45B7D1", // sky blue
	"#96CEB4", // sage green
	"#FFEAA7", // soft yellow
	"#DDA0DD", // plum
	"#98D8C8", // mint
	"#F7DC6F", // gold
	"#BB8FCE", // lavender
	"#85C1E9", // light blue
}

// DefaultButtons are seeded into every newly created family
var DefaultButtons = []ButtonSeed{
	{Label: "ごはん", Icon: "Utensils"},
	{Label: "おやつ", Icon: "Cookie"},
	{Label: "ねんね", Icon: "Moon"},
	{Label: "おふろ", Icon: "Bath"},
	{Label: "おでかけ", Icon: "Car"},
	{Label: "おかいもの", Icon: "ShoppingCart"},
	{Label: "おてつだい", Icon: "Sparkles"},
	{Label: "イベント", Icon: "PartyPopper"},
	{Label: "旅行", Icon: "Plane"},
	{Label: "メモ", Icon: "FileText"},
}
