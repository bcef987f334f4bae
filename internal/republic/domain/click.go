package domain

// ContactAdvertiserClick is seeded with count 0 when the schema is created.
const ContactAdvertiserClick = "contact_anunciante_click"

type ClickCount struct {
	EventName string
	Count     int64
}
