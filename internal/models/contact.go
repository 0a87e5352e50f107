package models

// ContactSubjects lists the subjects offered by the contact form, in display order.
var ContactSubjects = []ContactSubject{
	{Value: "general", Label: "General Inquiry"},
	{Value: "support", Label: "Technical Support"},
	{Value: "feedback", Label: "Feedback"},
	{Value: "partnership", Label: "Partnership Opportunities"},
}

// ContactSubject is one option of the contact form's subject select.
type ContactSubject struct {
	Value string
	Label string
}

// ContactMessage is a message submitted through the contact form. It is
// validated and logged, never stored.
type ContactMessage struct {
	Name    string `form:"name" validate:"required,max=200"`
	Email   string `form:"email" validate:"required,email,max=320"`
	Subject string `form:"subject" validate:"required,oneof=general support feedback partnership"`
	Message string `form:"message" validate:"required,max=5000"`
}
