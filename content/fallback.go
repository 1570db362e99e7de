package content

// BookConsultationPage is the one page that ships built-in defaults.
const BookConsultationPage = "book_consultation_page"

var bookConsultationDefaults = map[string]string{
	"hero_title":           "Book a Consultation",
	"hero_subtitle":        "Tell us about your project and we will get back to you within one business day.",
	"form_title":           "Request a consultation",
	"form_description":     "Share a few details so we can prepare for the call.",
	"name_label":           "Full name",
	"email_label":          "Email address",
	"phone_label":          "Phone number",
	"company_label":        "Company",
	"service_label":        "Service of interest",
	"message_label":        "How can we help?",
	"preferred_date_label": "Preferred date",
	"submit_button":        "Book consultation",
	"success_message":      "Thanks! Your request has been received.",
	"error_message":        "Something went wrong. Please try again.",
	"privacy_note":         "We only use your details to respond to this request.",
}

// Fallback returns a fresh copy of the built-in content for pageKey, or nil if
// the page has none.
func Fallback(pageKey string) map[string]string {
	if pageKey != BookConsultationPage {
		return nil
	}
	out := make(map[string]string, len(bookConsultationDefaults))
	for k, v := range bookConsultationDefaults {
		out[k] = v
	}
	return out
}

// FallbackKeys lists the element keys every consultation fallback contains.
func FallbackKeys() []string {
	keys := make([]string, 0, len(bookConsultationDefaults))
	for k := range bookConsultationDefaults {
		keys = append(keys, k)
	}
	return keys
}
