package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	DefaultNewsletterSource = "website_footer"
	DefaultInquiryType      = "general"
)

// ValidationError reports a form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewsletterSubscription is a footer newsletter sign-up.
type NewsletterSubscription struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// ContactSubmission is a message sent through the Contact page.
type ContactSubmission struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
	Phone       string `json:"phone,omitempty"`
	InquiryType string `json:"inquiry_type,omitempty"`
	Message     string `json:"message,omitempty"`
}

// CVSubmission is a candidate's CV upload request.
type CVSubmission struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	LinkedInURL       string `json:"linkedin_url,omitempty"`
	JobRole           string `json:"job_role,omitempty"`
	ExperienceYears   string `json:"experience_years,omitempty"`
	PreferredIndustry string `json:"preferred_industry,omitempty"`
	Message           string `json:"message,omitempty"`
}

// ConsultationRequest is a consultation booking.
type ConsultationRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Company         string `json:"company,omitempty"`
	Phone           string `json:"phone,omitempty"`
	ServiceInterest string `json:"service_interest,omitempty"`
	PreferredDate   string `json:"preferred_date,omitempty"`
	Message         string `json:"message,omitempty"`
}

// Normalize trims the fields and fills in defaults.
func (n *NewsletterSubscription) Normalize() {
	n.Email = strings.TrimSpace(n.Email)
	n.Source = strings.TrimSpace(n.Source)
	if n.Source == "" {
		n.Source = DefaultNewsletterSource
	}
}

func (n NewsletterSubscription) Validate() error {
	return validateEmail(n.Email)
}

func (c *ContactSubmission) Normalize() {
	trimAll(&c.FullName, &c.Email, &c.Company, &c.Phone, &c.InquiryType, &c.Message)
	if c.InquiryType == "" {
		c.InquiryType = DefaultInquiryType
	}
}

func (c ContactSubmission) Validate() error {
	return validateContact(c.FullName, c.Email)
}

func (c *CVSubmission) Normalize() {
	trimAll(&c.FullName, &c.Email, &c.Phone, &c.LinkedInURL, &c.JobRole,
		&c.ExperienceYears, &c.PreferredIndustry, &c.Message)
}

func (c CVSubmission) Validate() error {
	return validateContact(c.FullName, c.Email)
}

func (c *ConsultationRequest) Normalize() {
	trimAll(&c.FullName, &c.Email, &c.Company, &c.Phone, &c.ServiceInterest,
		&c.PreferredDate, &c.Message)
}

func (c ConsultationRequest) Validate() error {
	return validateContact(c.FullName, c.Email)
}

func validateContact(fullName, email string) error {
	if fullName == "" {
		return &ValidationError{Field: "full_name", Reason: "is required"}
	}
	return validateEmail(email)
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
