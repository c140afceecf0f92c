package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names
const (
	VerifyOTP = "verify_otp"
	ResetOTP  = "reset_otp"
	Welcome   = "welcome"
)

// OTPData feeds the verify_otp and reset_otp templates. The two flows
// share structure but carry different accent colors per flow.
type OTPData struct {
	AppName      string
	Email        string
	Code         string
	ValidMinutes int

	// Visual theme, fixed per flow
	Color       string
	BgColor     string
	BorderColor string
	Title       string
	Description string
}

// Accent constants: green for registration, red for password reset.
const (
	registerColor = "#10B981"
	registerBg    = "#f0fdf4"
	resetColor    = "#EF4444"
	resetBg       = "#fef2f2"
)

// NewVerifyOTPData builds template data for the registration code email.
func NewVerifyOTPData(appName, email, code string, validFor time.Duration) OTPData {
	return OTPData{
		AppName:      appName,
		Email:        email,
		Code:         code,
		ValidMinutes: int(validFor.Minutes()),
		Color:        registerColor,
		BgColor:      registerBg,
		BorderColor:  registerColor,
		Title:        "Verify Your Email Address",
		Description:  fmt.Sprintf("Use the code below to complete your registration with %s.", appName),
	}
}

// NewResetOTPData builds template data for the password-reset code email.
func NewResetOTPData(appName, email, code string, validFor time.Duration) OTPData {
	return OTPData{
		AppName:      appName,
		Email:        email,
		Code:         code,
		ValidMinutes: int(validFor.Minutes()),
		Color:        resetColor,
		BgColor:      resetBg,
		BorderColor:  resetColor,
		Title:        "Reset Your Password",
		Description:  fmt.Sprintf("Use the code below to reset your %s password.", appName),
	}
}

// WelcomeData feeds the welcome template queued after promotion.
type WelcomeData struct {
	AppName  string
	Email    string
	FullName string
	Role     string
	Username string
}

// renderFile loads and renders a single template file from the embedded FS.
// isHTML indicates whether to use html/template (true) or text/template (false).
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)

	if isHTML {
		tpl, e := htmpl.New(filename).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render loads and renders subject, text, and html templates for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	subject = strings.TrimSpace(subject)
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}
