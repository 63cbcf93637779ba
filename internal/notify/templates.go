package notify

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/diagnosis/sophies-tours/internal/domain"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders an amount in euros with thousands separators, e.g. €7,000.
func FormatPrice(v float64) string {
	return printer.Sprintf("€%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

type view struct {
	domain.Booking
	TripTitle string
	Price     string
}

func newView(b domain.Booking, tripTitle string) view {
	return view{Booking: b, TripTitle: tripTitle, Price: FormatPrice(b.TotalPrice)}
}

var funcs = map[string]any{
	"plural": func(n int) string {
		if n > 1 {
			return "s"
		}
		return ""
	},
}

const confirmationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Booking Confirmation</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #D2691E, #8B4513); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: white; padding: 30px; border: 1px solid #ddd; }
    .footer { background: #f8f9fa; padding: 20px; text-align: center; border-radius: 0 0 10px 10px; }
    .highlight { background: #fff3cd; padding: 15px; border-radius: 5px; margin: 20px 0; }
    table { width: 100%; border-collapse: collapse; margin: 20px 0; }
    td { padding: 10px; border-bottom: 1px solid #eee; }
    .label { font-weight: bold; width: 150px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Sophie's Tours</h1>
      <p>Your African Adventure Awaits!</p>
    </div>
    <div class="content">
      <h2>Booking Confirmation</h2>
      <p>Dear {{.GuestName}},</p>
      <p>Thank you for choosing Sophie's Tours! Your booking has been received and is currently being processed.</p>
      <div class="highlight">
        <strong>Confirmation Code: {{.ConfirmationCode}}</strong><br>
        Please keep this code for your records.
      </div>
      <h3>Booking Details</h3>
      <table>
        <tr><td class="label">Tour:</td><td>{{.TripTitle}}</td></tr>
        <tr><td class="label">Participants:</td><td>{{.Participants}} person{{plural .Participants}}</td></tr>
        <tr><td class="label">Total Price:</td><td>{{.Price}}</td></tr>
        <tr><td class="label">Zinzino Program:</td><td>{{if .IncludesZinzino}}Yes - Included{{else}}No{{end}}</td></tr>
        <tr><td class="label">Status:</td><td>{{.Status}}</td></tr>
      </table>
      {{- if .SpecialRequests}}
      <h3>Special Requests</h3>
      <p>{{.SpecialRequests}}</p>
      {{- end}}
      <h3>What's Next?</h3>
      <ol>
        <li>We will review your booking and contact you within 24 hours</li>
        <li>Payment instructions will be provided via email</li>
        <li>Once payment is confirmed, you'll receive detailed travel information</li>
        {{- if .IncludesZinzino}}
        <li>Zinzino health program materials will be sent separately</li>
        {{- end}}
      </ol>
      <p>If you have any questions, please don't hesitate to contact us.</p>
    </div>
    <div class="footer">
      <p><strong>Sophie's Tours</strong><br>Email: info@sophies-tours.com</p>
      <p>Creating extraordinary travel experiences that transform lives.</p>
    </div>
  </div>
</body>
</html>
`

const confirmationText = `BOOKING CONFIRMATION - Sophie's Tours

Dear {{.GuestName}},

Thank you for choosing Sophie's Tours! Your booking has been received.

CONFIRMATION CODE: {{.ConfirmationCode}}

BOOKING DETAILS:
- Tour: {{.TripTitle}}
- Participants: {{.Participants}}
- Total Price: {{.Price}}
- Zinzino Program: {{if .IncludesZinzino}}Yes{{else}}No{{end}}
- Status: {{.Status}}
{{if .SpecialRequests}}
Special Requests: {{.SpecialRequests}}
{{end}}
WHAT'S NEXT:
1. We will review your booking and contact you within 24 hours
2. Payment instructions will be provided via email
3. Once payment is confirmed, you'll receive detailed travel information
{{- if .IncludesZinzino}}
4. Zinzino health program materials will be sent separately
{{- end}}

Contact: info@sophies-tours.com

Sophie's Tours - Creating extraordinary travel experiences that transform lives.
`

const adminHTML = `<h2>New Booking Received</h2>
<p><strong>Confirmation Code:</strong> {{.ConfirmationCode}}</p>
<p><strong>Tour:</strong> {{.TripTitle}}</p>
<p><strong>Guest:</strong> {{.GuestName}} ({{.GuestEmail}})</p>
<p><strong>Phone:</strong> {{if .GuestPhone}}{{.GuestPhone}}{{else}}Not provided{{end}}</p>
<p><strong>Participants:</strong> {{.Participants}}</p>
<p><strong>Total Price:</strong> {{.Price}}</p>
<p><strong>Zinzino Program:</strong> {{if .IncludesZinzino}}Yes{{else}}No{{end}}</p>
{{- if .SpecialRequests}}
<p><strong>Special Requests:</strong> {{.SpecialRequests}}</p>
{{- end}}
<p>Please review and process this booking in the admin panel.</p>
`

const adminText = `New booking {{.ConfirmationCode}}
Tour: {{.TripTitle}}
Guest: {{.GuestName}} <{{.GuestEmail}}>
Phone: {{if .GuestPhone}}{{.GuestPhone}}{{else}}Not provided{{end}}
Participants: {{.Participants}}
Total Price: {{.Price}}
Zinzino Program: {{if .IncludesZinzino}}Yes{{else}}No{{end}}
{{- if .SpecialRequests}}
Special Requests: {{.SpecialRequests}}
{{- end}}
`

var (
	confirmationHTMLTmpl = htmltemplate.Must(htmltemplate.New("confirmation.html").Funcs(funcs).Parse(confirmationHTML))
	confirmationTextTmpl = texttemplate.Must(texttemplate.New("confirmation.txt").Funcs(funcs).Parse(confirmationText))
	adminHTMLTmpl        = htmltemplate.Must(htmltemplate.New("admin.html").Parse(adminHTML))
	adminTextTmpl        = texttemplate.Must(texttemplate.New("admin.txt").Parse(adminText))
)

func render(html *htmltemplate.Template, text *texttemplate.Template, v view) (string, string, error) {
	var h, t bytes.Buffer
	if err := html.Execute(&h, v); err != nil {
		return "", "", err
	}
	if err := text.Execute(&t, v); err != nil {
		return "", "", err
	}
	return h.String(), t.String(), nil
}
