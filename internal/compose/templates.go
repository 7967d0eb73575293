package compose

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Template struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	HTML    bool   `yaml:"html" json:"html"`
	Content string `yaml:"content" json:"-"`
}

type catalogueFile struct {
	Templates []Template `yaml:"templates"`
}

const (
	MailKitSent     = "mail-kit-sent"
	OrderReceived   = "order-received"
	InquiryResponse = "inquiry-response"
	FinalAppraisal  = "final-appraisal"
	PaymentSent     = "payment-sent"
)

// DefaultTemplate is preselected in the reply composer.
const DefaultTemplate = MailKitSent

const finalAppraisalHTML = `<p>Dear {{ customer_name }},</p>
<p>Thank you for your patience.<br>We have appraised your jewelries and here are their final values:</p>
{% for item in items %}<div style='margin-bottom:20px; border:1px solid #e0e0e0; border-radius:8px; padding:16px; display:flex; gap:16px; align-items:flex-start;'>
{% if item.ImageSrc %}<div style='flex-shrink:0;'><img src='{{ item.ImageSrc }}' alt='Jewelry {{ forloop.Counter }}' style='width:120px; height:120px; object-fit:cover; border-radius:6px; border:2px solid #e0e0e0;' /></div>
{% endif %}<div style='flex:1; padding-left:15px;'>
<p style='margin:0 0 8px 0; font-weight:bold; font-size:16px;'>Jewel #{{ forloop.Counter }}</p>
<p style='margin:0 0 4px 0;'><strong>Metal:</strong> {{ item.Metal|default:"####" }}</p>
<p style='margin:0 0 4px 0;'><strong>Purity:</strong> {{ item.Purity|default:"N/A" }}</p>
<p style='margin:0 0 4px 0;'><strong>Estimated Value:</strong> ${{ item.Value|default:"###.##" }}</p>
{% if item.Remarks %}<p style='margin:4px 0 0 0;'><strong>Remarks:</strong> {{ item.Remarks }}</p>
{% endif %}</div></div>
{% empty %}<div style='margin-bottom:20px; border:1px solid #e0e0e0; border-radius:8px; padding:16px; display:flex; gap:16px; align-items:flex-start;'>
<div style='flex-shrink:0; width:120px; height:120px; background:#f0f0f0; border-radius:6px; border:2px solid #e0e0e0; display:flex; align-items:center; justify-content:center; color:#999; font-size:12px;'>[Image]</div>
<div style='flex:1; padding-left:15px;'>
<p style='margin:0 0 8px 0; font-weight:bold; font-size:16px;'>Jewel #1</p>
<p style='margin:0 0 4px 0;'><strong>Metal:</strong> ####</p>
<p style='margin:0 0 4px 0;'><strong>Purity:</strong> N/A</p>
<p style='margin:0 0 4px 0;'><strong>Estimated Value:</strong> $###.##</p>
</div></div>
{% endfor %}<p>Would you like to proceed with receiving your share of the appraisal value or proceed with recycling instead?</p>
<div style='text-align:center;margin-top:20px;'>
{% for button in action_buttons %}<a href='{{ button.URL }}' data-action='{{ button.Action }}' data-ticket='{{ ticket_number }}' style='background-color:#5B8FCF;color:#ffffff;padding:12px 24px;text-decoration:none;border-radius:5px;display:inline-block;font-family:sans-serif;font-size:14px;margin:5px;'>{{ button.Label }}</a>
{% endfor %}</div>`

// DefaultTemplates is the built-in response catalogue.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:   MailKitSent,
			Name: "Mail Kit Sent",
			Content: `Dear {{ customer_name }},

Thank you for ordering our Buy Back Mail Kit.
The package is now on their way to your address.

[Insert other instructions]`,
		},
		{
			ID:   OrderReceived,
			Name: "Order Received",
			Content: `Dear {{ customer_name }},

We have received the Mail Kit back along with your jewelries
Please wait a few days for our final appraisal.

Thank you for your business!`,
		},
		{
			ID:   InquiryResponse,
			Name: "General Inquiry Response",
			Content: `Dear {{ customer_name }},

Thank you for your inquiry.

[Your response here]

Please let us know if you have any other questions.`,
		},
		{
			ID:      FinalAppraisal,
			Name:    "Final Appraisal Response",
			HTML:    true,
			Content: finalAppraisalHTML,
		},
		{
			ID:   PaymentSent,
			Name: "Payment Sent",
			HTML: true,
			Content: `<p>Dear {{ customer_name }},</p>
<p>Your share of the total appraisal value has been sent.</p>
<p>Thank you for using our service.</p>`,
		},
	}
}

// LoadCatalogue reads a YAML template catalogue. An empty path yields the
// built-in templates.
func LoadCatalogue(path string) ([]Template, error) {
	if path == "" {
		return DefaultTemplates(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalogue %s: %w", path, err)
	}
	return parseCatalogue(data)
}

func parseCatalogue(data []byte) ([]Template, error) {
	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse template catalogue: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("template catalogue has no templates")
	}
	seen := map[string]bool{}
	for i, t := range f.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template at index %d is missing id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true
		if t.Name == "" {
			f.Templates[i].Name = t.ID
		}
	}
	return f.Templates, nil
}
