package backend

import (
	"context"
	"net/http"

	"nestview-web/internal/models"
)

// SendContactMessage forwards a contact-form submission.
func (c *Client) SendContactMessage(ctx context.Context, form *models.ContactForm) error {
	_, err := c.do(ctx, "send_contact_message", http.MethodPost, "/api/contact", nil, form)
	return err
}

// SubscribeNewsletter signs an address up for the newsletter.
func (c *Client) SubscribeNewsletter(ctx context.Context, email string) error {
	_, err := c.do(ctx, "subscribe_newsletter", http.MethodPost, "/api/newsletter/subscribe", nil, map[string]string{
		"email": email,
	})
	return err
}

// UpdateProfile updates the signed-in user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, form *models.ProfileForm) error {
	_, err := c.do(ctx, "update_profile", http.MethodPut, "/api/users/profile", nil, form)
	return err
}

// ApproveProperty marks a pending listing approved. Admin only; the
// backend enforces the role.
func (c *Client) ApproveProperty(ctx context.Context, propertyID string) error {
	_, err := c.do(ctx, "approve_property", http.MethodPost, "/api/admin/properties/"+propertyID+"/approve", nil, nil)
	return err
}

// RejectProperty rejects a pending listing with a reason.
func (c *Client) RejectProperty(ctx context.Context, propertyID, reason string) error {
	_, err := c.do(ctx, "reject_property", http.MethodPost, "/api/admin/properties/"+propertyID+"/reject", nil, map[string]string{
		"reason": reason,
	})
	return err
}

// ListPendingProperties returns listings awaiting moderation.
func (c *Client) ListPendingProperties(ctx context.Context) ([]models.Property, error) {
	env, err := c.do(ctx, "list_pending_properties", http.MethodGet, "/api/admin/properties/pending", nil, nil)
	if err != nil {
		return nil, err
	}
	var items []models.Property
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SendNewsletter asks the backend to dispatch a newsletter to all
// subscribers. Delivery is entirely the backend's concern.
func (c *Client) SendNewsletter(ctx context.Context, subject, body string) error {
	_, err := c.do(ctx, "send_newsletter", http.MethodPost, "/api/admin/newsletter/send", nil, map[string]string{
		"subject": subject,
		"body":    body,
	})
	return err
}
