package validators

import (
	"errors"
	"strconv"

	"nestview-web/internal/models"
)

// PropertyFormValidator checks a listing submission before it goes over
// the wire. The backend re-validates; these checks only block obviously
// broken submissions.
type PropertyFormValidator struct{}

func NewPropertyFormValidator() *PropertyFormValidator {
	return &PropertyFormValidator{}
}

func (v *PropertyFormValidator) Validate(form *models.PropertyForm) error {
	if form.Title == "" {
		return errors.New("title is required")
	}
	if len(form.Title) > 200 {
		return errors.New("title must not exceed 200 characters")
	}
	if form.Price == "" {
		return errors.New("price is required")
	}
	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil || price <= 0 {
		return errors.New("price must be a positive number")
	}
	if form.Type == "" {
		return errors.New("property type is required")
	}
	if form.Beds != "" {
		beds, err := strconv.Atoi(form.Beds)
		if err != nil || beds < 0 {
			return errors.New("beds must be a non-negative number")
		}
	}
	if form.Country == "" || form.City == "" {
		return errors.New("country and city are required")
	}
	return nil
}

func ValidateContactForm(form *models.ContactForm) error {
	if form.Name == "" {
		return errors.New("name is required")
	}
	if err := ValidateEmail(form.Email); err != nil {
		return err
	}
	if form.Message == "" {
		return errors.New("message is required")
	}
	if len(form.Message) > 5000 {
		return errors.New("message must not exceed 5000 characters")
	}
	return nil
}

func ValidateProfileForm(form *models.ProfileForm) error {
	if form.FullName == "" {
		return errors.New("full name is required")
	}
	if len(form.FullName) < 2 || len(form.FullName) > 100 {
		return errors.New("full name must be between 2 and 100 characters")
	}
	return ValidatePhone(form.Phone)
}
