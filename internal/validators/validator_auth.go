package validators

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-job-tracker/models"
	"github.com/go-playground/validator/v10"
)

const (
	MsgRegisterFieldsRequired = "Please provide name, email and password"
	MsgLoginFieldsRequired    = "Please provide email and password"
	MsgEmailRequired          = "Please provide email address"
)

type registerRules struct {
	Name     string `json:"name" validate:"max=50"`
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=6,max=72"`
}

var registerMessages = map[string]map[string]string{
	"name":     {"max": "Name cannot exceed 50 characters"},
	"email":    {"email": "Please provide a valid email"},
	"password": {"min": "Password must be at least 6 characters", "max": "Password cannot exceed 72 bytes"},
}

// AuthValidator validates registration, login and password-reset requests.
// Missing fields yield an *InputError with the route's message; shape
// violations of registration fields yield a *ValidationError.
type AuthValidator struct {
	validate *validator.Validate
}

func NewAuthValidator() Validator {
	return &AuthValidator{validate: newValidate()}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, _ ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(ctx, value)
	case *models.RegisterRequest:
		return v.validateRegister(ctx, *value)
	case models.Credentials:
		return v.validateCredentials(value)
	case *models.Credentials:
		return v.validateCredentials(*value)
	case models.ForgotPasswordRequest:
		return v.validateForgotPassword(value)
	case *models.ForgotPasswordRequest:
		return v.validateForgotPassword(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateRegister(ctx context.Context, req models.RegisterRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return &InputError{Message: MsgRegisterFieldsRequired}
	}

	err := v.validate.StructCtx(ctx, registerRules{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return toValidationError(err, registerMessages)
		}
		return err
	}

	// bcrypt ignores everything past 72 bytes; max=72 above counts runes
	if len(req.Password) > 72 {
		return &ValidationError{Fields: map[string]string{"password": registerMessages["password"]["max"]}}
	}

	return nil
}

func (v *AuthValidator) validateCredentials(c models.Credentials) error {
	if c.Email == "" || c.Password == "" {
		return &InputError{Message: MsgLoginFieldsRequired}
	}
	return nil
}

func (v *AuthValidator) validateForgotPassword(req models.ForgotPasswordRequest) error {
	if req.Email == "" {
		return &InputError{Message: MsgEmailRequired}
	}
	return nil
}
