package core

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Outbound payloads, checked before any request leaves the client.
// Tag rules cover the flat constraints; the cross-field invariants
// (category vs transfer, destination account, recurring pattern) are
// enforced in Validate because they depend on more than one field.

var validate = validator.New(validator.WithRequiredStructEnabled())

type (
	TransactionInput struct {
		Type             TransactionType  `json:"type" validate:"required,oneof=income expense transfer"`
		Amount           float64          `json:"amount" validate:"required,gt=0"`
		Description      string           `json:"description" validate:"required,max=200"`
		Date             time.Time        `json:"date" validate:"required"`
		CategoryID       string           `json:"category,omitempty"`
		AccountID        string           `json:"account" validate:"required"`
		ToAccountID      string           `json:"toAccount,omitempty"`
		Division         Division         `json:"division" validate:"required,oneof=personal office"`
		Tags             []string         `json:"tags,omitempty"`
		IsRecurring      bool             `json:"isRecurring"`
		RecurringPattern RecurringPattern `json:"recurringPattern,omitempty" validate:"omitempty,oneof=daily weekly monthly yearly"`
	}

	AccountInput struct {
		Name     string      `json:"name" validate:"required,max=100"`
		Type     AccountType `json:"type" validate:"required,oneof=savings checking cash credit investment other"`
		Balance  float64     `json:"balance"`
		Currency string      `json:"currency" validate:"required,len=3"`
		IsActive bool        `json:"isActive"`
	}

	CategoryInput struct {
		Name string          `json:"name" validate:"required,max=100"`
		Icon string          `json:"icon"`
		Type TransactionType `json:"type" validate:"required,oneof=income expense"`
	}

	SignupInput struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
)

func (in TransactionInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	switch in.Type {
	case Income, Expense:
		if strings.TrimSpace(in.CategoryID) == "" {
			return ErrMissingCategory
		}
		if in.ToAccountID != "" {
			return ErrUnexpectedToAccount
		}
	case Transfer:
		if in.CategoryID != "" {
			return ErrUnexpectedCategory
		}
		if strings.TrimSpace(in.ToAccountID) == "" {
			return ErrMissingToAccount
		}
		if in.ToAccountID == in.AccountID {
			return ErrSameAccount
		}
	default:
		return ErrInvalidType
	}
	if in.IsRecurring && in.RecurringPattern == "" {
		return ErrMissingPattern
	}
	return nil
}

func (in AccountInput) Validate() error {
	return validate.Struct(in)
}

func (in CategoryInput) Validate() error {
	return validate.Struct(in)
}

func (in SignupInput) Validate() error {
	return validate.Struct(in)
}

func (in LoginInput) Validate() error {
	return validate.Struct(in)
}
