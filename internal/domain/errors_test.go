package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
)

func TestWriteError_UnwrapsToSentinel(t *testing.T) {
	err := &domain.WriteError{Err: domain.ErrCreateFailed, Message: "rejected"}

	assert.ErrorIs(t, err, domain.ErrCreateFailed)
	assert.NotErrorIs(t, err, domain.ErrUpdateFailed)
}

func TestWriteError_SurvivesWrapping(t *testing.T) {
	werr := &domain.WriteError{
		Err:    domain.ErrUpdateFailed,
		Fields: []domain.FieldError{{Label: "Email", Message: "invalid format"}},
	}
	wrapped := fmt.Errorf("service.contact.Update: %w", werr)

	assert.ErrorIs(t, wrapped, domain.ErrUpdateFailed)

	var got *domain.WriteError
	assert.True(t, errors.As(wrapped, &got))
	assert.Equal(t, "Email", got.Fields[0].Label)
}

func TestWriteError_MessageAggregatesDetail(t *testing.T) {
	err := &domain.WriteError{
		Err:     domain.ErrCreateFailed,
		Message: "record rejected",
		Fields: []domain.FieldError{
			{Label: "Email", Message: "invalid format"},
			{Label: "Phone", Message: "required"},
		},
	}

	assert.Equal(t, "create failed: record rejected: Email: invalid format: Phone: required", err.Error())
}
