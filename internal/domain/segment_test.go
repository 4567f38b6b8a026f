package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSegment_Valid(t *testing.T) {
	s := &Segment{
		Content:  "Discount codes must be 5-15% off",
		Metadata: Metadata{Source: "rules.txt"},
	}
	assert.NoError(t, ValidateSegment(s))
}

func TestValidateSegment_EmptyContent(t *testing.T) {
	s := &Segment{
		Content:  "   \n\t",
		Metadata: Metadata{Source: "rules.txt"},
	}
	assert.ErrorIs(t, ValidateSegment(s), ErrEmptySegment)
}

func TestValidateSegment_MissingSource(t *testing.T) {
	s := &Segment{Content: "some text"}
	assert.ErrorIs(t, ValidateSegment(s), ErrMissingSource)
}

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrCodeNotFound, "checkout.html not found")
	assert.Equal(t, "[NOT_FOUND] checkout.html not found", err.Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := assert.AnError
	err := NewUpstreamError("llm call", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "llm call failed")
}
