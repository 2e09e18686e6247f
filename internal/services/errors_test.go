package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{ErrInvalidAmount, KindValidation},
		{fmt.Errorf("%w: title is required", ErrInvalidInput), KindValidation},
		{ErrInvalidCredentials, KindAuthentication},
		{ErrNotAuthorized, KindAuthorization},
		{ErrListingNotFound, KindNotFound},
		{fmt.Errorf("%w: current price is $15.00", ErrBidTooLow), KindState},
		{ErrListingInactive, KindState},
		{ErrPaymentsDisabled, KindUnavailable},
		{errors.New("disk full"), KindInternal},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err), tc.err.Error())
	}
}

func TestValidMoney(t *testing.T) {
	assert.True(t, validMoney(dec("0.01")))
	assert.True(t, validMoney(dec("99999999.99")))
	assert.True(t, validMoney(dec("15.50")))
	assert.False(t, validMoney(dec("0")))
	assert.False(t, validMoney(dec("-1")))
	assert.False(t, validMoney(dec("1.001")))
	assert.False(t, validMoney(dec("100000000")))
	assert.Equal(t, "$15.00", FormatMoney(dec("15")))
}
