package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationDisplayName(t *testing.T) {
	cases := []struct {
		name     string
		donation Donation
		want     string
	}{
		{"named donor", Donation{DonorName: "Somsri K."}, "Somsri K."},
		{"trims stored name", Donation{DonorName: "  Somsri K.  "}, "Somsri K."},
		{"anonymous hides stored name", Donation{DonorName: "Somsri K.", Anonymous: true}, AnonymousDonorName},
		{"blank name reads anonymous", Donation{DonorName: "   "}, AnonymousDonorName},
		{"empty name reads anonymous", Donation{}, AnonymousDonorName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.donation.DisplayName())
		})
	}
}
