package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velofleet/internal/domain"
	"velofleet/internal/services"
)

func TestOfferSaveRoundTrip(t *testing.T) {
	svc, _ := offerSvc(t)

	o := testOffer("summer-10", "SUMMER10")
	pct := 10.0
	o.DiscountPercent = &pct
	o.ApplicableCategories = []string{"supercar", "suv"}
	o.AppliesTo = domain.AppliesCategory
	_, err := svc.Save(o)
	require.NoError(t, err)

	got, err := svc.Get("summer-10")
	require.NoError(t, err)
	assert.Equal(t, "Weekend Special", got.Title)
	require.NotNil(t, got.DiscountPercent)
	assert.Equal(t, 10.0, *got.DiscountPercent)
	assert.Equal(t, []string{"supercar", "suv"}, got.ApplicableCategories)
}

// The redeemability invariant: GetByCode succeeds iff active, unexpired and
// under the usage limit.
func TestOfferGetByCodeValidity(t *testing.T) {
	limit1 := 1
	limit5 := 5

	cases := []struct {
		name    string
		mutate  func(*domain.Offer)
		wantErr error
	}{
		{"active no window no limit", func(o *domain.Offer) {}, nil},
		{"inactive", func(o *domain.Offer) { o.IsActive = false }, services.ErrOfferInactive},
		{"future expiry", func(o *domain.Offer) { o.ValidUntil = rfc3339In(24 * time.Hour) }, nil},
		{"past expiry", func(o *domain.Offer) { o.ValidUntil = rfc3339In(-24 * time.Hour) }, services.ErrOfferExpired},
		{"under limit", func(o *domain.Offer) { o.UsageLimit = &limit5; o.UsageCount = 4 }, nil},
		{"at limit", func(o *domain.Offer) { o.UsageLimit = &limit1; o.UsageCount = 1 }, services.ErrOfferLimitReached},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := offerSvc(t)
			o := testOffer("offer-1", "VELO20")
			tc.mutate(&o)
			_, err := svc.Save(o)
			require.NoError(t, err)

			got, err := svc.GetByCode("VELO20")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "offer-1", got.ID)
		})
	}
}

// Codes normalize to upper-case on save, so a lookup under any casing
// resolves the offer.
func TestOfferSaveNormalizesCode(t *testing.T) {
	svc, _ := offerSvc(t)

	o := testOffer("promo-lc", "velo20")
	saved, err := svc.Save(o)
	require.NoError(t, err)
	assert.Equal(t, "VELO20", saved.OfferCode)

	for _, lookup := range []string{"VELO20", "velo20", "Velo20"} {
		got, err := svc.GetByCode(lookup)
		require.NoError(t, err, "lookup %q", lookup)
		assert.Equal(t, "promo-lc", got.ID)
	}
}

func TestOfferBulkSaveNormalizesCodes(t *testing.T) {
	svc, _ := offerSvc(t)

	n, err := svc.BulkSave([]domain.Offer{testOffer("o-1", "summer10"), testOffer("o-2", " Winter10 ")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for code, wantID := range map[string]string{"SUMMER10": "o-1", "WINTER10": "o-2"} {
		got, err := svc.GetByCode(code)
		require.NoError(t, err, "code %s", code)
		assert.Equal(t, wantID, got.ID)
	}
}

func TestOfferGetByCodeUnknown(t *testing.T) {
	svc, _ := offerSvc(t)
	_, err := svc.GetByCode("NOPE")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOfferRedeemIncrementsAndRecords(t *testing.T) {
	svc, db := offerSvc(t)

	limit := 2
	o := testOffer("offer-1", "VELO20")
	o.UsageLimit = &limit
	_, err := svc.Save(o)
	require.NoError(t, err)

	got, err := svc.Redeem("VELO20", domain.OfferRedemption{CustomerName: "Amira", CustomerEmail: "amira@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)

	reds, err := svc.ListRedemptions("offer-1")
	require.NoError(t, err)
	require.Len(t, reds, 1)
	assert.Equal(t, "Amira", reds[0].CustomerName)
	assert.Equal(t, "VELO20", reds[0].OfferCode)

	// Second redemption exhausts the limit; the third is rejected by the
	// conditional update and no redemption row appears.
	_, err = svc.Redeem("VELO20", domain.OfferRedemption{})
	require.NoError(t, err)
	_, err = svc.Redeem("VELO20", domain.OfferRedemption{})
	assert.ErrorIs(t, err, services.ErrOfferLimitReached)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM offer_redemptions WHERE offer_id='offer-1'`))
	assert.Equal(t, 2, n)
	var count int
	require.NoError(t, db.Get(&count, `SELECT usage_count FROM offers WHERE id='offer-1'`))
	assert.Equal(t, 2, count, "usage_count must never exceed usage_limit")
}

func TestOfferRedeemExpired(t *testing.T) {
	svc, _ := offerSvc(t)

	o := testOffer("offer-1", "VELO20")
	o.ValidUntil = rfc3339In(-time.Hour)
	_, err := svc.Save(o)
	require.NoError(t, err)

	_, err = svc.Redeem("VELO20", domain.OfferRedemption{})
	assert.ErrorIs(t, err, services.ErrOfferExpired)
}

func TestOfferToggleAndDelete(t *testing.T) {
	svc, _ := offerSvc(t)

	_, err := svc.Save(testOffer("offer-1", "VELO20"))
	require.NoError(t, err)

	o, err := svc.ToggleActive("offer-1")
	require.NoError(t, err)
	assert.False(t, o.IsActive)

	// Deactivated offers disappear from the active listing.
	active, err := svc.List(true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := svc.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete("offer-1"))
	_, err = svc.Get("offer-1")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOfferBulkSaveIdempotent(t *testing.T) {
	svc, _ := offerSvc(t)

	batch := []domain.Offer{testOffer("o-1", "CODE1"), testOffer("o-2", "CODE2")}
	n, err := svc.BulkSave(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.BulkSave(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := svc.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
