package domain

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestJurisdiction_Tier(t *testing.T) {
	tests := []struct {
		jurisdiction Jurisdiction
		want         Tier
	}{
		{JurisdictionDelaware, TierLightest},
		{JurisdictionCayman, TierStandard},
		{JurisdictionLuxembourg, TierStandard},
		{JurisdictionMulti, TierHeaviest},
		{Jurisdiction("jersey"), TierUnknown},
		{Jurisdiction(""), TierUnknown},
	}

	for _, tt := range tests {
		if got := tt.jurisdiction.Tier(); got != tt.want {
			t.Errorf("Jurisdiction(%q).Tier() = %v, want %v", tt.jurisdiction, got, tt.want)
		}
	}
}

func TestFundSizeBand_Tier(t *testing.T) {
	tests := []struct {
		band FundSizeBand
		want Tier
	}{
		{FundSizeUnder50M, TierLightest},
		{FundSize50To250M, TierStandard},
		{FundSize250MTo1B, TierStandard},
		{FundSizeOver1B, TierHeaviest},
		{FundSizeBand("huge"), TierUnknown},
	}

	for _, tt := range tests {
		if got := tt.band.Tier(); got != tt.want {
			t.Errorf("FundSizeBand(%q).Tier() = %v, want %v", tt.band, got, tt.want)
		}
	}
}

func TestOptionValidation(t *testing.T) {
	valid := []interface{ Validate() error }{
		AnchorCommitted, AnchorInDiscussion, AnchorNone,
		StartFromScratch, StartHaveDraftMaterials, StartCloseToFirstClose,
		DetailSimple, DetailDetailed,
		JurisdictionDelaware, JurisdictionMulti,
		FundSizeUnder50M, FundSizeOver1B,
		StrategyVentureCapital, StrategyInfrastructure,
	}
	for _, v := range valid {
		if err := v.Validate(); err != nil {
			t.Errorf("%v should be valid: %v", v, err)
		}
	}

	invalid := []interface{ Validate() error }{
		AnchorStatus("maybe"),
		StartingPoint("halfway"),
		DetailLevel("verbose"),
		Jurisdiction("jersey"),
		FundSizeBand("1t"),
		Strategy("crypto"),
	}
	for _, v := range invalid {
		if err := v.Validate(); err == nil {
			t.Errorf("%v should be invalid", v)
		}
	}
}

// TestAnchorStatus_UnknownValuesFail tests that anything outside the enumeration is rejected
func TestAnchorStatus_UnknownValuesFail(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-z\-]{1,16}`).Filter(func(s string) bool {
			return s != "committed" && s != "in-discussion" && s != "none"
		}).Draw(t, "status")

		err := AnchorStatus(s).Validate()
		if err == nil {
			t.Fatalf("anchor status %q should fail validation", s)
		}
		if !strings.Contains(err.Error(), "must be committed") {
			t.Errorf("error should list valid values: %v", err)
		}
	})
}
