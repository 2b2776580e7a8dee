package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	"github.com/felixgeelhaar/fundplan/internal/domain"
)

func TestFactors(t *testing.T) {
	assert.Equal(t, 0.7, AnchorFactor(domain.AnchorCommitted))
	assert.Equal(t, 1.0, AnchorFactor(domain.AnchorInDiscussion))
	assert.Equal(t, 1.3, AnchorFactor(domain.AnchorNone))
	assert.Equal(t, 1.0, AnchorFactor("maybe"))

	assert.Equal(t, 0.9, JurisdictionFactor(domain.JurisdictionDelaware))
	assert.Equal(t, 1.0, JurisdictionFactor(domain.JurisdictionCayman))
	assert.Equal(t, 1.0, JurisdictionFactor(domain.JurisdictionLuxembourg))
	assert.Equal(t, 1.2, JurisdictionFactor(domain.JurisdictionMulti))
	assert.Equal(t, 1.0, JurisdictionFactor("atlantis"))

	assert.Equal(t, 0.8, FundSizeFactor(domain.FundSizeUnder50M))
	assert.Equal(t, 1.0, FundSizeFactor(domain.FundSize50To250M))
	assert.Equal(t, 1.0, FundSizeFactor(domain.FundSize250MTo1B))
	assert.Equal(t, 1.3, FundSizeFactor(domain.FundSizeOver1B))
	assert.Equal(t, 1.0, FundSizeFactor("huge"))
}

func TestAdjust(t *testing.T) {
	all := catalog.Milestone{
		ID:                     "all",
		BaseDurationDays:       100,
		ScalesWithAnchorStatus: true,
		ScalesWithJurisdiction: true,
		ScalesWithFundSize:     true,
	}

	tests := []struct {
		name      string
		milestone catalog.Milestone
		cfg       Config
		want      int
	}{
		{
			name:      "no flags ignores factors",
			milestone: catalog.Milestone{ID: "x", BaseDurationDays: 21},
			cfg:       Config{AnchorStatus: domain.AnchorNone, Jurisdiction: domain.JurisdictionMulti, FundSize: domain.FundSizeOver1B},
			want:      21,
		},
		{
			name:      "committed anchor floors",
			milestone: catalog.Milestone{ID: "x", BaseDurationDays: 45, ScalesWithAnchorStatus: true},
			cfg:       Config{AnchorStatus: domain.AnchorCommitted},
			want:      31,
		},
		{
			name:      "no anchor slows down",
			milestone: catalog.Milestone{ID: "x", BaseDurationDays: 14, ScalesWithAnchorStatus: true},
			cfg:       Config{AnchorStatus: domain.AnchorNone},
			want:      18,
		},
		{
			name:      "smallest fund",
			milestone: catalog.Milestone{ID: "x", BaseDurationDays: 10, ScalesWithFundSize: true},
			cfg:       Config{FundSize: domain.FundSizeUnder50M},
			want:      8,
		},
		{
			name:      "flag without matching option is neutral",
			milestone: catalog.Milestone{ID: "x", BaseDurationDays: 10, ScalesWithJurisdiction: true},
			cfg:       Config{AnchorStatus: domain.AnchorCommitted, FundSize: domain.FundSizeUnder50M},
			want:      10,
		},
		{
			// 100 x0.7 = 70, x0.9 = 63, x0.8 = 50.4 -> 50
			name:      "all factors shortening",
			milestone: all,
			cfg:       Config{AnchorStatus: domain.AnchorCommitted, Jurisdiction: domain.JurisdictionDelaware, FundSize: domain.FundSizeUnder50M},
			want:      50,
		},
		{
			// 100 x1.3 = 130, x1.2 = 156, x1.3 = 202.8 -> 202
			name:      "all factors lengthening",
			milestone: all,
			cfg:       Config{AnchorStatus: domain.AnchorNone, Jurisdiction: domain.JurisdictionMulti, FundSize: domain.FundSizeOver1B},
			want:      202,
		},
		{
			// 45 x0.7 = 31.5 -> 31, x0.8 = 24.8 -> 24. One floor at the end would give 25.
			name: "floors after every factor",
			milestone: catalog.Milestone{
				ID: "x", BaseDurationDays: 45, ScalesWithAnchorStatus: true, ScalesWithFundSize: true,
			},
			cfg:  Config{AnchorStatus: domain.AnchorCommitted, FundSize: domain.FundSizeUnder50M},
			want: 24,
		},
		{
			// 1 x0.7 -> 0; no clamp
			name:      "short base can reach zero",
			milestone: catalog.Milestone{ID: "x", BaseDurationDays: 1, ScalesWithAnchorStatus: true},
			cfg:       Config{AnchorStatus: domain.AnchorCommitted},
			want:      0,
		},
		{
			name:      "unknown values are neutral",
			milestone: all,
			cfg:       Config{AnchorStatus: "soon", Jurisdiction: "moon", FundSize: "big"},
			want:      100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Adjust([]catalog.Milestone{tt.milestone}, tt.cfg)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].DurationDays)
			assert.Equal(t, tt.milestone.BaseDurationDays, got[0].BaseDurationDays, "template is carried unchanged")
		})
	}
}

func TestAdjust_PreservesOrderAndInput(t *testing.T) {
	c := testCatalog()
	before := append([]catalog.Milestone(nil), c.Milestones...)

	got := Adjust(c.Milestones, Config{AnchorStatus: domain.AnchorCommitted})

	assert.Equal(t, []string{"a", "b", "fc", "c", "fin", "t"}, adjustedIDs(got))
	assert.Equal(t, before, c.Milestones)
	assert.Empty(t, Adjust(nil, DefaultConfig()))
}
