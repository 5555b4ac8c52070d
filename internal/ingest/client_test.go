package ingest

import "testing"

func TestExtractClientName(t *testing.T) {
	tests := []struct {
		name      string
		firstPage string
		orderType OrderType
		want      string
	}{
		{
			"worldlink advertiser field",
			"WL Tracking No. 12345\nAdvertiser: Test Company Inc\nCampaign: Q1 2025",
			WorldLink,
			"Test Company Inc",
		},
		{
			"tcaa client field",
			"CRTV-Cable\nClient: Toyota Motors\nEstimate: 456",
			TCAA,
			"Toyota Motors",
		},
		{
			"hl default",
			"H/L Agency San Francisco",
			HL,
			"Northern California Dealers Association",
		},
		{
			"misfit contact field",
			"Agency: Misfit\nContact: Brand Name LLC\nLanguage Block: Chinese",
			Misfit,
			"Brand Name LLC",
		},
		{
			"igraphix c/o block",
			"Advertiser:\n IGraphix\n c/o\n Pechanga Resort Casino\n\n**PLEASE NOTE",
			IGraphix,
			"Pechanga Resort Casino",
		},
		{
			"charmaine advertiser header",
			"Crossings TV: Media Proposal\nAdvertiser Golden Bowl Restaurant\nAIRTIME",
			Charmaine,
			"Golden Bowl Restaurant",
		},
		{
			"not found",
			"Order with no client field",
			WorldLink,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractClientName(tt.firstPage, "", tt.orderType); got != tt.want {
				t.Errorf("ExtractClientName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractClientNameDaviselenPage2(t *testing.T) {
	page2 := "CLIENT MCDS McDonald's Corporation Market: CVC"
	got := ExtractClientName("Order info", page2, Daviselen)
	if got != "McDonald's Corporation" {
		t.Errorf("ExtractClientName = %q, want McDonald's Corporation", got)
	}
}

func TestBilledViaAgency(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"IW Group, Inc.", true},
		{"Davis Elen Advertising", true},
		{"WorldLink Media", true},
		{"Golden Bowl Restaurant", false},
		{"Wong Realty", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := BilledViaAgency(tt.name); got != tt.want {
			t.Errorf("BilledViaAgency(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
