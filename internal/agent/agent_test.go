package agent

import (
	"testing"

	"txn-decision-engine/pkg/types"
)

func TestRosterOrder(t *testing.T) {
	roster := Roster()
	expected := []string{
		"strategy", "risk", "finance", "operations", "security", "ux",
		"inventory", "resilience", "market", "compliance", "behavior",
	}
	if len(roster) != len(expected) {
		t.Fatalf("expected %d agents got %d", len(expected), len(roster))
	}
	for i, a := range roster {
		if a.Role() != expected[i] {
			t.Fatalf("position %d: expected %s got %s", i, expected[i], a.Role())
		}
	}
}

func TestRiskAgent(t *testing.T) {
	tests := []struct {
		name     string
		payload  types.Payload
		concerns int
		kind     types.RecommendationKind
	}{
		{"clean", types.Payload{Amount: 500}, 0, types.KindNone},
		{"boundary amount", types.Payload{Amount: 5000}, 0, types.KindNone},
		{"high amount", types.Payload{Amount: 5001}, 1, types.KindManualReview},
		{"geo mismatch", types.Payload{IPCountry: "US", BillingCountry: "FR"}, 1, types.KindIdentityCheck},
		{"geo unknown", types.Payload{IPCountry: "", BillingCountry: "FR"}, 0, types.KindNone},
		{"high amount and geo", types.Payload{Amount: 6000, IPCountry: "US", BillingCountry: "FR"}, 2, types.KindIdentityCheck},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Risk{}.Analyze(types.ContextSnapshot{}, tc.payload)
			if len(verdict.Concerns) != tc.concerns {
				t.Fatalf("expected %d concerns got %v", tc.concerns, verdict.Concerns)
			}
			if verdict.Kind != tc.kind {
				t.Fatalf("expected kind %q got %q", tc.kind, verdict.Kind)
			}
			if verdict.Confidence != 0.92 {
				t.Fatalf("unexpected confidence %v", verdict.Confidence)
			}
		})
	}
}

func TestFinanceAgent(t *testing.T) {
	verdict := Finance{}.Analyze(types.ContextSnapshot{}, types.Payload{Amount: 1500, UserAgeDays: 10})
	if len(verdict.Concerns) != 1 || verdict.Kind != types.KindMonitor {
		t.Fatalf("expected new-user concern, got %+v", verdict)
	}

	seasoned := Finance{}.Analyze(types.ContextSnapshot{}, types.Payload{Amount: 1500, UserAgeDays: 90})
	if len(seasoned.Concerns) != 0 || seasoned.Recommendation != "" {
		t.Fatalf("seasoned user should pass, got %+v", seasoned)
	}
	if len(seasoned.Insights) != 1 {
		t.Fatalf("expected transaction value insight, got %v", seasoned.Insights)
	}
}

func TestOperationsAgent(t *testing.T) {
	quiet := Operations{}.Analyze(types.ContextSnapshot{}, types.Payload{TxnHistoryCount: 10})
	if len(quiet.Concerns) != 0 {
		t.Fatalf("boundary velocity should pass, got %v", quiet.Concerns)
	}
	busy := Operations{}.Analyze(types.ContextSnapshot{}, types.Payload{TxnHistoryCount: 11})
	if len(busy.Concerns) != 1 || busy.Recommendation == "" {
		t.Fatalf("expected velocity concern, got %+v", busy)
	}
}

func TestSecurityAgent(t *testing.T) {
	tests := []struct {
		name     string
		payload  types.Payload
		concerns int
	}{
		{"clean", types.Payload{UserID: "user-12345"}, 0},
		{"short id", types.Payload{UserID: "u1"}, 1},
		{"absent id", types.Payload{}, 0},
		{"oversized payload", types.Payload{RawSize: 1001}, 1},
		{"both", types.Payload{UserID: "u1", RawSize: 2000}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Security{}.Analyze(types.ContextSnapshot{}, tc.payload)
			if len(verdict.Concerns) != tc.concerns {
				t.Fatalf("expected %d concerns got %v", tc.concerns, verdict.Concerns)
			}
		})
	}
}

func TestUXAgent(t *testing.T) {
	stressed := UX{}.Analyze(types.ContextSnapshot{EmotionalSignals: []string{"stress"}}, types.Payload{})
	if len(stressed.Concerns) != 1 {
		t.Fatalf("expected stress concern, got %v", stressed.Concerns)
	}

	urgent := UX{}.Analyze(types.ContextSnapshot{UrgencyLevel: 8}, types.Payload{})
	if urgent.Recommendation != "Prioritize quick actions and clear instructions" {
		t.Fatalf("expected urgency recommendation, got %q", urgent.Recommendation)
	}
}

func TestStrategyAgent(t *testing.T) {
	pos := Strategy{}.Analyze(types.ContextSnapshot{SystemState: "POS"}, types.Payload{InventoryLow: true})
	if pos.Kind != types.KindRestock {
		t.Fatalf("expected restock kind, got %q", pos.Kind)
	}
	marketplace := Strategy{}.Analyze(types.ContextSnapshot{SystemState: "marketplace"}, types.Payload{InventoryLow: true})
	if len(marketplace.Concerns) != 0 {
		t.Fatalf("inventory pressure outside POS should be silent, got %v", marketplace.Concerns)
	}
}

func TestInventoryAgent(t *testing.T) {
	many := make([]string, 11)
	verdict := Inventory{}.Analyze(types.ContextSnapshot{}, types.Payload{Items: many})
	if verdict.Kind != types.KindRestock || len(verdict.Concerns) != 1 {
		t.Fatalf("expected restock verdict, got %+v", verdict)
	}

	few := Inventory{}.Analyze(types.ContextSnapshot{}, types.Payload{Amount: 2000})
	if len(few.Insights) != 1 || len(few.Concerns) != 0 {
		t.Fatalf("expected velocity insight only, got %+v", few)
	}
}

func TestResilienceAgent(t *testing.T) {
	chaos := Resilience{}.Analyze(types.ContextSnapshot{}, types.Payload{Chaos: true, ChaosType: "NODE_FAILURE"})
	if chaos.Confidence != 0.98 || len(chaos.Concerns) != 0 {
		t.Fatalf("chaos verdict must not raise concerns, got %+v", chaos)
	}
	if chaos.Recommendation != "Engage Shadow Node failover immediately." {
		t.Fatalf("unexpected recommendation %q", chaos.Recommendation)
	}

	crisis := Resilience{}.Analyze(types.ContextSnapshot{Environment: "crisis"}, types.Payload{})
	if crisis.Confidence != 0.98 {
		t.Fatalf("crisis environment should enter chaos handling")
	}

	normal := Resilience{}.Analyze(types.ContextSnapshot{Environment: "online"}, types.Payload{})
	if normal.Confidence != 0.80 || normal.Recommendation != "" {
		t.Fatalf("unexpected normal verdict %+v", normal)
	}
}

func TestMarketAgent(t *testing.T) {
	saturated := Market{}.Analyze(types.ContextSnapshot{}, types.Payload{LoadFactor: 1.6})
	if len(saturated.Concerns) != 1 {
		t.Fatalf("expected surge concern, got %v", saturated.Concerns)
	}
	slack := Market{}.Analyze(types.ContextSnapshot{}, types.Payload{LoadFactor: 0.5})
	if slack.Recommendation != "Enable 10% 'System Slack' discount for new orders." {
		t.Fatalf("unexpected recommendation %q", slack.Recommendation)
	}
	balanced := Market{}.Analyze(types.ContextSnapshot{}, types.Payload{LoadFactor: 1.0, RecentVolume: 600})
	if len(balanced.Insights) != 2 {
		t.Fatalf("expected equilibrium and volume insights, got %v", balanced.Insights)
	}
}

func TestComplianceAgent(t *testing.T) {
	extreme := Compliance{}.Analyze(types.ContextSnapshot{}, types.Payload{FXDelta: 0.12, Currency: "EGP"})
	if len(extreme.Concerns) != 1 {
		t.Fatalf("expected volatility concern, got %v", extreme.Concerns)
	}
	moderate := Compliance{}.Analyze(types.ContextSnapshot{}, types.Payload{FXDelta: 0.07})
	if moderate.Recommendation != "Increase volatility buffer to 8%." {
		t.Fatalf("unexpected recommendation %q", moderate.Recommendation)
	}
	regional := Compliance{}.Analyze(types.ContextSnapshot{}, types.Payload{Region: "AE", Amount: 600000})
	if len(regional.Insights) != 2 {
		t.Fatalf("expected regional and reporting insights, got %v", regional.Insights)
	}
}

func TestBehaviorAgent(t *testing.T) {
	power := Behavior{}.Analyze(types.ContextSnapshot{}, types.Payload{
		Factors: types.BehaviorFactors{OrderFrequency: 1, SpendingPattern: 1, LoyaltyStreak: 1},
	})
	if len(power.Concerns) != 0 || power.Recommendation != "Offer exclusive 'Tier 1' governance rewards." {
		t.Fatalf("expected power user verdict, got %+v", power)
	}

	churn := Behavior{}.Analyze(types.ContextSnapshot{}, types.Payload{})
	if len(churn.Concerns) != 1 {
		t.Fatalf("zero engagement should flag churn risk, got %+v", churn)
	}

	standard := Behavior{}.Analyze(types.ContextSnapshot{}, types.Payload{
		Factors: types.BehaviorFactors{OrderFrequency: 0.5, SpendingPattern: 0.5, LoyaltyStreak: 0.5},
	})
	if standard.Recommendation != "Continue standard reward accrual." {
		t.Fatalf("unexpected standard verdict %+v", standard)
	}
}
