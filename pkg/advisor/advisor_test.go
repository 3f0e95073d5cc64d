package advisor

import (
	"strings"
	"testing"
	"time"

	"robinrocks-be/pkg/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roiReply = "Based on ROI analysis, the Industrial Park property offers the highest return at 9.1% annually. " +
	"The Downtown Plaza has strong appreciation potential at 8.2% ROI with premium location benefits. " +
	"Would you like me to break down the cash flow projections?"

func loadRuleset(t *testing.T, name string) *Ruleset {
	t.Helper()
	catalog, err := LoadDefault()
	require.NoError(t, err)
	rs, ok := catalog.Get(name)
	require.True(t, ok)
	return rs
}

func TestCommercialRespond(t *testing.T) {
	rs := loadRuleset(t, RulesetCommercial)

	selection := Context{Selected: []Property{
		{ID: "a", Address: "Zuidas Financial District, Unit 401A", PropertyType: "Office Space", FootTraffic: "Very High", M2: 220, ROI: 8.6},
		{ID: "b", Address: "Industrial Park 7", PropertyType: "Warehouse", FootTraffic: "Low", M2: 350, ROI: 9.1},
	}}

	tests := []struct {
		name     string
		input    string
		ctx      Context
		wantRule string
		contains string
	}{
		{name: "roi keyword", input: "What is the ROI here?", wantRule: "roi"},
		{name: "first match wins", input: "best return on an office", wantRule: "roi"},
		{name: "foot traffic", input: "I need lots of Customers", wantRule: "foot_traffic"},
		{name: "office", input: "corporate HQ", wantRule: "office"},
		{name: "warehouse", input: "storage for pallets", wantRule: "warehouse"},
		{name: "costs", input: "monthly expenses?", wantRule: "operating_costs"},
		{name: "recommend without selection", input: "Which do you suggest?", wantRule: "recommend", contains: "I'd recommend selecting properties to compare."},
		{name: "recommend with selection", input: "recommend one", ctx: selection, wantRule: "recommend", contains: "I recommend Industrial Park 7 with 9.1% annual return. It offers 350m² of warehouse space with low foot traffic"},
		{name: "default", input: "hello there", ctx: selection, wantRule: RuleDefault, contains: "Current selection: 2 properties."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := rs.Respond(tt.input, tt.ctx)
			assert.Equal(t, tt.wantRule, reply.Rule)
			assert.NotEmpty(t, reply.Content)
			if tt.contains != "" {
				assert.Contains(t, reply.Content, tt.contains)
			}
		})
	}
}

func TestCommercialROIReplyIsVerbatim(t *testing.T) {
	rs := loadRuleset(t, RulesetCommercial)
	assert.Equal(t, roiReply, rs.Respond("roi", Context{}).Content)
}

func TestRobinRespond(t *testing.T) {
	rs := loadRuleset(t, RulesetRobin)

	assert.Equal(t, "vat", rs.Respond("Hoe zit het met BTW?", Context{}).Rule)
	assert.Equal(t, "notice_period", rs.Respond("opzegtermijn", Context{}).Rule)
	assert.Equal(t, "deposit", rs.Respond("What deposit is normal?", Context{}).Rule)
	assert.Equal(t, "indexation", rs.Respond("indexatie", Context{}).Rule)

	fallback := rs.Respond("xyz", Context{})
	assert.Equal(t, RuleDefault, fallback.Rule)
	assert.True(t, strings.HasPrefix(fallback.Content, "Dank je voor je vraag!"))
}

func TestRobinGreetingPerDocumentType(t *testing.T) {
	rs := loadRuleset(t, RulesetRobin)
	assert.Contains(t, rs.Greet(Context{DocumentType: "rental"}), "huurovereenkomst")
	assert.Contains(t, rs.Greet(Context{DocumentType: "sales"}), "koopovereenkomst")
	assert.Contains(t, rs.Greet(Context{DocumentType: "services"}), "dienstverleningscontract")
}

func TestLoadRejectsInvalidRules(t *testing.T) {
	_, err := Load([]byte("rulesets: {}"))
	assert.Error(t, err)

	_, err = Load([]byte(`
rulesets:
  broken:
    default: "ok"
    rules:
      - name: nokeywords
        template: "x"
`))
	assert.Error(t, err)

	_, err = Load([]byte(`
rulesets:
  broken:
    default: "{{ .Missing"
`))
	assert.Error(t, err)
}

func TestConversationRepliesInSubmissionOrder(t *testing.T) {
	clock := scheduler.NewVirtual()
	rs := loadRuleset(t, RulesetCommercial)
	conv := NewConversation("c1", rs, clock, 0, Context{})

	require.Len(t, conv.Messages(), 1, "greeting")

	_, err := conv.Submit("roi please", Context{})
	require.NoError(t, err)
	clock.Advance(500 * time.Millisecond)
	_, err = conv.Submit("and the warehouse?", Context{})
	require.NoError(t, err)

	assert.Equal(t, 2, conv.Pending())
	assert.Len(t, conv.Messages(), 3, "user messages are appended immediately")

	clock.Advance(time.Second)
	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, RoleAdvisor, msgs[3].Role)
	assert.Equal(t, "roi", msgs[3].Rule)
	assert.Equal(t, 1, conv.Pending())

	clock.Advance(1500 * time.Millisecond)
	msgs = conv.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, "warehouse", msgs[4].Rule)
	assert.Equal(t, 0, conv.Pending())
}

func TestConversationRejectsBlankInput(t *testing.T) {
	clock := scheduler.NewVirtual()
	conv := NewConversation("c1", loadRuleset(t, RulesetRobin), clock, 0, Context{DocumentType: "rental"})

	_, err := conv.Submit("   ", Context{})
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, conv.Messages(), 1)
}

func TestConversationCloseCancelsReplies(t *testing.T) {
	clock := scheduler.NewVirtual()
	conv := NewConversation("c1", loadRuleset(t, RulesetRobin), clock, 0, Context{})

	var delivered []Message
	conv.OnMessage(func(m Message) { delivered = append(delivered, m) })

	_, err := conv.Submit("help", Context{})
	require.NoError(t, err)
	conv.Close()
	clock.Advance(5 * time.Second)

	assert.Len(t, delivered, 1)
	assert.Equal(t, 0, clock.Pending())
	_, err = conv.Submit("help", Context{})
	assert.ErrorIs(t, err, ErrConversationClosed)
}

func TestBestROI(t *testing.T) {
	assert.Nil(t, Context{}.BestROI())
	ctx := Context{Selected: []Property{{ID: "a", ROI: 7.4}, {ID: "b", ROI: 8.6}, {ID: "c", ROI: 8.6}}}
	assert.Equal(t, "b", ctx.BestROI().ID)
}
