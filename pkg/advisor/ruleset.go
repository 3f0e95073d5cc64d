// Package advisor implements the scripted chat advisors: an ordered list of
// keyword rules evaluated top to bottom, first match wins, with a fixed
// default reply when nothing matches.
package advisor

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

const (
	RulesetCommercial = "commercial"
	RulesetRobin      = "robin"

	// RuleDefault names the fallback reply in Reply.Rule.
	RuleDefault = "default"

	lastResortReply = "I'm not sure how to help with that yet. Could you rephrase your question?"
)

type rulesFile struct {
	Version  string              `yaml:"version"`
	Rulesets map[string]*Ruleset `yaml:"rulesets"`
}

// Rule maps keywords to a reply template.
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Template string   `yaml:"template"`
	// EmptySelection replaces Template when the context has no selected properties.
	EmptySelection string `yaml:"empty_selection,omitempty"`

	tmpl      *template.Template
	emptyTmpl *template.Template
}

// Matches reports whether input contains any keyword, ignoring case.
func (r *Rule) Matches(input string) bool {
	lower := strings.ToLower(input)
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Ruleset is one advisor persona.
type Ruleset struct {
	Name         string  `yaml:"-"`
	ReplyDelayMs int     `yaml:"reply_delay_ms"`
	Greeting     string  `yaml:"greeting"`
	Rules        []*Rule `yaml:"rules"`
	Default      string  `yaml:"default"`

	greetingTmpl *template.Template
	defaultTmpl  *template.Template
}

// Reply is the outcome of evaluating a ruleset.
type Reply struct {
	Rule    string `json:"rule"`
	Content string `json:"content"`
}

func (rs *Ruleset) ReplyDelay() time.Duration {
	return time.Duration(rs.ReplyDelayMs) * time.Millisecond
}

// Respond evaluates the rules in order and renders the first match. The
// result is never empty.
func (rs *Ruleset) Respond(input string, ctx Context) Reply {
	for _, rule := range rs.Rules {
		if !rule.Matches(input) {
			continue
		}
		tmpl := rule.tmpl
		if rule.emptyTmpl != nil && len(ctx.Selected) == 0 {
			tmpl = rule.emptyTmpl
		}
		if out, err := render(tmpl, ctx); err == nil && out != "" {
			return Reply{Rule: rule.Name, Content: out}
		}
		break
	}
	return Reply{Rule: RuleDefault, Content: rs.fallback(ctx)}
}

// Greet renders the opening message.
func (rs *Ruleset) Greet(ctx Context) string {
	if rs.greetingTmpl == nil {
		return ""
	}
	out, err := render(rs.greetingTmpl, ctx)
	if err != nil {
		return ""
	}
	return out
}

func (rs *Ruleset) fallback(ctx Context) string {
	if out, err := render(rs.defaultTmpl, ctx); err == nil && out != "" {
		return out
	}
	return lastResortReply
}

// Catalog holds the loaded rulesets by name.
type Catalog struct {
	rulesets map[string]*Ruleset
}

// Get returns the named ruleset.
func (c *Catalog) Get(name string) (*Ruleset, bool) {
	rs, ok := c.rulesets[name]
	return rs, ok
}

// LoadDefault parses the embedded rules.
func LoadDefault() (*Catalog, error) {
	return Load(defaultRules)
}

// Load parses a rules document and compiles every template.
func Load(data []byte) (*Catalog, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse advisor rules: %w", err)
	}
	if len(file.Rulesets) == 0 {
		return nil, fmt.Errorf("parse advisor rules: no rulesets defined")
	}

	for name, rs := range file.Rulesets {
		rs.Name = name
		if strings.TrimSpace(rs.Default) == "" {
			return nil, fmt.Errorf("ruleset %s: default reply is required", name)
		}
		var err error
		if rs.defaultTmpl, err = compile(name+".default", rs.Default); err != nil {
			return nil, err
		}
		if rs.Greeting != "" {
			if rs.greetingTmpl, err = compile(name+".greeting", rs.Greeting); err != nil {
				return nil, err
			}
		}
		for _, rule := range rs.Rules {
			if len(rule.Keywords) == 0 {
				return nil, fmt.Errorf("ruleset %s: rule %s has no keywords", name, rule.Name)
			}
			if rule.tmpl, err = compile(name+"."+rule.Name, rule.Template); err != nil {
				return nil, err
			}
			if rule.EmptySelection != "" {
				if rule.emptyTmpl, err = compile(name+"."+rule.Name+".empty", rule.EmptySelection); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Catalog{rulesets: file.Rulesets}, nil
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
}

func compile(name, text string) (*template.Template, error) {
	t, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("compile template %s: %w", name, err)
	}
	return t, nil
}

func render(t *template.Template, ctx Context) (string, error) {
	if t == nil {
		return "", fmt.Errorf("no template")
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
