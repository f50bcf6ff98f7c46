package rules

// RulesConfig is the top-level structure of the disambiguation rules file.
//
// Example:
//
//	rules:
//	  - a: [orthodox, ortodox]
//	    b: [catholic, catolic]
type RulesConfig struct {
	Rules []RuleProps `yaml:"rules"`
}

// RuleProps names two sets of mutually exclusive keywords.
type RuleProps struct {
	A []string `yaml:"a"`
	B []string `yaml:"b"`
}
