package config

// FormatRuleID renders a rule identifier in the requested format. The name
// form is the default; rules without a name always render as their ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}
	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	}
	return ruleName
}
