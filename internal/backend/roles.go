package backend

import "strings"

// Role is a task specialization used by the expert-panel strategy.
type Role string

const (
	// RoleSynonymExpert backends are best at synonym/antonym recall.
	RoleSynonymExpert Role = "synonym_expert"
	// RoleGrammarExpert backends are best at sentence construction.
	RoleGrammarExpert Role = "grammar_expert"
	// RoleEtymologyExpert backends are best at word-origin questions.
	RoleEtymologyExpert Role = "etymology_expert"
	// RoleGeneralValidator backends are good all-around validators.
	RoleGeneralValidator Role = "general_validator"
)

// AllRoles returns every role in panel order.
func AllRoles() []Role {
	return []Role{RoleSynonymExpert, RoleGrammarExpert, RoleEtymologyExpert, RoleGeneralValidator}
}

// Roles maps specializations to backend IDs, in registry order.
type Roles map[Role][]string

// AssignRoles distributes the registry's backends across specializations by
// family-name heuristics. Every role is guaranteed at least one backend (the
// first registry entry) so the expert-panel strategy never starves.
func AssignRoles(reg *Registry) Roles {
	roles := Roles{
		RoleSynonymExpert:    nil,
		RoleGrammarExpert:    nil,
		RoleEtymologyExpert:  nil,
		RoleGeneralValidator: nil,
	}

	for _, p := range reg.List() {
		name := strings.ToLower(p.ID)
		switch {
		case strings.Contains(name, "llama") && !strings.Contains(name, "codellama"),
			strings.Contains(name, "mistral"):
			roles[RoleGeneralValidator] = append(roles[RoleGeneralValidator], p.ID)
			roles[RoleSynonymExpert] = append(roles[RoleSynonymExpert], p.ID)
		case strings.Contains(name, "phi3"):
			roles[RoleGrammarExpert] = append(roles[RoleGrammarExpert], p.ID)
			roles[RoleGeneralValidator] = append(roles[RoleGeneralValidator], p.ID)
		case strings.Contains(name, "qwen"):
			roles[RoleEtymologyExpert] = append(roles[RoleEtymologyExpert], p.ID)
			roles[RoleGeneralValidator] = append(roles[RoleGeneralValidator], p.ID)
		case strings.Contains(name, "codellama"):
			roles[RoleGrammarExpert] = append(roles[RoleGrammarExpert], p.ID)
		default:
			roles[RoleGeneralValidator] = append(roles[RoleGeneralValidator], p.ID)
		}
	}

	all := reg.List()
	if len(all) > 0 {
		for role, ids := range roles {
			if len(ids) == 0 {
				roles[role] = []string{all[0].ID}
			}
		}
	}
	return roles
}

// For lists the roles assigned to a backend, in panel order.
func (r Roles) For(backendID string) []string {
	var out []string
	for _, role := range AllRoles() {
		for _, id := range r[role] {
			if id == backendID {
				out = append(out, string(role))
				break
			}
		}
	}
	return out
}

// First returns the first backend assigned to a role, or false when the
// registry was empty.
func (r Roles) First(role Role) (string, bool) {
	ids := r[role]
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// ValidatorsExcluding returns up to max general validators other than the
// given backend. Used by the cross-check strategy to pick re-scorers.
func (r Roles) ValidatorsExcluding(exclude string, max int) []string {
	var out []string
	for _, id := range r[RoleGeneralValidator] {
		if id == exclude {
			continue
		}
		out = append(out, id)
		if len(out) >= max {
			break
		}
	}
	return out
}
