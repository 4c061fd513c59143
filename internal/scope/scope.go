// Package scope enforces role-based row-level visibility. This is the
// confidentiality boundary of the pipeline: every downstream read of claims
// or roster data must pass through it before rendering or export.
//
// Matching is exact case-insensitive string equality (or set membership for
// viewers) — never substring, prefix, or pattern matching — so a scope value
// containing metacharacters can never widen a result set.
package scope

import (
	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// Claims restricts the claims table to the rows the user may see. The input
// slice is never mutated; a fresh, schema-identical slice is returned. Any
// role outside the closed enum yields zero rows.
func Claims(claims []model.Claim, user model.User) []model.Claim {
	switch user.Role {
	case model.RoleAdmin:
		out := make([]model.Claim, len(claims))
		copy(out, claims)
		return out
	case model.RoleBizDev:
		out := make([]model.Claim, 0, len(claims))
		for _, c := range claims {
			if normalize.FoldEqual(c.BizDevName, user.RepName) {
				out = append(out, c)
			}
		}
		return out
	case model.RoleViewer:
		out := make([]model.Claim, 0)
		for _, c := range claims {
			if memberFold(user.DoctorList, c.PrescriberName) {
				out = append(out, c)
			}
		}
		return out
	default:
		return []model.Claim{}
	}
}

// Roster restricts the provider roster with the same role logic, matched
// against the roster's rep and doctor-name fields.
func Roster(entries []model.RosterEntry, user model.User) []model.RosterEntry {
	switch user.Role {
	case model.RoleAdmin:
		out := make([]model.RosterEntry, len(entries))
		copy(out, entries)
		return out
	case model.RoleBizDev:
		out := make([]model.RosterEntry, 0, len(entries))
		for _, e := range entries {
			if normalize.FoldEqual(e.Rep, user.RepName) {
				out = append(out, e)
			}
		}
		return out
	case model.RoleViewer:
		out := make([]model.RosterEntry, 0)
		for _, e := range entries {
			if memberFold(user.DoctorList, e.DoctorName) {
				out = append(out, e)
			}
		}
		return out
	default:
		return []model.RosterEntry{}
	}
}

func memberFold(set []string, v string) bool {
	for _, s := range set {
		if normalize.FoldEqual(s, v) {
			return true
		}
	}
	return false
}
