// Copyright (C) 2023 Wattson Exchange Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package ledger

import "sync"

// Roles is a static capability store loaded from configuration. Parties
// are granted roles at start-up, admins can grant and revoke at runtime.
type Roles struct {
	mu       sync.RWMutex
	issuers  map[string]struct{}
	backends map[string]struct{}
	admins   map[string]struct{}
	feeders  map[string]struct{}
}

func NewRoles(conf Config) *Roles {
	return &Roles{
		issuers:  toSet(conf.Issuers),
		backends: toSet(conf.Backends),
		admins:   toSet(conf.Admins),
		feeders:  toSet(conf.Feeders),
	}
}

func toSet(parties []string) map[string]struct{} {
	s := make(map[string]struct{}, len(parties))
	for _, p := range parties {
		s[p] = struct{}{}
	}
	return s
}

func (r *Roles) IsIssuer(party string) bool  { return r.has(r.issuers, party) }
func (r *Roles) IsBackend(party string) bool { return r.has(r.backends, party) }
func (r *Roles) IsAdmin(party string) bool   { return r.has(r.admins, party) }
func (r *Roles) IsFeeder(party string) bool  { return r.has(r.feeders, party) }

func (r *Roles) has(set map[string]struct{}, party string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := set[party]
	return ok
}

// GrantIssuer adds a party to the issuer set, admin only.
func (r *Roles) GrantIssuer(admin, party string) bool {
	return r.grant(admin, r.issuers, party)
}

// GrantFeeder adds a party to the price feeder set, admin only.
func (r *Roles) GrantFeeder(admin, party string) bool {
	return r.grant(admin, r.feeders, party)
}

// RevokeIssuer removes a party from the issuer set, admin only.
func (r *Roles) RevokeIssuer(admin, party string) bool {
	if !r.IsAdmin(admin) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.issuers, party)
	return true
}

func (r *Roles) grant(admin string, set map[string]struct{}, party string) bool {
	if !r.IsAdmin(admin) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set[party] = struct{}{}
	return true
}
