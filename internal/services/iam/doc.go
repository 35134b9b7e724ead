// Package iam provides identity and access management for the task
// manager API.
//
// It centralizes authentication and authorization:
//
//   - AuthService: credential login, refresh-token rotation, logout
//   - OwnershipResolver: the chain-walk from a resource to its owning
//     user (task -> todo list -> user)
//   - PolicyService: the single allow/deny decision per endpoint,
//     composing the role gate with the ownership check
//
// Request Flow:
//
//	Request → middleware (verify token) → Identity (user id + role)
//	       ↓
//	   Handler → PolicyService.EnforceIdentity(identity, allowed, ref)
//
// All decisions are re-derived per request from the presented token;
// nothing is cached across requests. The only mutations are the
// refresh rotation identifier writes performed by AuthService, which
// use compare-and-set semantics so concurrent refreshes cannot both
// succeed with stale rotation state.
package iam
