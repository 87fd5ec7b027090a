// Package auth issues and verifies the HS256 bearer tokens that gate
// mutating API routes.
//
//	svc, err := auth.NewService(auth.Config{Secret: secret, Issuer: "pipekit"})
//	token, err := svc.Issue("ci-bot", auth.RoleOperator)
//	claims, err := svc.Verify(token)
package auth
