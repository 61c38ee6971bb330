package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"loan-portal/internal/domain/user"
)

// Admin inherits every User permission through the g grouping.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && r.act == p.act
`

var policies = [][]string{
	{string(user.RoleUser), "/api/loans", "POST"},
	{string(user.RoleUser), "/api/loans/my-loans", "GET"},
	{string(user.RoleAdmin), "/api/loans", "GET"},
	{string(user.RoleAdmin), "/api/loans/:id/approve", "PUT"},
	{string(user.RoleAdmin), "/api/loans/:id/reject", "PUT"},
}

// NewEnforcer builds the route policy of the portal API.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicy(string(user.RoleAdmin), string(user.RoleUser)); err != nil {
		return nil, err
	}
	return e, nil
}
